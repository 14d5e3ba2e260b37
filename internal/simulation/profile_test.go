package simulation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/voltlab/regen2go/internal/configuration"
)

func TestPointsProfileStepInterpolation(t *testing.T) {
	// GIVEN
	profile, err := NewProfile(configuration.ProfileConfig{
		ID:            "step",
		Duration:      10 * time.Second,
		Interpolation: configuration.InterpolationStep,
		Points: configuration.ProfilePoints{
			0: 48.0,
			2: 46.0,
			8: 48.0,
		},
	}, nil)
	assert.NoError(t, err)

	// THEN values hold until the next point
	assert.Equal(t, 10.0, profile.Duration())
	assert.Equal(t, 48.0, profile.VoltageAt(0))
	assert.Equal(t, 48.0, profile.VoltageAt(1.99))
	assert.Equal(t, 46.0, profile.VoltageAt(2.0))
	assert.Equal(t, 46.0, profile.VoltageAt(7.99))
	assert.Equal(t, 48.0, profile.VoltageAt(8.0))
	assert.Equal(t, 48.0, profile.VoltageAt(9.5))
}

func TestPointsProfileLinearInterpolation(t *testing.T) {
	// GIVEN
	profile, err := NewProfile(configuration.ProfileConfig{
		ID:            "ramp",
		Duration:      4 * time.Second,
		Interpolation: configuration.InterpolationLinear,
		Points: configuration.ProfilePoints{
			0: 48.0,
			4: 46.0,
		},
	}, nil)
	assert.NoError(t, err)

	// THEN values ramp towards the next point
	assert.Equal(t, 48.0, profile.VoltageAt(0))
	assert.Equal(t, 47.0, profile.VoltageAt(2))
	assert.Equal(t, 46.5, profile.VoltageAt(3))
	assert.Equal(t, 46.0, profile.VoltageAt(4))
}

func TestPointsProfileClampsOutsideRange(t *testing.T) {
	// GIVEN
	profile, err := NewProfile(configuration.ProfileConfig{
		ID:       "clamp",
		Duration: 5 * time.Second,
		Points: configuration.ProfilePoints{
			1: 47.0,
			4: 46.0,
		},
	}, nil)
	assert.NoError(t, err)

	// THEN
	assert.Equal(t, 47.0, profile.VoltageAt(-1))
	assert.Equal(t, 47.0, profile.VoltageAt(0))
	assert.Equal(t, 46.0, profile.VoltageAt(100))
}

func TestCompositeProfileConcatenatesParts(t *testing.T) {
	// GIVEN
	all := []configuration.ProfileConfig{
		{
			ID:       "high",
			Duration: 2 * time.Second,
			Points:   configuration.ProfilePoints{0: 48.0},
		},
		{
			ID:       "low",
			Duration: 3 * time.Second,
			Points:   configuration.ProfilePoints{0: 46.0},
		},
		{
			ID:        "both",
			Composite: []string{"high", "low", "high"},
		},
	}

	// WHEN
	profile, err := NewProfile(all[2], all)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 7.0, profile.Duration())
	assert.Equal(t, 48.0, profile.VoltageAt(1.0))
	assert.Equal(t, 46.0, profile.VoltageAt(2.0))
	assert.Equal(t, 46.0, profile.VoltageAt(4.99))
	assert.Equal(t, 48.0, profile.VoltageAt(5.0))
	assert.Equal(t, 48.0, profile.VoltageAt(6.99))
}

func TestNewProfileUnknownCompositePart(t *testing.T) {
	// WHEN
	_, err := NewProfile(configuration.ProfileConfig{
		ID:        "broken",
		Composite: []string{"missing"},
	}, nil)

	// THEN
	assert.Error(t, err)
}

func TestNewProfileWithoutSubConfig(t *testing.T) {
	// WHEN
	_, err := NewProfile(configuration.ProfileConfig{ID: "empty"}, nil)

	// THEN
	assert.Error(t, err)
}

func TestResolveProfilePrefersConfigured(t *testing.T) {
	// GIVEN a configured profile shadowing a built-in scenario id
	configured := []configuration.ProfileConfig{
		{
			ID:       "step-response",
			Duration: 1 * time.Second,
			Points:   configuration.ProfilePoints{0: 42.0},
		},
	}

	// WHEN
	profile, err := ResolveProfile("step-response", configured)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 42.0, profile.VoltageAt(0))
}

func TestResolveProfileBuiltin(t *testing.T) {
	for _, id := range BuiltinProfileIds() {
		// WHEN
		profile, err := ResolveProfile(id, nil)

		// THEN
		assert.NoError(t, err)
		assert.Greater(t, profile.Duration(), 0.0)
	}
}

func TestResolveProfileUnknown(t *testing.T) {
	// WHEN
	_, err := ResolveProfile("nope", nil)

	// THEN
	assert.EqualError(t, err, "no profile or built-in scenario with id 'nope' found")
}
