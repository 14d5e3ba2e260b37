package sources

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/voltlab/regen2go/internal/configuration"
)

func TestNewSourceFile(t *testing.T) {
	// GIVEN
	config := configuration.SourceConfig{
		ID:   "adc",
		File: &configuration.FileSourceConfig{Path: "/var/run/busvoltage"},
	}

	// WHEN
	source, err := NewSource(config, nil)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, "adc", source.GetId())
	assert.IsType(t, &FileSource{}, source)
}

func TestNewSourceWithoutSubConfig(t *testing.T) {
	// WHEN
	_, err := NewSource(configuration.SourceConfig{ID: "empty"}, nil)

	// THEN
	assert.Error(t, err)
}

func TestFileSourceGetValue(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "voltage")
	assert.NoError(t, os.WriteFile(path, []byte("47.25\n"), 0644))
	source := &FileSource{
		Config: configuration.SourceConfig{
			ID:   "adc",
			File: &configuration.FileSourceConfig{Path: path},
		},
	}

	// WHEN
	value, err := source.GetValue()

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 47.25, value)
}

func TestFileSourceRejectsNonFiniteValue(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "voltage")
	assert.NoError(t, os.WriteFile(path, []byte("NaN"), 0644))
	source := &FileSource{
		Config: configuration.SourceConfig{
			ID:   "adc",
			File: &configuration.FileSourceConfig{Path: path},
		},
	}

	// WHEN
	_, err := source.GetValue()

	// THEN
	assert.Error(t, err)
}

func TestFileSourceMovingAvg(t *testing.T) {
	// GIVEN
	source := &FileSource{}

	// WHEN
	source.SetMovingAvg(47.5)

	// THEN
	assert.Equal(t, 47.5, source.GetMovingAvg())
}

func TestProfileSourcePlayback(t *testing.T) {
	// GIVEN
	config := configuration.SourceConfig{
		ID:      "sim",
		Profile: &configuration.ProfileSourceConfig{Profile: "step-response"},
	}
	source, err := NewSource(config, nil)
	assert.NoError(t, err)

	profileSource := source.(*ProfileSource)
	current := profileSource.started

	// WHEN the playback clock sits inside the first segment
	profileSource.now = func() time.Time { return current.Add(1 * time.Second) }
	value, err := profileSource.GetValue()

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 48.0, value)

	// WHEN the playback clock sits inside the step
	profileSource.now = func() time.Time { return current.Add(3 * time.Second) }
	value, err = profileSource.GetValue()

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 46.0, value)

	// WHEN playback runs past the end without looping
	profileSource.now = func() time.Time { return current.Add(20 * time.Second) }
	value, err = profileSource.GetValue()

	// THEN the profile holds its final value
	assert.NoError(t, err)
	assert.Equal(t, 48.0, value)
}

func TestProfileSourceLoops(t *testing.T) {
	// GIVEN
	config := configuration.SourceConfig{
		ID:      "sim",
		Profile: &configuration.ProfileSourceConfig{Profile: "step-response", Loop: true},
	}
	source, err := NewSource(config, nil)
	assert.NoError(t, err)

	profileSource := source.(*ProfileSource)
	current := profileSource.started

	// WHEN the playback clock wraps around a 10 s profile
	profileSource.now = func() time.Time { return current.Add(13 * time.Second) }
	value, err := profileSource.GetValue()

	// THEN the value comes from the step segment again
	assert.NoError(t, err)
	assert.Equal(t, 46.0, value)
}

func TestProfileSourceUnknownProfile(t *testing.T) {
	// WHEN
	_, err := NewSource(configuration.SourceConfig{
		ID:      "sim",
		Profile: &configuration.ProfileSourceConfig{Profile: "missing"},
	}, nil)

	// THEN
	assert.Error(t, err)
}
