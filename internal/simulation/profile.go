package simulation

import (
	"fmt"
	"sort"

	"github.com/voltlab/regen2go/internal/configuration"
	"github.com/voltlab/regen2go/internal/util"
)

// Profile is a deterministic bus voltage sequence over time.
type Profile interface {
	// VoltageAt returns the bus voltage at the given time offset in
	// seconds. Offsets outside [0, Duration] clamp to the edge values.
	VoltageAt(t float64) float64
	// Duration returns the total length of the profile in seconds.
	Duration() float64
}

type pointsProfile struct {
	times         []float64
	voltages      []float64
	interpolation string
	duration      float64
}

type compositeProfile struct {
	parts    []Profile
	duration float64
}

// NewProfile builds a Profile from its configuration. Composite parts
// are resolved against the given profile configs, which the config
// validation has already checked for existence and cycles.
func NewProfile(config configuration.ProfileConfig, all []configuration.ProfileConfig) (Profile, error) {
	if config.Points != nil {
		return newPointsProfile(config)
	}

	if len(config.Composite) > 0 {
		parts := make([]Profile, 0, len(config.Composite))
		duration := 0.0
		for _, partId := range config.Composite {
			partConfig, err := profileConfigById(partId, all)
			if err != nil {
				return nil, fmt.Errorf("profile %s: %w", config.ID, err)
			}
			part, err := NewProfile(partConfig, all)
			if err != nil {
				return nil, err
			}
			parts = append(parts, part)
			duration += part.Duration()
		}
		return &compositeProfile{
			parts:    parts,
			duration: duration,
		}, nil
	}

	return nil, fmt.Errorf("no matching profile type for profile: %s", config.ID)
}

func newPointsProfile(config configuration.ProfileConfig) (Profile, error) {
	if len(config.Points) == 0 {
		return nil, fmt.Errorf("profile %s: no points", config.ID)
	}

	interpolation := config.Interpolation
	if interpolation == "" {
		interpolation = configuration.InterpolationStep
	}

	times := make([]float64, 0, len(config.Points))
	for t := range config.Points {
		times = append(times, t)
	}
	sort.Float64s(times)

	voltages := make([]float64, 0, len(times))
	for _, t := range times {
		voltages = append(voltages, config.Points[t])
	}

	return &pointsProfile{
		times:         times,
		voltages:      voltages,
		interpolation: interpolation,
		duration:      config.Duration.Seconds(),
	}, nil
}

func profileConfigById(id string, all []configuration.ProfileConfig) (configuration.ProfileConfig, error) {
	for _, config := range all {
		if config.ID == id {
			return config, nil
		}
	}
	return configuration.ProfileConfig{}, fmt.Errorf("no profile definition with id '%s' found", id)
}

func (p *pointsProfile) VoltageAt(t float64) float64 {
	if t <= p.times[0] {
		return p.voltages[0]
	}

	for i := 0; i < len(p.times)-1; i++ {
		if t >= p.times[i+1] {
			continue
		}

		if p.interpolation == configuration.InterpolationLinear {
			ratio := util.Ratio(t, p.times[i], p.times[i+1])
			return p.voltages[i] + ratio*(p.voltages[i+1]-p.voltages[i])
		}
		// step interpolation holds the previous point's value
		return p.voltages[i]
	}

	return p.voltages[len(p.voltages)-1]
}

func (p *pointsProfile) Duration() float64 {
	return p.duration
}

func (p *compositeProfile) VoltageAt(t float64) float64 {
	offset := 0.0
	for i, part := range p.parts {
		if t < offset+part.Duration() || i == len(p.parts)-1 {
			return part.VoltageAt(t - offset)
		}
		offset += part.Duration()
	}
	return 0
}

func (p *compositeProfile) Duration() float64 {
	return p.duration
}
