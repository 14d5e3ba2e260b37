package configuration

import "time"

const (
	InterpolationStep   = "step"
	InterpolationLinear = "linear"
)

// ProfilePoints maps a time offset in seconds to a bus voltage in volts.
type ProfilePoints map[float64]float64

// ProfileConfig describes a synthetic bus voltage sequence, used by the
// simulation harness and by profile playback sources. A profile is
// either a set of points over a duration, or a composite concatenation
// of other profiles.
type ProfileConfig struct {
	ID string `json:"id"`

	// Total length of the profile. Required for point based profiles,
	// derived for composites.
	Duration time.Duration `json:"duration,omitempty"`
	// How voltage behaves between points: "step" holds the previous
	// point's value, "linear" ramps towards the next point.
	Interpolation string        `json:"interpolation,omitempty"`
	Points        ProfilePoints `json:"points,omitempty"`

	// Ordered list of profile ids played back to back.
	Composite []string `json:"composite,omitempty"`
}
