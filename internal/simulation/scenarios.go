package simulation

import (
	"time"

	"github.com/voltlab/regen2go/internal/configuration"
)

// Built-in simulation scenarios, available to the simulate command
// without any profile configuration. The step response is the
// standard acceptance scenario, the recovery scenario mirrors the
// smooth drop/recovery sweep used on the bench, and the chatter
// scenario straddles the regen threshold to make the single sample
// zone reset behavior observable.
var builtinProfiles = []configuration.ProfileConfig{
	{
		ID:            "step-response",
		Duration:      10 * time.Second,
		Interpolation: configuration.InterpolationStep,
		Points: configuration.ProfilePoints{
			0: 48.0,
			2: 46.0,
			8: 48.0,
		},
	},
	{
		ID:            "recovery",
		Duration:      10 * time.Second,
		Interpolation: configuration.InterpolationLinear,
		Points: configuration.ProfilePoints{
			0:  48.0,
			2:  48.0,
			3:  47.5,
			5:  46.0,
			6:  45.0,
			8:  46.5,
			10: 48.0,
		},
	},
	{
		ID:            "chatter",
		Duration:      5 * time.Second,
		Interpolation: configuration.InterpolationStep,
		Points: configuration.ProfilePoints{
			0.0: 47.6,
			0.5: 47.49,
			1.0: 47.5,
			1.5: 47.45,
			2.0: 47.55,
			2.5: 47.4,
			3.0: 47.5,
			3.5: 47.3,
			4.0: 48.0,
		},
	},
}

// BuiltinProfileIds lists the ids of all bundled scenarios.
func BuiltinProfileIds() []string {
	ids := make([]string, 0, len(builtinProfiles))
	for _, config := range builtinProfiles {
		ids = append(ids, config.ID)
	}
	return ids
}

// ResolveProfile finds the named profile among the configured profiles
// first and the bundled scenarios second, and builds it.
func ResolveProfile(id string, configured []configuration.ProfileConfig) (Profile, error) {
	for _, config := range configured {
		if config.ID == id {
			return NewProfile(config, configured)
		}
	}
	for _, config := range builtinProfiles {
		if config.ID == id {
			return NewProfile(config, builtinProfiles)
		}
	}
	return nil, &UnknownProfileError{Id: id}
}

type UnknownProfileError struct {
	Id string
}

func (e *UnknownProfileError) Error() string {
	return "no profile or built-in scenario with id '" + e.Id + "' found"
}
