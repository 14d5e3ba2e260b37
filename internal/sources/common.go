package sources

import (
	"fmt"

	cmap "github.com/orcaman/concurrent-map/v2"
	"github.com/voltlab/regen2go/internal/configuration"
	"github.com/voltlab/regen2go/internal/simulation"
)

var (
	SourceMap = cmap.New[Source]()
)

// Source provides one bus voltage sample per call.
type Source interface {
	GetId() string

	GetConfig() configuration.SourceConfig

	// GetValue returns the current value of this source
	GetValue() (float64, error)

	// GetMovingAvg returns the moving average of this source's value
	GetMovingAvg() float64
	SetMovingAvg(avg float64)
}

func NewSource(config configuration.SourceConfig, profiles []configuration.ProfileConfig) (Source, error) {
	if config.File != nil {
		return &FileSource{
			Config: config,
		}, nil
	}

	if config.Profile != nil {
		profile, err := simulation.ResolveProfile(config.Profile.Profile, profiles)
		if err != nil {
			return nil, fmt.Errorf("source %s: %w", config.ID, err)
		}
		return NewProfileSource(config, profile), nil
	}

	return nil, fmt.Errorf("no matching source type for source: %s", config.ID)
}
