package sources

import (
	"math"
	"time"

	"github.com/voltlab/regen2go/internal/configuration"
	"github.com/voltlab/regen2go/internal/simulation"
)

// ProfileSource plays a voltage profile back against the wall clock,
// acting as a stand-in for live hardware during dry runs.
type ProfileSource struct {
	Config    configuration.SourceConfig `json:"configuration"`
	MovingAvg float64                    `json:"movingAvg"`

	profile simulation.Profile
	started time.Time
	// now is swappable for tests
	now func() time.Time
}

func NewProfileSource(config configuration.SourceConfig, profile simulation.Profile) *ProfileSource {
	return &ProfileSource{
		Config:  config,
		profile: profile,
		started: time.Now(),
		now:     time.Now,
	}
}

func (source *ProfileSource) GetId() string {
	return source.Config.ID
}

func (source *ProfileSource) GetConfig() configuration.SourceConfig {
	return source.Config
}

func (source *ProfileSource) GetValue() (float64, error) {
	elapsed := source.now().Sub(source.started).Seconds()
	duration := source.profile.Duration()

	if source.Config.Profile.Loop && duration > 0 {
		elapsed = math.Mod(elapsed, duration)
	}

	return source.profile.VoltageAt(elapsed), nil
}

func (source *ProfileSource) GetMovingAvg() (avg float64) {
	return source.MovingAvg
}

func (source *ProfileSource) SetMovingAvg(avg float64) {
	source.MovingAvg = avg
}
