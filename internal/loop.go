package internal

import (
	"context"
	"time"

	"github.com/voltlab/regen2go/internal/configuration"
	"github.com/voltlab/regen2go/internal/regulator"
	"github.com/voltlab/regen2go/internal/sources"
	"github.com/voltlab/regen2go/internal/ui"
)

type RegulatorLoop interface {
	Run(ctx context.Context) error
}

type regulatorLoop struct {
	regulator *regulator.Regulator
	config    configuration.RegulatorConfig

	engaged bool
}

func NewRegulatorLoop(reg *regulator.Regulator, config configuration.RegulatorConfig) RegulatorLoop {
	return &regulatorLoop{
		regulator: reg,
		config:    config,
	}
}

func (l *regulatorLoop) Run(ctx context.Context) error {
	source, exists := sources.SourceMap.Get(l.config.Source)
	if !exists {
		ui.Fatal("Regulator %s: source %s was not initialized", l.config.ID, l.config.Source)
	}

	tick := time.Tick(l.config.TickInterval)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tick:
			l.tick(source)
		}
	}
}

// tick advances the regulator by one sample. Commands at or below the
// configured engage current release the motor instead of engaging
// regen; a threshold of zero engages on any positive command.
func (l *regulatorLoop) tick(source sources.Source) {
	voltage := source.GetMovingAvg()
	current := l.regulator.Tick(voltage)

	engaged := current > l.config.EngageCurrent
	if engaged != l.engaged {
		if engaged {
			ui.Debug("Regulator %s: engaging at %.2f V, %.2f A", l.config.ID, voltage, current)
		} else {
			ui.Debug("Regulator %s: releasing at %.2f V", l.config.ID, voltage)
		}
		l.engaged = engaged
	}
}
