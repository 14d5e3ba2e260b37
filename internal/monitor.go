package internal

import (
	"context"
	"math"
	"time"

	"github.com/voltlab/regen2go/internal/configuration"
	"github.com/voltlab/regen2go/internal/sources"
	"github.com/voltlab/regen2go/internal/ui"
	"github.com/voltlab/regen2go/internal/util"
)

type SourceMonitor interface {
	Run(ctx context.Context) error
	GetLast() (float64, error)
}

type sourceMonitor struct {
	source      sources.Source
	pollingRate time.Duration
}

func NewSourceMonitor(source sources.Source, pollingRate time.Duration) SourceMonitor {
	return sourceMonitor{
		source:      source,
		pollingRate: pollingRate,
	}
}

func (m sourceMonitor) Run(ctx context.Context) error {
	tick := time.Tick(m.pollingRate)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tick:
			updateSource(m.source)
		}
	}
}

// read the current value of a source and fold it into the moving average
func updateSource(s sources.Source) {
	value, err := s.GetValue()
	if err != nil {
		ui.Warning("Error reading source %s: %v", s.GetId(), err)
		return
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		// a non-finite sample would poison the moving average for good
		ui.Warning("Source %s: dropping non-finite sample: %v", s.GetId(), value)
		return
	}

	n := configuration.CurrentConfig.VoltageRollingWindowSize
	lastAvg := s.GetMovingAvg()
	newAvg := util.UpdateSimpleMovingAvg(lastAvg, n, value)
	s.SetMovingAvg(newAvg)
}

func (m sourceMonitor) GetLast() (float64, error) {
	return m.source.GetValue()
}
