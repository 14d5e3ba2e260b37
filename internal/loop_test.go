package internal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/voltlab/regen2go/internal/configuration"
	"github.com/voltlab/regen2go/internal/regulator"
)

type fakeSource struct {
	id        string
	value     float64
	err       error
	movingAvg float64
}

func (s *fakeSource) GetId() string {
	return s.id
}

func (s *fakeSource) GetConfig() configuration.SourceConfig {
	return configuration.SourceConfig{ID: s.id}
}

func (s *fakeSource) GetValue() (float64, error) {
	return s.value, s.err
}

func (s *fakeSource) GetMovingAvg() float64 {
	return s.movingAvg
}

func (s *fakeSource) SetMovingAvg(avg float64) {
	s.movingAvg = avg
}

func testRegulatorConfig() configuration.RegulatorConfig {
	return configuration.RegulatorConfig{
		ID:               "bus",
		Source:           "adc",
		Kp:               20.0,
		Ki:               4.0,
		Kd:               0.4,
		TickInterval:     10 * time.Millisecond,
		TargetVoltage:    48.0,
		ThresholdVoltage: 47.5,
		MinimumVoltage:   36.0,
		IntegralLimit:    10.0,
		MaxCurrent:       50.0,
		EngageCurrent:    0.1,
	}
}

func newTestLoop(t *testing.T, config configuration.RegulatorConfig) *regulatorLoop {
	reg, err := regulator.NewRegulator(config.ID, RegulatorParams(config))
	assert.NoError(t, err)
	return NewRegulatorLoop(reg, config).(*regulatorLoop)
}

func TestRegulatorLoopEngageAndReleaseEdges(t *testing.T) {
	// GIVEN
	loop := newTestLoop(t, testRegulatorConfig())
	source := &fakeSource{id: "adc", movingAvg: 48.0}

	// WHEN the bus sits above the regen threshold
	loop.tick(source)

	// THEN the motor stays released
	assert.False(t, loop.engaged)

	// WHEN the bus sags into the active band
	source.movingAvg = 46.0
	loop.tick(source)

	// THEN the loop engages
	assert.True(t, loop.engaged)

	// WHEN the bus recovers above the threshold
	source.movingAvg = 48.0
	loop.tick(source)

	// THEN the motor is released again
	assert.False(t, loop.engaged)
}

func TestRegulatorLoopStaysReleasedAtOrBelowEngageCurrent(t *testing.T) {
	// GIVEN a gain so small that the command cannot exceed the
	// engage current within the active band
	config := testRegulatorConfig()
	config.Kp = 0.04
	config.Ki = 0.0
	config.Kd = 0.0
	loop := newTestLoop(t, config)
	source := &fakeSource{id: "adc", movingAvg: 45.5}

	// WHEN the command lands exactly on the engage current
	loop.tick(source)

	// THEN the motor is not engaged
	assert.True(t, loop.regulator.IsRegenActive())
	assert.Equal(t, 0.1, loop.regulator.GetLastOutput())
	assert.False(t, loop.engaged)
}

func TestRegulatorLoopZeroEngageCurrentEngagesOnAnyCommand(t *testing.T) {
	// GIVEN
	config := testRegulatorConfig()
	config.Kp = 0.04
	config.Ki = 0.0
	config.Kd = 0.0
	config.EngageCurrent = 0.0
	loop := newTestLoop(t, config)
	source := &fakeSource{id: "adc", movingAvg: 45.5}

	// WHEN
	loop.tick(source)

	// THEN
	assert.True(t, loop.engaged)
}
