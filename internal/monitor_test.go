package internal

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/voltlab/regen2go/internal/configuration"
)

func TestUpdateSourceFoldsSampleIntoMovingAvg(t *testing.T) {
	// GIVEN
	configuration.CurrentConfig.VoltageRollingWindowSize = 10
	source := &fakeSource{id: "adc", value: 50.0, movingAvg: 48.0}

	// WHEN
	updateSource(source)

	// THEN
	assert.InDelta(t, 48.2, source.movingAvg, 1e-9)
}

func TestUpdateSourceDropsNonFiniteSamples(t *testing.T) {
	// GIVEN
	configuration.CurrentConfig.VoltageRollingWindowSize = 10

	for _, value := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		source := &fakeSource{id: "adc", value: value, movingAvg: 48.0}

		// WHEN
		updateSource(source)

		// THEN the moving average is untouched
		assert.Equal(t, 48.0, source.movingAvg)
	}
}

func TestUpdateSourceIgnoresReadErrors(t *testing.T) {
	// GIVEN
	configuration.CurrentConfig.VoltageRollingWindowSize = 10
	source := &fakeSource{id: "adc", err: errors.New("open /var/run/busvoltage: no such file or directory"), movingAvg: 48.0}

	// WHEN
	updateSource(source)

	// THEN
	assert.Equal(t, 48.0, source.movingAvg)
}
