package simulation

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/voltlab/regen2go/internal/regulator"
)

func referenceParams() regulator.Params {
	return regulator.Params{
		Kp:               20.0,
		Ki:               4.0,
		Kd:               0.4,
		Dt:               0.01,
		TargetVoltage:    48.0,
		ThresholdVoltage: 47.5,
		MinimumVoltage:   45.0,
		IntegralLimit:    10.0,
		MaxCurrent:       50.0,
	}
}

func runStepResponse(t *testing.T) Result {
	reg, err := regulator.NewRegulator("bus", referenceParams())
	assert.NoError(t, err)
	profile, err := ResolveProfile("step-response", nil)
	assert.NoError(t, err)
	return Run(reg, profile)
}

func TestRunStepResponse(t *testing.T) {
	// WHEN
	result := runStepResponse(t)

	// THEN the run covers the full profile at the regulator's tick rate
	assert.Len(t, result.Currents, 1000)
	assert.Equal(t, "bus", result.RegulatorId)

	// the first 2 s at target voltage stay idle
	for i := 0; i < 200; i++ {
		assert.Equal(t, 0.0, result.Currents[i])
		assert.Equal(t, "aboveThreshold", result.Zones[i])
	}

	// the 6 s at 46 V are active with bounded output
	for i := 200; i < 800; i++ {
		assert.Equal(t, "active", result.Zones[i])
		assert.GreaterOrEqual(t, result.Currents[i], 0.0)
		assert.LessOrEqual(t, result.Currents[i], 50.0)
	}

	// stepping back to 48 V drops the output to zero within one tick
	for i := 800; i < 1000; i++ {
		assert.Equal(t, 0.0, result.Currents[i])
		assert.Equal(t, "aboveThreshold", result.Zones[i])
	}

	assert.Equal(t, 600, result.ActiveTicks())
}

func TestRunIsDeterministic(t *testing.T) {
	// GIVEN two independent runs of the same scenario
	resultA := runStepResponse(t)
	resultB := runStepResponse(t)

	// THEN the recorded tuples are bit-identical
	assert.Equal(t, resultA, resultB)
}

func TestResultSummaries(t *testing.T) {
	// GIVEN
	result := runStepResponse(t)

	// THEN
	assert.Equal(t, 50.0, result.MaxCurrent())
	assert.Equal(t, 0.0, result.FinalCurrent())
	assert.True(t, result.Settled(50, 0.1))
}

func TestResultAvgCurrent(t *testing.T) {
	// GIVEN
	result := Result{Currents: []float64{0, 25, 50}}

	// THEN
	assert.Equal(t, 25.0, result.AvgCurrent())
	assert.Equal(t, 0.0, Result{}.AvgCurrent())
}

func TestResultSettledNeedsEnoughSamples(t *testing.T) {
	// GIVEN
	result := Result{Currents: []float64{0, 0, 0}}

	// THEN
	assert.False(t, result.Settled(50, 0.1))
}

func TestWriteCSV(t *testing.T) {
	// GIVEN
	result := runStepResponse(t)
	path := filepath.Join(t.TempDir(), "run.csv")

	// WHEN
	err := WriteCSV(result, path)

	// THEN
	assert.NoError(t, err)
	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Equal(t, "time,voltage,current,zone", lines[0])
	assert.Len(t, lines, 1001)
	assert.Equal(t, "0,48,0,aboveThreshold", lines[1])
}

func TestRenderPlots(t *testing.T) {
	// GIVEN
	result := runStepResponse(t)

	// WHEN
	currentPlot := RenderCurrentPlot(result)
	voltagePlot := RenderVoltagePlot(result)

	// THEN
	assert.Contains(t, currentPlot, "Regen current (A) / time")
	assert.Contains(t, voltagePlot, "Bus voltage (V) / time")
}
