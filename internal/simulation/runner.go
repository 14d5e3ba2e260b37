package simulation

import (
	"math"

	"github.com/voltlab/regen2go/internal/regulator"
	"github.com/voltlab/regen2go/internal/util"
)

// Result holds the recorded (time, voltage, current, zone) tuples of a
// single simulation run. Runs with identical regulator parameters and
// profiles produce bit-identical results, which makes stored results
// usable for regression comparison.
type Result struct {
	RegulatorId string           `json:"regulatorId"`
	Params      regulator.Params `json:"params"`
	Times       []float64        `json:"times"`
	Voltages    []float64        `json:"voltages"`
	Currents    []float64        `json:"currents"`
	Zones       []string         `json:"zones"`
}

// Run feeds the profile through the regulator at its fixed tick
// interval, starting from a simulated clock at zero. The regulator is
// expected to be freshly constructed, Run does not reset it.
func Run(reg *regulator.Regulator, profile Profile) Result {
	params := reg.GetParams()
	dt := params.Dt
	ticks := int(math.Round(profile.Duration() / dt))

	result := Result{
		RegulatorId: reg.GetId(),
		Params:      params,
		Times:       make([]float64, 0, ticks),
		Voltages:    make([]float64, 0, ticks),
		Currents:    make([]float64, 0, ticks),
		Zones:       make([]string, 0, ticks),
	}

	for i := 0; i < ticks; i++ {
		t := float64(i) * dt
		voltage := profile.VoltageAt(t)
		current := reg.Tick(voltage)

		result.Times = append(result.Times, t)
		result.Voltages = append(result.Voltages, voltage)
		result.Currents = append(result.Currents, current)
		result.Zones = append(result.Zones, reg.GetZone().String())
	}

	return result
}

// MaxCurrent returns the largest commanded current of the run.
func (r Result) MaxCurrent() float64 {
	max := 0.0
	for _, current := range r.Currents {
		if current > max {
			max = current
		}
	}
	return max
}

// AvgCurrent returns the mean commanded current over the whole run.
func (r Result) AvgCurrent() float64 {
	if len(r.Currents) == 0 {
		return 0
	}
	return util.Avg(r.Currents)
}

// FinalCurrent returns the commanded current of the last tick.
func (r Result) FinalCurrent() float64 {
	if len(r.Currents) == 0 {
		return 0
	}
	return r.Currents[len(r.Currents)-1]
}

// ActiveTicks returns the number of ticks spent in the active zone.
func (r Result) ActiveTicks() int {
	count := 0
	for _, zone := range r.Zones {
		if zone == regulator.ZoneActive.String() {
			count++
		}
	}
	return count
}

// Settled reports whether the commanded current stopped moving towards
// the end of the run: the maximum tick to tick difference within the
// trailing window must stay below diffThreshold.
func (r Result) Settled(windowSize int, diffThreshold float64) bool {
	if len(r.Currents) < windowSize+1 {
		return false
	}

	window := util.CreateRollingWindow(windowSize)
	util.FillWindow(window, windowSize, 2*diffThreshold)

	start := len(r.Currents) - windowSize
	for i := start; i < len(r.Currents); i++ {
		window.Append(math.Abs(r.Currents[i] - r.Currents[i-1]))
	}

	return util.GetWindowMax(window) < diffThreshold
}
