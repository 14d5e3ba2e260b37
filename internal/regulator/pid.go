package regulator

import (
	"github.com/voltlab/regen2go/internal/util"
)

// pidState holds the compensator memory that survives from one tick
// to the next. It is owned exclusively by a single Regulator and is
// zeroed whenever the controller leaves the active zone.
type pidState struct {
	// accumulated error over time, clamped to +-IntegralLimit
	integral float64
	// error of the previous active tick
	previousError float64
}

// pidCompensator is a fixed time step PID control law producing a
// braking current command from a voltage error. Unlike a wall clock
// driven loop, the time step is a construction time constant so that
// replaying the same sample sequence yields bit-identical outputs.
type pidCompensator struct {
	// Proportional Constant (A/V)
	kp float64
	// Integral Constant (A/(V*s))
	ki float64
	// Derivative Constant (A*s/V)
	kd float64
	// fixed tick interval in seconds
	dt float64
	// anti-windup clamp on the accumulated integral (V*s)
	integralLimit float64
	// maximum output current (A)
	maxCurrent float64

	state pidState
}

func newPidCompensator(kp, ki, kd, dt, integralLimit, maxCurrent float64) *pidCompensator {
	return &pidCompensator{
		kp:            kp,
		ki:            ki,
		kd:            kd,
		dt:            dt,
		integralLimit: integralLimit,
		maxCurrent:    maxCurrent,
	}
}

// step advances the compensator by one tick and returns the clamped
// braking current command. Only called while in the active zone.
func (p *pidCompensator) step(err float64) float64 {
	proportional := p.kp * err

	// integral accumulates the raw error and is clamped before scaling
	// by ki, so the integral contribution is bounded by ki*integralLimit
	p.state.integral += err * p.dt
	p.state.integral = util.Coerce(p.state.integral, -p.integralLimit, p.integralLimit)
	integral := p.ki * p.state.integral

	derivative := p.kd * (err - p.state.previousError) / p.dt

	// this path only ever commands braking current, never propulsion,
	// so the lower clamp is zero even though the raw sum can go negative
	output := util.Coerce(proportional+integral+derivative, 0, p.maxCurrent)

	p.state.previousError = err

	return output
}

// reset zeroes the compensator memory.
func (p *pidCompensator) reset() {
	p.state = pidState{}
}
