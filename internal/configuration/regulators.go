package configuration

import "time"

// RegulatorConfig describes one closed loop bus voltage regulator.
// All values are immutable for the lifetime of a control session.
type RegulatorConfig struct {
	ID string `json:"id"`
	// id of the voltage source this regulator samples from
	Source string `json:"source"`

	// Proportional gain (A/V)
	Kp float64 `json:"kp"`
	// Integral gain (A/(V*s))
	Ki float64 `json:"ki"`
	// Derivative gain (A*s/V)
	Kd float64 `json:"kd"`

	// Control tick interval
	TickInterval time.Duration `json:"tickInterval"`

	// Bus voltage setpoint (V)
	TargetVoltage float64 `json:"targetVoltage"`
	// Regen control band upper edge (V), exclusive
	ThresholdVoltage float64 `json:"thresholdVoltage"`
	// Regen control band lower edge (V), exclusive
	MinimumVoltage float64 `json:"minimumVoltage"`

	// Anti-windup clamp magnitude on the accumulated integral (V*s)
	IntegralLimit float64 `json:"integralLimit"`
	// Maximum braking current (A)
	MaxCurrent float64 `json:"maxCurrent"`

	// Commanded currents at or below this value release the motor
	// instead of engaging regen; zero engages on any positive command
	EngageCurrent float64 `json:"engageCurrent"`
}
