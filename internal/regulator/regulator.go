package regulator

import (
	"fmt"
	"math"
	"sync"

	cmap "github.com/orcaman/concurrent-map/v2"
)

var (
	RegulatorMap = cmap.New[*Regulator]()
)

// Params is the immutable configuration of a single control session.
type Params struct {
	// Proportional gain (A/V)
	Kp float64 `json:"kp"`
	// Integral gain (A/(V*s))
	Ki float64 `json:"ki"`
	// Derivative gain (A*s/V)
	Kd float64 `json:"kd"`
	// Tick interval in seconds
	Dt float64 `json:"dt"`
	// Bus voltage the controller pulls back towards (V)
	TargetVoltage float64 `json:"targetVoltage"`
	// Regen starts when the bus voltage drops below this value (V)
	ThresholdVoltage float64 `json:"thresholdVoltage"`
	// All regen stops at or below this protection voltage (V)
	MinimumVoltage float64 `json:"minimumVoltage"`
	// Anti-windup clamp on the accumulated integral (V*s)
	IntegralLimit float64 `json:"integralLimit"`
	// Maximum braking current (A)
	MaxCurrent float64 `json:"maxCurrent"`
}

// Validate checks that the parameter set describes a usable control
// session. A Regulator cannot be constructed from invalid params.
func (p Params) Validate() error {
	if p.Dt <= 0 {
		return fmt.Errorf("tick interval must be positive, got %g", p.Dt)
	}
	if p.MinimumVoltage >= p.ThresholdVoltage {
		return fmt.Errorf("minimum voltage (%g) must be below threshold voltage (%g)",
			p.MinimumVoltage, p.ThresholdVoltage)
	}
	if p.Kp < 0 || p.Ki < 0 || p.Kd < 0 {
		return fmt.Errorf("gains must not be negative, got kp=%g ki=%g kd=%g", p.Kp, p.Ki, p.Kd)
	}
	if p.MaxCurrent <= 0 {
		return fmt.Errorf("max current must be positive, got %g", p.MaxCurrent)
	}
	if p.IntegralLimit < 0 {
		return fmt.Errorf("integral limit must not be negative, got %g", p.IntegralLimit)
	}
	return nil
}

// Statistics counts noteworthy regulator events since startup.
type Statistics struct {
	// Number of transitions out of the active zone, each of which
	// discards the accumulated compensator state
	StateResetCount int `json:"stateResetCount"`
	// Number of non-finite voltage samples that were rejected
	RejectedSampleCount int `json:"rejectedSampleCount"`
}

// Regulator is the zone gated controller state machine. Each Tick it
// reclassifies the sampled bus voltage and either advances the PID
// compensator (active zone) or holds it reset (anywhere else).
//
// A Regulator owns its compensator state exclusively, there are no
// package level side channels. Multiple independent instances can run
// side by side, e.g. one per bus.
type Regulator struct {
	id     string
	params Params

	mu    sync.Mutex
	pid   *pidCompensator
	zone  Zone
	stats Statistics

	lastVoltage float64
	lastOutput  float64
}

func NewRegulator(id string, params Params) (*Regulator, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("regulator %s: %w", id, err)
	}
	return &Regulator{
		id:     id,
		params: params,
		pid: newPidCompensator(
			params.Kp, params.Ki, params.Kd,
			params.Dt, params.IntegralLimit, params.MaxCurrent,
		),
		zone: ZoneAboveThreshold,
	}, nil
}

func (r *Regulator) GetId() string {
	return r.id
}

func (r *Regulator) GetParams() Params {
	return r.params
}

// Tick advances the controller by one sample period and returns the
// commanded braking current in amperes.
//
// The zone is recomputed fresh on every call, there is no debounce or
// hysteresis beyond the two thresholds themselves. Any tick spent
// outside the active zone zeroes the compensator state, not just the
// transition edge.
func (r *Regulator) Tick(voltage float64) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	// a NaN sample must never reach the integral, it would poison the
	// accumulated state for the rest of the session
	if !isFinite(voltage) {
		r.stats.RejectedSampleCount++
		r.deactivate(ZoneAboveThreshold)
		r.lastVoltage = voltage
		r.lastOutput = 0
		return 0
	}

	zone := ClassifyZone(voltage, r.params.ThresholdVoltage, r.params.MinimumVoltage)
	r.lastVoltage = voltage

	if zone != ZoneActive {
		r.deactivate(zone)
		r.lastOutput = 0
		return 0
	}

	r.zone = ZoneActive
	output := r.pid.step(r.params.TargetVoltage - voltage)
	r.lastOutput = output
	return output
}

func (r *Regulator) deactivate(zone Zone) {
	if r.zone == ZoneActive {
		r.stats.StateResetCount++
	}
	r.zone = zone
	r.pid.reset()
}

// GetZone returns the zone of the most recent tick.
func (r *Regulator) GetZone() Zone {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.zone
}

// IsRegenActive reports whether the most recent tick commanded regen,
// i.e. the bus voltage was strictly inside the control band.
func (r *Regulator) IsRegenActive() bool {
	return r.GetZone() == ZoneActive
}

// GetLastVoltage returns the most recently sampled bus voltage.
func (r *Regulator) GetLastVoltage() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastVoltage
}

// GetLastOutput returns the most recently commanded braking current.
func (r *Regulator) GetLastOutput() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastOutput
}

func (r *Regulator) GetStatistics() Statistics {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

// GetCompensatorState exposes the integral and previous error of the
// underlying compensator for inspection and testing.
func (r *Regulator) GetCompensatorState() (integral float64, previousError float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pid.state.integral, r.pid.state.previousError
}

// Status is a point in time snapshot of a regulator, suitable for
// serialization towards the REST api.
type Status struct {
	Id            string     `json:"id"`
	Params        Params     `json:"params"`
	Zone          string     `json:"zone"`
	RegenActive   bool       `json:"regenActive"`
	LastVoltage   float64    `json:"lastVoltage"`
	LastOutput    float64    `json:"lastOutput"`
	Integral      float64    `json:"integral"`
	PreviousError float64    `json:"previousError"`
	Statistics    Statistics `json:"statistics"`
}

func (r *Regulator) GetStatus() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Status{
		Id:            r.id,
		Params:        r.params,
		Zone:          r.zone.String(),
		RegenActive:   r.zone == ZoneActive,
		LastVoltage:   r.lastVoltage,
		LastOutput:    r.lastOutput,
		Integral:      r.pid.state.integral,
		PreviousError: r.pid.state.previousError,
		Statistics:    r.stats,
	}
}

func isFinite(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}
