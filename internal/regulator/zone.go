package regulator

// Zone describes where the sampled bus voltage sits relative to the
// regen control band.
type Zone int

const (
	// ZoneBelowMinimum means the bus voltage is at or below the minimum
	// protection voltage, all regen is stopped.
	ZoneBelowMinimum Zone = iota
	// ZoneActive means the bus voltage is strictly inside the control band,
	// the compensator commands braking current.
	ZoneActive
	// ZoneAboveThreshold means the bus voltage is at or above the regen
	// start threshold, no braking is needed.
	ZoneAboveThreshold
)

func (z Zone) String() string {
	switch z {
	case ZoneBelowMinimum:
		return "belowMinimum"
	case ZoneActive:
		return "active"
	case ZoneAboveThreshold:
		return "aboveThreshold"
	}
	return "unknown"
}

// ClassifyZone maps an instantaneous bus voltage to its control zone.
// Both band edges are exclusive of the active zone: at exactly threshold
// or exactly minimum the controller is inactive.
func ClassifyZone(voltage float64, threshold float64, minimum float64) Zone {
	if voltage >= threshold {
		return ZoneAboveThreshold
	}
	if voltage <= minimum {
		return ZoneBelowMinimum
	}
	return ZoneActive
}
