package regulator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	testThreshold = 47.5
	testMinimum   = 45.0
)

func TestClassifyZoneAboveThreshold(t *testing.T) {
	assert.Equal(t, ZoneAboveThreshold, ClassifyZone(48.0, testThreshold, testMinimum))
	assert.Equal(t, ZoneAboveThreshold, ClassifyZone(47.6, testThreshold, testMinimum))
}

func TestClassifyZoneActive(t *testing.T) {
	assert.Equal(t, ZoneActive, ClassifyZone(47.49, testThreshold, testMinimum))
	assert.Equal(t, ZoneActive, ClassifyZone(46.0, testThreshold, testMinimum))
	assert.Equal(t, ZoneActive, ClassifyZone(45.01, testThreshold, testMinimum))
}

func TestClassifyZoneBelowMinimum(t *testing.T) {
	assert.Equal(t, ZoneBelowMinimum, ClassifyZone(44.0, testThreshold, testMinimum))
	assert.Equal(t, ZoneBelowMinimum, ClassifyZone(36.0, testThreshold, testMinimum))
}

// Both band edges are exclusive of the active zone, at exactly the
// threshold or exactly the minimum control is inactive.
func TestClassifyZoneBoundariesAreExclusive(t *testing.T) {
	assert.Equal(t, ZoneAboveThreshold, ClassifyZone(testThreshold, testThreshold, testMinimum))
	assert.Equal(t, ZoneBelowMinimum, ClassifyZone(testMinimum, testThreshold, testMinimum))

	// one ULP inside the band is already active
	justBelowThreshold := math.Nextafter(testThreshold, 0)
	justAboveMinimum := math.Nextafter(testMinimum, 100)
	assert.Equal(t, ZoneActive, ClassifyZone(justBelowThreshold, testThreshold, testMinimum))
	assert.Equal(t, ZoneActive, ClassifyZone(justAboveMinimum, testThreshold, testMinimum))
}

// classification has no history dependence
func TestClassifyZoneIsIdempotent(t *testing.T) {
	for i := 0; i < 10; i++ {
		assert.Equal(t, ZoneActive, ClassifyZone(46.0, testThreshold, testMinimum))
	}
}

func TestClassifyZoneWithFirmwareMinimum(t *testing.T) {
	// the production firmware uses a 36.0 V protection minimum
	assert.Equal(t, ZoneActive, ClassifyZone(40.0, testThreshold, 36.0))
	assert.Equal(t, ZoneBelowMinimum, ClassifyZone(36.0, testThreshold, 36.0))
	assert.Equal(t, ZoneBelowMinimum, ClassifyZone(35.9, testThreshold, 36.0))
}

func TestZoneString(t *testing.T) {
	assert.Equal(t, "belowMinimum", ZoneBelowMinimum.String())
	assert.Equal(t, "active", ZoneActive.String())
	assert.Equal(t, "aboveThreshold", ZoneAboveThreshold.String())
	assert.Equal(t, "unknown", Zone(42).String())
}
