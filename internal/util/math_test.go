package util

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestCoerceInsideRange(t *testing.T) {
	// GIVEN
	value := 25.0

	// WHEN
	result := Coerce(value, 0, 50)

	// THEN
	assert.Equal(t, 25.0, result)
}

func TestCoerceBelowRange(t *testing.T) {
	// GIVEN
	value := -3.7

	// WHEN
	result := Coerce(value, 0, 50)

	// THEN
	assert.Equal(t, 0.0, result)
}

func TestCoerceAboveRange(t *testing.T) {
	// GIVEN
	value := 51.2

	// WHEN
	result := Coerce(value, 0, 50)

	// THEN
	assert.Equal(t, 50.0, result)
}

func TestAvg(t *testing.T) {
	// GIVEN
	values := []float64{46.0, 47.0, 48.0}

	// WHEN
	result := Avg(values)

	// THEN
	assert.Equal(t, 47.0, result)
}

func TestRatio(t *testing.T) {
	// GIVEN
	target := 46.25
	rangeMin := 45.0
	rangeMax := 47.5

	// WHEN
	result := Ratio(target, rangeMin, rangeMax)

	// THEN
	assert.Equal(t, 0.5, result)
}

func TestUpdateSimpleMovingAvg(t *testing.T) {
	// GIVEN
	oldAvg := 48.0
	n := 4

	// WHEN
	newAvg := UpdateSimpleMovingAvg(oldAvg, n, 46.0)

	// THEN
	assert.Equal(t, 47.5, newAvg)
}
