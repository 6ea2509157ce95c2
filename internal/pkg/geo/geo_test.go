package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance_IdenticalPoints(t *testing.T) {
	assert.Equal(t, float64(0), Distance(12.9716, 77.5946, 12.9716, 77.5946))
}

func TestDistance_KnownPair(t *testing.T) {
	// Bangalore to Chennai is roughly 290 km great-circle.
	d := Distance(12.9716, 77.5946, 13.0827, 80.2707)
	assert.InDelta(t, 290_000, d, 15_000)
}

func TestDistance_Symmetry(t *testing.T) {
	a := Distance(12.9716, 77.5946, 13.0827, 80.2707)
	b := Distance(13.0827, 80.2707, 12.9716, 77.5946)
	assert.InDelta(t, a, b, 0.0001)
}

func TestEvaluate_DisabledZoneAllowsAnything(t *testing.T) {
	zone := Zone{Enabled: false}

	result := Evaluate(zone, nil)
	assert.True(t, result.Allowed)
	assert.Equal(t, ReasonDisabled, result.Reason)

	result = Evaluate(zone, &Point{Latitude: 0, Longitude: 0})
	assert.True(t, result.Allowed)
}

func TestEvaluate_EnabledZoneRequiresLocation(t *testing.T) {
	zone := Zone{Enabled: true, Latitude: 12.9716, Longitude: 77.5946, RadiusMeters: 100}

	result := Evaluate(zone, nil)
	assert.False(t, result.Allowed)
	assert.Equal(t, ReasonNoLocation, result.Reason)
}

func TestEvaluate_InsideRadius(t *testing.T) {
	zone := Zone{Enabled: true, Latitude: 12.9716, Longitude: 77.5946, RadiusMeters: 100}

	result := Evaluate(zone, &Point{Latitude: 12.9716, Longitude: 77.5946})
	assert.True(t, result.Allowed)
	assert.Equal(t, ReasonAllowed, result.Reason)
	assert.Equal(t, float64(0), result.DistanceMeters)
}

func TestEvaluate_OutsideRadius(t *testing.T) {
	zone := Zone{Enabled: true, Latitude: 12.9716, Longitude: 77.5946, RadiusMeters: 100}

	// ~1.1 km north of the zone center.
	result := Evaluate(zone, &Point{Latitude: 12.9816, Longitude: 77.5946})
	assert.False(t, result.Allowed)
	assert.Equal(t, ReasonOutOfRange, result.Reason)
	assert.Greater(t, result.DistanceMeters, float64(1000))
}

func TestEvaluate_BoundaryIsInclusive(t *testing.T) {
	zone := Zone{Enabled: true, Latitude: 0, Longitude: 0, RadiusMeters: 0}

	result := Evaluate(zone, &Point{Latitude: 0, Longitude: 0})
	assert.True(t, result.Allowed)
}
