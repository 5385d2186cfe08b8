package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bengaluru = GeoPoint{Latitude: 12.9716, Longitude: 77.5946}

func TestHaversineKM_IdenticalPoints(t *testing.T) {
	assert.Zero(t, HaversineKM(bengaluru, bengaluru))
}

func TestHaversineKM_Symmetric(t *testing.T) {
	other := GeoPoint{Latitude: 13.0827, Longitude: 80.2707}
	assert.Equal(t, HaversineKM(bengaluru, other), HaversineKM(other, bengaluru))
}

func TestHaversineKM_KnownDistance(t *testing.T) {
	// One degree of latitude is about 111.19 km.
	a := GeoPoint{Latitude: 12, Longitude: 77}
	b := GeoPoint{Latitude: 13, Longitude: 77}
	assert.InDelta(t, 111.19, HaversineKM(a, b), 0.2)
}

func TestOffsetNear_StaysWithinRadius(t *testing.T) {
	for i := 0; i < 1000; i++ {
		p := OffsetNear(bengaluru, 2)
		assert.LessOrEqual(t, HaversineKM(bengaluru, p), 2.0+1e-9)
	}
}

func TestOffsetNear_HighLatitude(t *testing.T) {
	polar := GeoPoint{Latitude: 89.9, Longitude: 10}
	for i := 0; i < 100; i++ {
		p := OffsetNear(polar, 2)
		assert.True(t, IsValidCoordinates(p.Latitude, p.Longitude))
	}
}

func TestComputeRoute(t *testing.T) {
	from := GeoPoint{Latitude: 12.9, Longitude: 77.5}
	to := GeoPoint{Latitude: 13.0, Longitude: 77.6}

	route := ComputeRoute(from, to, 12)
	require.Len(t, route, 13)

	assert.Equal(t, from.Latitude, route[0].Latitude)
	assert.Equal(t, from.Longitude, route[0].Longitude)
	assert.Equal(t, to.Latitude, route[12].Latitude)
	assert.Equal(t, to.Longitude, route[12].Longitude)

	// Interior points advance monotonically toward the destination.
	for i := 1; i < len(route); i++ {
		assert.Greater(t, route[i].Latitude, route[i-1].Latitude)
		assert.Greater(t, route[i].Longitude, route[i-1].Longitude)
	}
}

func TestComputeRoute_MinimumSteps(t *testing.T) {
	route := ComputeRoute(bengaluru, bengaluru, 0)
	assert.Len(t, route, 2)
}

func TestEstimateETAMinutes(t *testing.T) {
	assert.Equal(t, 4, EstimateETAMinutes(2, 30))
	assert.Equal(t, 0, EstimateETAMinutes(0, 30))
	assert.Equal(t, 60, EstimateETAMinutes(30, 30))

	// Non-positive speed falls back to the default.
	assert.Equal(t, 4, EstimateETAMinutes(2, 0))
}

func TestRoundKM(t *testing.T) {
	assert.Equal(t, 1.23, RoundKM(1.23456))
	assert.Equal(t, 1.24, RoundKM(1.235))
	assert.Equal(t, 0.0, RoundKM(0))
}

func TestIsValidCoordinates(t *testing.T) {
	assert.True(t, IsValidCoordinates(0, 0))
	assert.True(t, IsValidCoordinates(-90, 180))
	assert.False(t, IsValidCoordinates(90.1, 0))
	assert.False(t, IsValidCoordinates(0, -180.1))
}
