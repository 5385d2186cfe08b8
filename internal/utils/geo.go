package utils

import (
	"math"
	"math/rand"

	"swiftaid/internal/models"
)

const (
	EarthRadiusKM = 6371.0

	// One degree of latitude is close to 111 km everywhere; longitude degrees
	// shrink with cos(latitude).
	kmPerDegree = 111.0
)

// GeoPoint is a plain coordinate pair used by the dispatch math.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func IsValidCoordinates(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// HaversineKM returns the great-circle distance between two points in
// kilometers. Symmetric, and exactly zero for identical points.
func HaversineKM(a, b GeoPoint) float64 {
	if a == b {
		return 0
	}

	lat1Rad := a.Latitude * math.Pi / 180
	lat2Rad := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLng := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKM * c
}

// OffsetNear returns a synthetic point within maxKM kilometers of origin, with
// independent random sign and magnitude per axis. Each axis is bounded by
// maxKM/sqrt(2) so the combined offset stays inside the radius. Used when an
// emergency has no usable coordinates, or when the clamp policy regenerates a
// destination.
func OffsetNear(origin GeoPoint, maxKM float64) GeoPoint {
	perAxisKM := maxKM / math.Sqrt2
	latOff := perAxisKM / kmPerDegree

	// Longitude degrees converge toward the poles; cap the divisor so the
	// offset cannot blow up at extreme latitudes.
	cosLat := math.Cos(origin.Latitude * math.Pi / 180)
	if cosLat < 0.01 {
		cosLat = 0.01
	}
	lngOff := perAxisKM / (kmPerDegree * cosLat)

	return GeoPoint{
		Latitude:  origin.Latitude + randomSign()*rand.Float64()*latOff,
		Longitude: origin.Longitude + randomSign()*rand.Float64()*lngOff,
	}
}

// ComputeRoute linearly interpolates steps+1 points from from to to, both
// endpoints included. Deliberately not geodesic; the route is advisory only.
func ComputeRoute(from, to GeoPoint, steps int) []models.RoutePoint {
	if steps < 1 {
		steps = 1
	}

	points := make([]models.RoutePoint, 0, steps+1)
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		points = append(points, models.RoutePoint{
			Latitude:  from.Latitude + (to.Latitude-from.Latitude)*t,
			Longitude: from.Longitude + (to.Longitude-from.Longitude)*t,
		})
	}

	// Pin the endpoints so float drift can't move them.
	points[0] = models.RoutePoint{Latitude: from.Latitude, Longitude: from.Longitude}
	points[steps] = models.RoutePoint{Latitude: to.Latitude, Longitude: to.Longitude}

	return points
}

// EstimateETAMinutes converts a distance into whole minutes at the assumed
// average speed.
func EstimateETAMinutes(distanceKM, averageSpeedKMH float64) int {
	if averageSpeedKMH <= 0 {
		averageSpeedKMH = 30 // city ambulance average
	}
	return int(math.Round(distanceKM / averageSpeedKMH * 60))
}

// RoundKM rounds a distance to two decimals for display and persistence.
func RoundKM(distanceKM float64) float64 {
	return math.Round(distanceKM*100) / 100
}

func randomSign() float64 {
	if rand.Intn(2) == 0 {
		return -1
	}
	return 1
}
