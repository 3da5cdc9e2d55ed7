// Package geo provides the great-circle distance adapter used by the match
// engine.
package geo

import (
	"math"

	"dispatch/internal/core/domain/model/kernel"
)

// earthRadiusKm is the mean Earth radius used by the haversine formula.
const earthRadiusKm = 6371.0

// HaversineDistance returns the great-circle distance between two points in
// kilometers. Accurate to a fraction of a percent over city-scale distances,
// which is more than the matching filters need.
func HaversineDistance(a, b kernel.GeoPoint) float64 {
	latA := degreesToRadians(a.Lat())
	latB := degreesToRadians(b.Lat())
	dLat := degreesToRadians(b.Lat() - a.Lat())
	dLng := degreesToRadians(b.Lng() - a.Lng())

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)

	h := sinLat*sinLat + math.Cos(latA)*math.Cos(latB)*sinLng*sinLng
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}

func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
