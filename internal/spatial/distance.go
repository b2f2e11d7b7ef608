package spatial

import (
	"github.com/golang/geo/s2"
)

// Earth's mean radius.
const (
	EarthRadiusMeters = 6371000.0
	EarthRadiusKm     = 6371.0
)

// GreatCircleKm calculates the great-circle distance between two
// points in kilometers using S2 spherical geometry.
func GreatCircleKm(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusKm
}

// GreatCircleMeters calculates the great-circle distance in meters.
func GreatCircleMeters(lat1, lon1, lat2, lon2 float64) float64 {
	return GreatCircleKm(lat1, lon1, lat2, lon2) * 1000
}
