package geo

import "math"

// earthRadiusKm is the Earth's volumetric mean radius in kilometers.
//
// Reference: NASA Planetary Fact Sheet – Earth
// https://nssdc.gsfc.nasa.gov/planetary/factsheet/earthfact.html
const earthRadiusKm = 6371.0

func degreesToRadians(d float64) float64 {
	return d * math.Pi / 180
}

// Haversine returns the great-circle distance between a and b in kilometers.
//
//	a = sin²(Δφ/2) + cos φ1 · cos φ2 · sin²(Δλ/2)
//	c = 2 · atan2(√a, √(1−a))
//	d = R · c
//
// The result is symmetric in its arguments and zero for identical points.
func Haversine(a, b Coordinate) float64 {
	lat1 := degreesToRadians(a.Latitude)
	lat2 := degreesToRadians(b.Latitude)
	dLat := lat2 - lat1
	dLon := degreesToRadians(b.Longitude) - degreesToRadians(a.Longitude)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon
	// Rounding can push h just past 1 for antipodal points.
	h = math.Min(h, 1)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKm * c
}

// DistanceBetween returns the Haversine distance between two stations, or
// UnknownDistance when either station is nil.
func DistanceBetween(a, b *Station) Distance {
	if a == nil || b == nil {
		return UnknownDistance
	}
	return Kilometers(Haversine(a.Coordinate, b.Coordinate))
}
