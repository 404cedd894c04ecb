// Package geo turns station coordinates into distances, nearest-station
// rankings, travel-time estimates and distance-based prices.
//
// Every function in this package is a pure computation over its arguments.
// Nothing is cached, nothing is retained after a call returns, and all of it
// is safe for concurrent use.
package geo

// Coordinate is a latitude/longitude pair in decimal degrees.
//
// Latitude is expected in [-90, 90] and longitude in [-180, 180]. The range
// is not enforced: out-of-range values still produce a number, it just has no
// geographic meaning. Use IsValidLatLon when input needs checking.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Station is a named, uniquely identified point. Callers own their stations;
// this package only reads them.
type Station struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Coordinate
}

// StationDistance pairs a station with its distance from a reference point.
// It only exists as a result of NearestStations.
type StationDistance struct {
	Station    Station `json:"station"`
	Kilometers float64 `json:"distance_km"`
}
