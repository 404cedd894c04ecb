package geo

import (
	"encoding/json"
	"math"
)

// Undefined is the numeric form of a distance that could not be computed.
// Any negative distance handed to this package is read the same way.
const Undefined = -1.0

// Distance is a length in kilometers that may be unknown.
// The zero value is unknown, so a valid zero distance must be built with Kilometers(0).
type Distance struct {
	km    float64
	valid bool
}

// UnknownDistance is returned when an input station is missing.
var UnknownDistance = Distance{}

// Kilometers returns a known distance. Negative or NaN values yield UnknownDistance.
func Kilometers(km float64) Distance {
	if km < 0 || math.IsNaN(km) {
		return UnknownDistance
	}
	return Distance{km: km, valid: true}
}

// DistanceFromKilometers converts a sentinel-style float (-1 meaning unknown)
// into a Distance.
func DistanceFromKilometers(km float64) Distance {
	return Kilometers(km)
}

// Valid reports whether the distance is known.
func (d Distance) Valid() bool {
	return d.valid
}

// Value returns the distance and whether it is known.
func (d Distance) Value() (float64, bool) {
	return d.km, d.valid
}

// Float64 returns the distance in kilometers, or Undefined when unknown.
func (d Distance) Float64() float64 {
	if !d.valid {
		return Undefined
	}
	return d.km
}

// Add sums two distances. The result is unknown if either operand is.
func (d Distance) Add(other Distance) Distance {
	if !d.valid || !other.valid {
		return UnknownDistance
	}
	return Distance{km: d.km + other.km, valid: true}
}

// MarshalJSON writes a known distance as a number and an unknown one as null.
func (d Distance) MarshalJSON() ([]byte, error) {
	if !d.valid {
		return []byte("null"), nil
	}
	return json.Marshal(d.km)
}

// UnmarshalJSON accepts a number or null. Negative numbers decode as unknown.
func (d *Distance) UnmarshalJSON(b []byte) error {
	var v *float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	if v == nil {
		*d = UnknownDistance
		return nil
	}
	*d = Kilometers(*v)
	return nil
}
