package geo

import (
	"math"
	"testing"
)

const tolerance = 1e-9

var (
	roma    = &Station{ID: "ROMA", Name: "Roma Termini", Coordinate: Coordinate{Latitude: 41.902, Longitude: 12.496}}
	cosenza = &Station{ID: "CS", Name: "Cosenza", Coordinate: Coordinate{Latitude: 39.309, Longitude: 16.254}}
	napoli  = &Station{ID: "NA", Name: "Napoli Centrale", Coordinate: Coordinate{Latitude: 40.853, Longitude: 14.305}}
	firenze = &Station{ID: "FI", Name: "Firenze SMN", Coordinate: Coordinate{Latitude: 43.776, Longitude: 11.248}}
	bologna = &Station{ID: "BO", Name: "Bologna Centrale", Coordinate: Coordinate{Latitude: 44.494, Longitude: 11.343}}
	bari    = &Station{ID: "BA", Name: "Bari Centrale", Coordinate: Coordinate{Latitude: 41.117, Longitude: 16.872}}
	milano  = &Station{ID: "MI", Name: "Milano Centrale", Coordinate: Coordinate{Latitude: 45.464, Longitude: 9.19}}
)

func assertClose(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s: expected %v (±%v), got %v", name, want, tol, got)
	}
}
