package models

import "trainsearch.org/internal/geo"

// StationRecord is the flat JSON shape of a station in files and API payloads.
type StationRecord struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (r StationRecord) Station() geo.Station {
	return geo.Station{
		ID:   r.ID,
		Name: r.Name,
		Coordinate: geo.Coordinate{
			Latitude:  r.Latitude,
			Longitude: r.Longitude,
		},
	}
}

func NewStationRecord(s geo.Station) StationRecord {
	return StationRecord{
		ID:        s.ID,
		Name:      s.Name,
		Latitude:  s.Latitude,
		Longitude: s.Longitude,
	}
}
