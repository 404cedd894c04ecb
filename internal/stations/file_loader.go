package stations

import (
	"encoding/json"
	"fmt"
	"os"

	"trainsearch.org/internal/geo"
	"trainsearch.org/internal/models"
)

// loadStationsFromFile reads a JSON array of station records.
func loadStationsFromFile(path string) ([]*geo.Station, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read station file %s: %w", path, err)
	}

	var records []models.StationRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse station file %s: %w", path, err)
	}

	stations := make([]*geo.Station, 0, len(records))
	for _, r := range records {
		if r.ID == "" {
			return nil, fmt.Errorf("station file %s: station without id", path)
		}
		st := r.Station()
		stations = append(stations, &st)
	}
	return stations, nil
}
