package stations

import (
	"context"
	"fmt"

	onebusaway "github.com/OneBusAway/go-sdk"
	"github.com/OneBusAway/go-sdk/option"
	"trainsearch.org/internal/geo"
	"trainsearch.org/internal/models"
)

// loadStationsFromOba resolves the configured stop IDs of src through the
// OneBusAway REST API. Any failing stop fails the whole source so a partial
// set never replaces a complete one.
func loadStationsFromOba(ctx context.Context, src models.StationSource) ([]*geo.Station, error) {
	client := onebusaway.NewClient(
		option.WithAPIKey(src.ObaApiKey),
		option.WithBaseURL(src.ObaBaseURL),
		option.WithMaxRetries(1),
	)

	stations := make([]*geo.Station, 0, len(src.StopIDs))
	for _, stopID := range src.StopIDs {
		response, err := client.Stop.Get(ctx, stopID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch stop %s from %s: %w", stopID, src.ObaBaseURL, err)
		}
		if response == nil {
			return nil, fmt.Errorf("empty response for stop %s from %s", stopID, src.ObaBaseURL)
		}

		entry := response.Data.Entry
		id := entry.ID
		if id == "" {
			id = stopID
		}
		stations = append(stations, &geo.Station{
			ID:   id,
			Name: entry.Name,
			Coordinate: geo.Coordinate{
				Latitude:  entry.Lat,
				Longitude: entry.Lon,
			},
		})
	}
	return stations, nil
}
