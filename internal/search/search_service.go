// Package search answers train-search questions over the loaded stations:
// how far, which stations are closest, and what a trip costs.
package search

import (
	"errors"
	"fmt"
	"log/slog"

	"trainsearch.org/internal/geo"
	"trainsearch.org/internal/metrics"
	"trainsearch.org/internal/models"
)

// ErrUnknownSource is returned when no stations are loaded for a source.
var ErrUnknownSource = errors.New("unknown station source")

// StationLookup is the read side of the station registry.
type StationLookup interface {
	Get(sourceID string) ([]*geo.Station, bool)
	Station(sourceID, stationID string) *geo.Station
}

// CoverageLookup reports whether a coordinate lies inside a source's area.
type CoverageLookup interface {
	IsInBoundingBox(sourceID string, c geo.Coordinate) bool
}

// TariffProvider returns the tariff currently in force.
type TariffProvider interface {
	GetTariff() models.Tariff
}

// Quote is the estimate for travelling through Stops in order.
// When Distance is unknown, Price is the base fare and Minutes is 0.
type Quote struct {
	Stops    []string     `json:"stops"`
	Distance geo.Distance `json:"distance_km"`
	Price    float64      `json:"price"`
	Minutes  int          `json:"minutes"`
}

type SearchService struct {
	Stations StationLookup
	Coverage CoverageLookup
	Tariffs  TariffProvider
	Logger   *slog.Logger
}

func NewSearchService(stations StationLookup, coverage CoverageLookup, tariffs TariffProvider, logger *slog.Logger) *SearchService {
	return &SearchService{
		Stations: stations,
		Coverage: coverage,
		Tariffs:  tariffs,
		Logger:   logger,
	}
}

func (s *SearchService) checkSource(sourceID string) error {
	if _, ok := s.Stations.Get(sourceID); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSource, sourceID)
	}
	return nil
}

// Quote prices a trip through stopIDs. Unknown stop IDs make the route
// distance unknown rather than failing the request.
func (s *SearchService) Quote(sourceID string, stopIDs []string) (Quote, error) {
	if err := s.checkSource(sourceID); err != nil {
		metrics.RecordSearch("quote", metrics.OutcomeError)
		return Quote{}, err
	}

	route := make([]*geo.Station, len(stopIDs))
	for i, id := range stopIDs {
		route[i] = s.Stations.Station(sourceID, id)
	}

	tariff := s.Tariffs.GetTariff()
	distance := geo.RouteDistance(route)
	km := distance.Float64()

	quote := Quote{
		Stops:    append([]string{}, stopIDs...),
		Distance: distance,
		Price:    geo.EstimatePrice(km, tariff.RatePerKm, tariff.BasePrice),
		Minutes:  geo.EstimateTravelMinutes(km, tariff.AverageSpeedKmh),
	}

	if !distance.Valid() {
		s.Logger.Debug("Quote distance is unknown", "source_id", sourceID, "stops", stopIDs)
		metrics.RecordSearch("quote", metrics.OutcomeUndefined)
		return quote, nil
	}
	metrics.RecordSearch("quote", metrics.OutcomeOK)
	metrics.ObserveQuoteDistance(km)
	return quote, nil
}

// Nearest ranks the k stations of the source closest to stationID.
// An unknown reference station yields an empty result.
func (s *SearchService) Nearest(sourceID, stationID string, k int) ([]geo.StationDistance, error) {
	candidates, ok := s.Stations.Get(sourceID)
	if !ok {
		metrics.RecordSearch("nearest", metrics.OutcomeError)
		return nil, fmt.Errorf("%w: %s", ErrUnknownSource, sourceID)
	}

	ref := s.Stations.Station(sourceID, stationID)
	if ref == nil {
		metrics.RecordSearch("nearest", metrics.OutcomeUndefined)
	} else {
		metrics.RecordSearch("nearest", metrics.OutcomeOK)
	}
	return geo.NearestStations(ref, candidates, k), nil
}

// NearestToPoint ranks the k stations of the source closest to c. The bool
// reports whether c falls inside the bounding box of the source's stations;
// points outside still get an answer.
func (s *SearchService) NearestToPoint(sourceID string, c geo.Coordinate, k int) ([]geo.StationDistance, bool, error) {
	candidates, ok := s.Stations.Get(sourceID)
	if !ok {
		metrics.RecordSearch("nearest_point", metrics.OutcomeError)
		return nil, false, fmt.Errorf("%w: %s", ErrUnknownSource, sourceID)
	}

	metrics.RecordSearch("nearest_point", metrics.OutcomeOK)
	// Loaded stations always carry an ID, so the ID-less reference never
	// excludes a candidate as itself.
	ref := &geo.Station{Coordinate: c}
	return geo.NearestStations(ref, candidates, k), s.Coverage.IsInBoundingBox(sourceID, c), nil
}

// Distance returns the great-circle distance between two stations of a source.
func (s *SearchService) Distance(sourceID, fromID, toID string) (geo.Distance, error) {
	if err := s.checkSource(sourceID); err != nil {
		metrics.RecordSearch("distance", metrics.OutcomeError)
		return geo.UnknownDistance, err
	}

	d := geo.DistanceBetween(s.Stations.Station(sourceID, fromID), s.Stations.Station(sourceID, toID))
	if d.Valid() {
		metrics.RecordSearch("distance", metrics.OutcomeOK)
	} else {
		metrics.RecordSearch("distance", metrics.OutcomeUndefined)
	}
	return d, nil
}
