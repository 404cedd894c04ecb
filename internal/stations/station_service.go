package stations

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/getsentry/sentry-go"
	"trainsearch.org/internal/config"
	"trainsearch.org/internal/geo"
	"trainsearch.org/internal/metrics"
	"trainsearch.org/internal/models"
	"trainsearch.org/internal/report"
	"trainsearch.org/internal/utils"
)

type StationService struct {
	Store            *StationStore
	BoundingBoxStore *geo.BoundingBoxStore
	BackoffStore     *config.BackoffStore
	Logger           *slog.Logger
	Client           *http.Client
	CacheDir         string
	MaxRetries       int
}

func NewStationService(store *StationStore, boundingBoxStore *geo.BoundingBoxStore, backoffStore *config.BackoffStore, logger *slog.Logger, client *http.Client, cacheDir string) *StationService {
	return &StationService{
		Store:            store,
		BoundingBoxStore: boundingBoxStore,
		BackoffStore:     backoffStore,
		Logger:           logger,
		Client:           client,
		CacheDir:         cacheDir,
		MaxRetries:       3,
	}
}

// LoadSources loads every source concurrently and waits for all of them.
//
// For each source it:
//  1. Skips the source while it is backing off from an earlier failure.
//  2. Fetches its stations with the loader matching the source kind.
//  3. Stores the stations, their bounding box and cluster metrics.
//
// A failing source keeps whatever stations it had before; the failure is
// logged, reported, counted and its backoff extended.
func (ss *StationService) LoadSources(ctx context.Context, sources []models.StationSource) {
	var wg sync.WaitGroup
	for _, source := range sources {
		src := source
		if ss.BackoffStore.ShouldSkip(src.ID, time.Now()) {
			ss.Logger.Info("Skipping station source in backoff", "source_id", src.ID)
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := ss.LoadSource(ctx, src); err != nil {
				ss.BackoffStore.UpdateBackoff(src.ID)
				metrics.RecordSourceFailure(src.ID)
				report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
					Tags: utils.MakeMap("source_id", src.ID),
					ExtraContext: map[string]interface{}{
						"kind": src.Kind,
					},
					Level: sentry.LevelError,
				})
				ss.Logger.Error("Failed to load station source", "source_id", src.ID, "kind", src.Kind, "error", err)
				return
			}
			ss.BackoffStore.ResetBackoff(src.ID)
		}()
	}
	wg.Wait()
}

// LoadSource fetches and stores the stations of a single source.
func (ss *StationService) LoadSource(ctx context.Context, src models.StationSource) error {
	stations, err := ss.fetchStations(ctx, src)
	if err != nil {
		return err
	}
	if len(stations) == 0 {
		return fmt.Errorf("source %s returned no stations", src.ID)
	}

	suspicious := 0
	for _, st := range stations {
		if st.ID == "" {
			return fmt.Errorf("source %s returned a station without id", src.ID)
		}
		if !geo.IsValidLatLon(st.Latitude, st.Longitude) {
			suspicious++
		}
	}
	if suspicious > 0 {
		ss.Logger.Warn("Station source has stations with invalid coordinates", "source_id", src.ID, "count", suspicious)
	}

	bbox, err := geo.ComputeBoundingBox(stations)
	if err != nil {
		return fmt.Errorf("could not compute bounding box for source %s: %w", src.ID, err)
	}

	ss.Store.Set(src.ID, stations)
	ss.BoundingBoxStore.Set(src.ID, bbox)
	metrics.ReportStationsLoaded(src.ID, stations)
	ss.Logger.Info("Loaded station source", "source_id", src.ID, "kind", src.Kind, "stations", len(stations))
	return nil
}

func (ss *StationService) fetchStations(ctx context.Context, src models.StationSource) ([]*geo.Station, error) {
	switch src.Kind {
	case models.SourceKindFile:
		return loadStationsFromFile(src.Path)
	case models.SourceKindGtfs:
		return loadStationsFromGtfs(ctx, src, ss.Client, ss.CacheDir, ss.MaxRetries, ss.Logger)
	case models.SourceKindOba:
		return loadStationsFromOba(ctx, src)
	case models.SourceKindPostgres:
		return loadStationsFromPostgres(ctx, src)
	default:
		return nil, fmt.Errorf("source %s: unknown kind %q", src.ID, src.Kind)
	}
}

// PruneSources drops stations, bounding boxes, backoff state and metrics of
// every loaded source that is not in active.
func (ss *StationService) PruneSources(active []models.StationSource) {
	keep := make(map[string]struct{}, len(active))
	for _, src := range active {
		keep[src.ID] = struct{}{}
	}
	for _, id := range ss.Store.Sources() {
		if _, ok := keep[id]; ok {
			continue
		}
		ss.Store.Delete(id)
		ss.BoundingBoxStore.Delete(id)
		ss.BackoffStore.ResetBackoff(id)
		metrics.ForgetSource(id)
		ss.Logger.Info("Removed station source no longer configured", "source_id", id)
	}
}

// RefreshSources reloads the sources currently configured in cfg on every
// tick until ctx is done. Sources dropped from cfg are removed first.
// A non-positive interval disables the refresh.
func (ss *StationService) RefreshSources(ctx context.Context, cfg *config.Config, interval time.Duration) {
	if interval <= 0 {
		ss.Logger.Error("Station refresh disabled: interval must be positive", "interval", interval)
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			ss.Logger.Info("Stopping station refresh routine")
			return
		case <-ticker.C:
			ss.Logger.Info("Refreshing station sources")
			sources := cfg.GetSources()
			ss.PruneSources(sources)
			ss.LoadSources(ctx, sources)
		}
	}
}
