package stations

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"trainsearch.org/internal/config"
	"trainsearch.org/internal/geo"
	"trainsearch.org/internal/metrics"
	"trainsearch.org/internal/models"
)

const italyStations = `[
	{"id": "ROMA", "name": "Roma Termini", "latitude": 41.902, "longitude": 12.496},
	{"id": "NAP", "name": "Napoli Centrale", "latitude": 40.853, "longitude": 14.272},
	{"id": "CS", "name": "Cosenza", "latitude": 39.309, "longitude": 16.254}
]`

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	pb := &dto.Metric{}
	if err := c.Write(pb); err != nil {
		t.Fatalf("Failed to read counter: %v", err)
	}
	return pb.GetCounter().GetValue()
}

func newTestService(logger *slog.Logger) *StationService {
	return NewStationService(NewStationStore(), geo.NewBoundingBoxStore(), config.NewBackoffStore(), logger, http.DefaultClient, "")
}

func TestLoadSources(t *testing.T) {
	var logBuffer bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logBuffer, nil))
	ss := newTestService(logger)

	good := models.StationSource{ID: "svc-italy", Kind: models.SourceKindFile, Path: writeTempFile(t, italyStations)}
	bad := models.StationSource{ID: "svc-missing", Kind: models.SourceKindFile, Path: filepath.Join(t.TempDir(), "missing.json")}

	failuresBefore := counterValue(t, metrics.SourceLoadFailures.WithLabelValues(bad.ID))

	ss.LoadSources(context.Background(), []models.StationSource{good, bad})

	t.Run("loads the valid source", func(t *testing.T) {
		stations, ok := ss.Store.Get(good.ID)
		if !ok || len(stations) != 3 {
			t.Fatalf("Expected 3 stations for %s, got %d (ok=%v)", good.ID, len(stations), ok)
		}
		bbox, ok := ss.BoundingBoxStore.Get(good.ID)
		if !ok {
			t.Fatal("Expected bounding box for loaded source")
		}
		if bbox.MinLat != 39.309 || bbox.MaxLat != 41.902 {
			t.Errorf("Unexpected bounding box: %+v", bbox)
		}
		if _, skip := ss.BackoffStore.NextRetryAt(good.ID); skip {
			t.Error("Expected no backoff for the valid source")
		}
	})

	t.Run("records the failing source", func(t *testing.T) {
		if _, ok := ss.Store.Get(bad.ID); ok {
			t.Error("Expected no stations for failing source")
		}
		if !ss.BackoffStore.ShouldSkip(bad.ID, time.Now()) {
			t.Error("Expected failing source to be in backoff")
		}
		if got := counterValue(t, metrics.SourceLoadFailures.WithLabelValues(bad.ID)); got != failuresBefore+1 {
			t.Errorf("Expected %v failures, got %v", failuresBefore+1, got)
		}
		if !strings.Contains(logBuffer.String(), "Failed to load station source") {
			t.Errorf("Expected failure log, got %s", logBuffer.String())
		}
	})

	t.Run("skips a source in backoff", func(t *testing.T) {
		logBuffer.Reset()
		ss.LoadSources(context.Background(), []models.StationSource{bad})
		if !strings.Contains(logBuffer.String(), "Skipping station source in backoff") {
			t.Errorf("Expected skip log, got %s", logBuffer.String())
		}
		if got := counterValue(t, metrics.SourceLoadFailures.WithLabelValues(bad.ID)); got != failuresBefore+1 {
			t.Errorf("Expected failure count to stay at %v, got %v", failuresBefore+1, got)
		}
	})

	t.Run("failed reload keeps previous stations", func(t *testing.T) {
		broken := good
		broken.Path = filepath.Join(t.TempDir(), "gone.json")
		ss.LoadSources(context.Background(), []models.StationSource{broken})

		stations, ok := ss.Store.Get(good.ID)
		if !ok || len(stations) != 3 {
			t.Errorf("Expected previous 3 stations to survive, got %d", len(stations))
		}
	})
}

func TestLoadSourceRejectsEmptySource(t *testing.T) {
	ss := newTestService(discardLogger())
	src := models.StationSource{ID: "svc-empty", Kind: models.SourceKindFile, Path: writeTempFile(t, `[]`)}
	if err := ss.LoadSource(context.Background(), src); err == nil {
		t.Error("Expected error for source without stations")
	}
}

func TestLoadSourceUnknownKind(t *testing.T) {
	ss := newTestService(discardLogger())
	if err := ss.LoadSource(context.Background(), models.StationSource{ID: "x", Kind: "ftp"}); err == nil {
		t.Error("Expected error for unknown kind")
	}
}

func TestRefreshSources(t *testing.T) {
	var logBuffer bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logBuffer, nil))
	ss := newTestService(logger)

	src := models.StationSource{ID: "svc-refresh", Kind: models.SourceKindFile, Path: writeTempFile(t, italyStations)}
	cfg := config.NewConfig(4000, "testing", config.Document{Sources: []models.StationSource{src}})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		ss.RefreshSources(ctx, cfg, 10*time.Millisecond)
		close(done)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for {
		if _, ok := ss.Store.Get(src.ID); ok {
			break
		}
		if time.Now().After(deadline) {
			cancel()
			t.Fatal("Stations were not loaded by the refresh routine")
		}
		time.Sleep(5 * time.Millisecond)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Refresh routine did not stop after cancel")
	}
	if !strings.Contains(logBuffer.String(), "Stopping station refresh routine") {
		t.Errorf("Expected stop log, got %s", logBuffer.String())
	}
}

func TestRefreshSourcesNonPositiveInterval(t *testing.T) {
	for _, interval := range []time.Duration{0, -time.Second} {
		t.Run(interval.String(), func(t *testing.T) {
			var logBuffer bytes.Buffer
			ss := newTestService(slog.New(slog.NewTextHandler(&logBuffer, nil)))
			cfg := config.NewConfig(4000, "testing", config.Document{})

			done := make(chan struct{})
			go func() {
				ss.RefreshSources(context.Background(), cfg, interval)
				close(done)
			}()

			select {
			case <-done:
			case <-time.After(time.Second):
				t.Fatal("Expected RefreshSources to return for a non-positive interval")
			}
			if !strings.Contains(logBuffer.String(), "Station refresh disabled") {
				t.Errorf("Expected disabled log, got %s", logBuffer.String())
			}
		})
	}
}

func TestPruneSources(t *testing.T) {
	var logBuffer bytes.Buffer
	ss := newTestService(slog.New(slog.NewTextHandler(&logBuffer, nil)))

	kept := models.StationSource{ID: "prune-kept", Kind: models.SourceKindFile, Path: writeTempFile(t, italyStations)}
	removed := models.StationSource{ID: "prune-removed", Kind: models.SourceKindFile, Path: writeTempFile(t, italyStations)}
	ss.LoadSources(context.Background(), []models.StationSource{kept, removed})
	ss.BackoffStore.UpdateBackoff(removed.ID)

	ss.PruneSources([]models.StationSource{kept})

	if _, ok := ss.Store.Get(kept.ID); !ok {
		t.Error("Expected the configured source to be kept")
	}
	if _, ok := ss.BoundingBoxStore.Get(kept.ID); !ok {
		t.Error("Expected the configured bounding box to be kept")
	}
	if _, ok := ss.Store.Get(removed.ID); ok {
		t.Error("Expected stations of the removed source to be dropped")
	}
	if st := ss.Store.Station(removed.ID, "ROMA"); st != nil {
		t.Errorf("Expected no station lookup for the removed source, got %+v", st)
	}
	if _, ok := ss.BoundingBoxStore.Get(removed.ID); ok {
		t.Error("Expected bounding box of the removed source to be dropped")
	}
	if _, ok := ss.BackoffStore.NextRetryAt(removed.ID); ok {
		t.Error("Expected backoff of the removed source to be cleared")
	}
	if metrics.StationsLoaded.DeleteLabelValues(removed.ID) {
		t.Error("Expected the stations gauge of the removed source to be dropped")
	}
	if !strings.Contains(logBuffer.String(), "Removed station source no longer configured") {
		t.Errorf("Expected removal log, got %s", logBuffer.String())
	}
}

func TestRefreshSourcesDropsRemovedSources(t *testing.T) {
	ss := newTestService(discardLogger())

	kept := models.StationSource{ID: "refresh-kept", Kind: models.SourceKindFile, Path: writeTempFile(t, italyStations)}
	removed := models.StationSource{ID: "refresh-removed", Kind: models.SourceKindFile, Path: writeTempFile(t, italyStations)}
	cfg := config.NewConfig(4000, "testing", config.Document{Sources: []models.StationSource{kept, removed}})
	ss.LoadSources(context.Background(), cfg.GetSources())

	cfg.UpdateConfig(config.Document{Sources: []models.StationSource{kept}})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go ss.RefreshSources(ctx, cfg, 10*time.Millisecond)

	deadline := time.Now().Add(2 * time.Second)
	for {
		if _, ok := ss.Store.Get(removed.ID); !ok {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("Removed source was not dropped by the refresh routine")
		}
		time.Sleep(5 * time.Millisecond)
	}

	if got := ss.Store.Sources(); len(got) != 1 || got[0] != kept.ID {
		t.Errorf("Expected only %s to remain, got %v", kept.ID, got)
	}
}

func TestLoadSourceRejectsStationWithoutID(t *testing.T) {
	ss := newTestService(discardLogger())
	src := models.StationSource{ID: "svc-no-id", Kind: models.SourceKindFile, Path: writeTempFile(t, `[{"id": "", "latitude": 41.9, "longitude": 12.5}]`)}
	if err := ss.LoadSource(context.Background(), src); err == nil {
		t.Error("Expected error for a station without id")
	}
	if _, ok := ss.Store.Get(src.ID); ok {
		t.Error("Expected nothing stored for the rejected source")
	}
}
