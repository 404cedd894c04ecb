package stations

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/getsentry/sentry-go"
	remoteGtfs "github.com/jamespfennell/gtfs"
	"trainsearch.org/internal/config"
	"trainsearch.org/internal/geo"
	"trainsearch.org/internal/metrics"
	"trainsearch.org/internal/models"
	"trainsearch.org/internal/report"
	"trainsearch.org/internal/utils"
)

// loadStationsFromGtfs downloads the static GTFS bundle of src, keeps a copy
// in cacheDir and extracts its stations. When the download fails and a
// previous bundle of the source is cached, that bundle is used instead.
func loadStationsFromGtfs(ctx context.Context, src models.StationSource, client *http.Client, cacheDir string, maxRetries int, logger *slog.Logger) ([]*geo.Station, error) {
	data, err := downloadGtfsBundle(ctx, client, src.GtfsUrl, maxRetries)
	if err != nil {
		cached, cacheErr := readCachedBundle(cacheDir, src.ID)
		if cacheErr != nil {
			return nil, err
		}
		logger.Warn("Using cached GTFS bundle", "source_id", src.ID, "error", err)
		data = cached
	} else if cacheDir != "" {
		if err := writeCachedBundle(cacheDir, src, data); err != nil {
			logger.Warn("Failed to cache GTFS bundle", "source_id", src.ID, "error", err)
		}
	}

	static, err := remoteGtfs.ParseStatic(data, remoteGtfs.ParseStaticOptions{})
	if err != nil {
		err = fmt.Errorf("failed to parse GTFS static data from %s: %w", src.GtfsUrl, err)
		report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
			Tags: utils.MakeMap("source_id", src.ID),
			ExtraContext: map[string]interface{}{
				"gtfs_url": src.GtfsUrl,
			},
			Level: sentry.LevelError,
		})
		return nil, err
	}

	if _, _, err := metrics.ReportBundleExpiration(src.ID, static.Services, time.Now()); err != nil {
		logger.Warn("Could not determine GTFS bundle expiration", "source_id", src.ID, "error", err)
	}

	return stationsFromStatic(static), nil
}

func downloadGtfsBundle(ctx context.Context, client *http.Client, url string, maxRetries int) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", url, err)
	}

	resp, err := config.DoWithBackoff(ctx, client, req, maxRetries)
	if err != nil {
		return nil, fmt.Errorf("failed to make GET request to %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected response status %d when downloading GTFS bundle from %s", resp.StatusCode, url)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read GTFS bundle response body from %s: %w", url, err)
	}
	return data, nil
}

func writeCachedBundle(cacheDir string, src models.StationSource, data []byte) error {
	path := filepath.Join(cacheDir, utils.CachedBundleName(src.ID, src.GtfsUrl))
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func readCachedBundle(cacheDir, sourceID string) ([]byte, error) {
	if cacheDir == "" {
		return nil, fmt.Errorf("no cache directory configured")
	}
	path, err := utils.GetLastCachedFile(cacheDir, sourceID)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}

// stationsFromStatic keeps stations (location_type 1) and stops that do not
// belong to a station, skipping entries without coordinates.
func stationsFromStatic(static *remoteGtfs.Static) []*geo.Station {
	stations := make([]*geo.Station, 0)
	for _, stop := range static.Stops {
		if stop.Latitude == nil || stop.Longitude == nil {
			continue
		}
		if stop.Type != 1 && !(stop.Type == 0 && stop.Parent == nil) {
			continue
		}
		stations = append(stations, &geo.Station{
			ID:   stop.Id,
			Name: stop.Name,
			Coordinate: geo.Coordinate{
				Latitude:  *stop.Latitude,
				Longitude: *stop.Longitude,
			},
		})
	}
	return stations
}
