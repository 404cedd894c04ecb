package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"trainsearch.org/internal/config"
	"trainsearch.org/internal/geo"
	"trainsearch.org/internal/models"
)

var testStations = []*geo.Station{
	{ID: "ROMA", Name: "Roma Termini", Coordinate: geo.Coordinate{Latitude: 41.902, Longitude: 12.496}},
	{ID: "NAP", Name: "Napoli Centrale", Coordinate: geo.Coordinate{Latitude: 40.853, Longitude: 14.272}},
	{ID: "FI", Name: "Firenze SMN", Coordinate: geo.Coordinate{Latitude: 43.776, Longitude: 11.248}},
	{ID: "CS", Name: "Cosenza", Coordinate: geo.Coordinate{Latitude: 39.309, Longitude: 16.254}},
}

// newTestApplication returns an application whose "it" source already holds
// testStations. With loaded=false nothing is stored.
func newTestApplication(t *testing.T, loaded bool) *Application {
	t.Helper()

	cfg := config.NewConfig(4000, "testing", config.Document{
		Sources: []models.StationSource{{ID: "it", Kind: models.SourceKindFile, Path: "stations.json"}},
	})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	app := New(cfg, logger, http.DefaultClient, "test-version")
	if loaded {
		app.StationService.Store.Set("it", testStations)
		bbox, err := geo.ComputeBoundingBox(testStations)
		if err != nil {
			t.Fatal(err)
		}
		app.StationService.BoundingBoxStore.Set("it", bbox)
	}
	return app
}

// setupTestServer serves the full route table of app.
func setupTestServer(t *testing.T, app *Application) *httptest.Server {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	ts := httptest.NewServer(app.Routes(ctx))
	t.Cleanup(func() {
		ts.Close()
		cancel()
	})
	return ts
}

func doRequest(t *testing.T, ts *httptest.Server, method, path, body string) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, ts.URL+path, reader)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, data
}
