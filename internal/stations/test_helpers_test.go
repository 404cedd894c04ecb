package stations

import (
	"archive/zip"
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

var gtfsFiles = map[string]string{
	"agency.txt": "agency_id,agency_name,agency_url,agency_timezone\n" +
		"TI,Trenitalia,https://www.trenitalia.com,Europe/Rome\n",
	"routes.txt": "route_id,agency_id,route_short_name,route_long_name,route_type\n" +
		"R1,TI,FR,Frecciarossa,2\n",
	"calendar.txt": "service_id,monday,tuesday,wednesday,thursday,friday,saturday,sunday,start_date,end_date\n" +
		"WK,1,1,1,1,1,1,1,20250101,20251231\n",
	"trips.txt": "route_id,service_id,trip_id\n" +
		"R1,WK,T1\n",
	"stops.txt": "stop_id,stop_name,stop_lat,stop_lon,location_type,parent_station\n" +
		"ROMA_TE,Roma Termini,41.901,12.501,1,\n" +
		"ROMA_TE_1,Roma Termini binario 1,41.9012,12.5015,0,ROMA_TE\n" +
		"NAPOLI_C,Napoli Centrale,40.853,14.272,0,\n" +
		"NAPOLI_E,Napoli ingresso,40.8531,14.2721,2,NAPOLI_C\n",
	"stop_times.txt": "trip_id,arrival_time,departure_time,stop_id,stop_sequence\n" +
		"T1,08:00:00,08:00:00,ROMA_TE_1,1\n" +
		"T1,09:10:00,09:10:00,NAPOLI_C,2\n",
}

// buildGtfsZip returns a minimal static GTFS bundle with one station, one of
// its platforms, one standalone stop and one entrance.
func buildGtfsZip(t *testing.T) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range gtfsFiles {
		f, err := w.Create(name)
		if err != nil {
			t.Fatalf("Failed to add %s to bundle: %v", name, err)
		}
		if _, err := f.Write([]byte(content)); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close bundle: %v", err)
	}
	return buf.Bytes()
}

// setupGtfsServer serves body with the given status code for every request.
func setupGtfsServer(t *testing.T, body []byte, statusCode int) *httptest.Server {
	t.Helper()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/zip")
		w.WriteHeader(statusCode)
		// #nosec G104
		w.Write(body)
	}))
	t.Cleanup(ts.Close)
	return ts
}

// setupObaServer creates a new httptest.Server that responds with the given JSON string and status code.
func setupObaServer(t *testing.T, response string, statusCode int) *httptest.Server {
	t.Helper()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		// #nosec G104
		w.Write([]byte(response))
	}))
	t.Cleanup(ts.Close)
	return ts
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
