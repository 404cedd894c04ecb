package app

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"trainsearch.org/internal/geo"
	"trainsearch.org/internal/search"
)

const (
	defaultNearestK = 5
	maxNearestK     = 50
)

// HealthStatus is the body of GET /v1/healthcheck. The application is ready
// once at least one station has been loaded.
type HealthStatus struct {
	Status      string `json:"status"`
	Environment string `json:"environment"`
	Version     string `json:"version"`
	Sources     int    `json:"sources"`
	Stations    int    `json:"stations"`
	Ready       bool   `json:"ready"`
}

func (app *Application) healthcheckHandler(w http.ResponseWriter, r *http.Request) {
	cfg := app.ConfigService.Config
	numStations := app.StationService.Store.Count()

	status := HealthStatus{
		Status:      "available",
		Environment: cfg.Env,
		Version:     app.Version,
		Sources:     len(cfg.GetSources()),
		Stations:    numStations,
		Ready:       numStations > 0,
	}

	code := http.StatusOK
	if !status.Ready {
		code = http.StatusInternalServerError
	}
	app.writeJSON(w, code, status)
}

type sourceSummary struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Kind        string           `json:"kind"`
	Stations    int              `json:"stations"`
	BoundingBox *geo.BoundingBox `json:"bounding_box"`
}

// listSourcesHandler lists the configured sources with their loaded station
// count and coverage box. Sources that never loaded report 0 stations and a
// null box.
func (app *Application) listSourcesHandler(w http.ResponseWriter, r *http.Request) {
	sources := app.ConfigService.Config.GetSources()
	summaries := make([]sourceSummary, 0, len(sources))
	for _, src := range sources {
		summary := sourceSummary{ID: src.ID, Name: src.Name, Kind: src.Kind}
		if loaded, ok := app.StationService.Store.Get(src.ID); ok {
			summary.Stations = len(loaded)
		}
		if bbox, ok := app.StationService.BoundingBoxStore.Get(src.ID); ok {
			summary.BoundingBox = &bbox
		}
		summaries = append(summaries, summary)
	}
	app.writeJSON(w, http.StatusOK, envelope{"sources": summaries})
}

// parseK reads the optional k query parameter.
func parseK(r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("k")
	if raw == "" {
		return defaultNearestK, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > maxNearestK {
		return 0, false
	}
	return n, true
}

type nearestResponse struct {
	Source  string                `json:"source"`
	Station string                `json:"station"`
	Nearest []geo.StationDistance `json:"nearest"`
}

func (app *Application) nearestStationsHandler(w http.ResponseWriter, r *http.Request) {
	params := httprouter.ParamsFromContext(r.Context())
	sourceID := params.ByName("source")
	stationID := params.ByName("station")

	k, ok := parseK(r)
	if !ok {
		app.badRequestResponse(w, "k must be an integer between 1 and "+strconv.Itoa(maxNearestK))
		return
	}

	nearest, err := app.SearchService.Nearest(sourceID, stationID, k)
	if err != nil {
		app.searchErrorResponse(w, r, err)
		return
	}

	app.writeJSON(w, http.StatusOK, nearestResponse{
		Source:  sourceID,
		Station: stationID,
		Nearest: nearest,
	})
}

type nearestToPointResponse struct {
	Source     string                `json:"source"`
	Latitude   float64               `json:"latitude"`
	Longitude  float64               `json:"longitude"`
	InCoverage bool                  `json:"in_coverage"`
	Nearest    []geo.StationDistance `json:"nearest"`
}

func (app *Application) nearestToPointHandler(w http.ResponseWriter, r *http.Request) {
	sourceID := httprouter.ParamsFromContext(r.Context()).ByName("source")
	query := r.URL.Query()

	lat, latErr := strconv.ParseFloat(query.Get("lat"), 64)
	lon, lonErr := strconv.ParseFloat(query.Get("lon"), 64)
	if latErr != nil || lonErr != nil || !geo.IsValidLatLon(lat, lon) {
		app.badRequestResponse(w, "lat and lon must be valid coordinates in decimal degrees")
		return
	}
	k, ok := parseK(r)
	if !ok {
		app.badRequestResponse(w, "k must be an integer between 1 and "+strconv.Itoa(maxNearestK))
		return
	}

	c := geo.Coordinate{Latitude: lat, Longitude: lon}
	nearest, inCoverage, err := app.SearchService.NearestToPoint(sourceID, c, k)
	if err != nil {
		app.searchErrorResponse(w, r, err)
		return
	}

	app.writeJSON(w, http.StatusOK, nearestToPointResponse{
		Source:     sourceID,
		Latitude:   lat,
		Longitude:  lon,
		InCoverage: inCoverage,
		Nearest:    nearest,
	})
}

type distanceResponse struct {
	Source   string       `json:"source"`
	From     string       `json:"from"`
	To       string       `json:"to"`
	Distance geo.Distance `json:"distance_km"`
}

func (app *Application) distanceHandler(w http.ResponseWriter, r *http.Request) {
	sourceID := httprouter.ParamsFromContext(r.Context()).ByName("source")
	query := r.URL.Query()
	from, to := query.Get("from"), query.Get("to")
	if from == "" || to == "" {
		app.badRequestResponse(w, "both from and to must be provided")
		return
	}

	d, err := app.SearchService.Distance(sourceID, from, to)
	if err != nil {
		app.searchErrorResponse(w, r, err)
		return
	}

	app.writeJSON(w, http.StatusOK, distanceResponse{
		Source:   sourceID,
		From:     from,
		To:       to,
		Distance: d,
	})
}

type quoteRequest struct {
	Stops []string `json:"stops"`
}

func (app *Application) quoteHandler(w http.ResponseWriter, r *http.Request) {
	sourceID := httprouter.ParamsFromContext(r.Context()).ByName("source")

	var input quoteRequest
	if err := app.readJSON(w, r, &input); err != nil {
		app.badRequestResponse(w, err.Error())
		return
	}
	if len(input.Stops) == 0 {
		app.badRequestResponse(w, "stops must contain at least one station id")
		return
	}

	quote, err := app.SearchService.Quote(sourceID, input.Stops)
	if err != nil {
		app.searchErrorResponse(w, r, err)
		return
	}

	app.writeJSON(w, http.StatusOK, quote)
}

func (app *Application) searchErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, search.ErrUnknownSource) {
		app.errorResponse(w, http.StatusNotFound, err.Error())
		return
	}
	app.serverErrorResponse(w, r, err)
}
