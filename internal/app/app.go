package app

import (
	"log/slog"
	"net/http"

	"trainsearch.org/internal/config"
	"trainsearch.org/internal/geo"
	"trainsearch.org/internal/search"
	"trainsearch.org/internal/stations"
)

// Application wires the configuration, station registry and search services
// behind the HTTP API.
type Application struct {
	ConfigService  *config.ConfigService
	StationService *stations.StationService
	SearchService  *search.SearchService
	Logger         *slog.Logger
	Version        string
}

// New creates and wires all dependencies for the Application.
func New(cfg *config.Config, logger *slog.Logger, client *http.Client, version string) *Application {
	stationStore := stations.NewStationStore()
	boundingBoxStore := geo.NewBoundingBoxStore()
	backoffStore := config.NewBackoffStore()

	configService := config.NewConfigService(logger, client, cfg)
	stationService := stations.NewStationService(stationStore, boundingBoxStore, backoffStore, logger, client, cfg.CacheDir)
	searchService := search.NewSearchService(stationStore, boundingBoxStore, cfg, logger)

	return &Application{
		ConfigService:  configService,
		StationService: stationService,
		SearchService:  searchService,
		Logger:         logger,
		Version:        version,
	}
}
