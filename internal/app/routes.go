package app

import (
	"context"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus"
	"trainsearch.org/internal/middleware"
)

// Routes registers every endpoint and wraps the router with the Sentry and
// security header middlewares. ctx bounds the background refresh of the
// cached /metrics exposition.
func (app *Application) Routes(ctx context.Context) http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	router.HandlerFunc(http.MethodGet, "/v1/healthcheck", app.healthcheckHandler)
	router.HandlerFunc(http.MethodGet, "/v1/sources", app.listSourcesHandler)
	router.HandlerFunc(http.MethodGet, "/v1/sources/:source/nearest", app.nearestToPointHandler)
	router.HandlerFunc(http.MethodGet, "/v1/sources/:source/stations/:station/nearest", app.nearestStationsHandler)
	router.HandlerFunc(http.MethodGet, "/v1/sources/:source/distance", app.distanceHandler)
	router.HandlerFunc(http.MethodPost, "/v1/sources/:source/quotes", app.quoteHandler)
	router.Handler(http.MethodGet, "/metrics", middleware.NewCachedPromHandler(ctx, prometheus.DefaultGatherer, 10*time.Second))

	handler := middleware.SentryMiddleware(router)
	return middleware.SecurityHeaders(handler)
}
