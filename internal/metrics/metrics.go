package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	StationsLoaded = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "trainsearch_stations_loaded",
		Help: "Number of stations currently loaded for a source",
	}, []string{"source_id"})

	StationClusterCount = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "trainsearch_station_clusters",
		Help: "Number of stations of a source falling in each S2 cluster",
	}, []string{"source_id", "cluster_id"})

	SourceLoadFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trainsearch_source_load_failures_total",
		Help: "Number of failed attempts to load a station source",
	}, []string{"source_id"})
)

var (
	SearchRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trainsearch_search_requests_total",
		Help: "Number of search operations by operation and outcome (ok, undefined, error)",
	}, []string{"operation", "outcome"})

	UndefinedDistances = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trainsearch_undefined_distances_total",
		Help: "Number of distances that could not be computed because a station was missing",
	}, []string{"operation"})

	QuoteDistanceKm = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "trainsearch_quote_distance_km",
		Help:    "Route length of quoted trips in kilometers",
		Buckets: []float64{5, 10, 25, 50, 100, 200, 400, 800, 1600},
	})
)

const (
	OutcomeOK        = "ok"
	OutcomeUndefined = "undefined"
	OutcomeError     = "error"
)

// RecordSearch counts one search operation.
func RecordSearch(operation, outcome string) {
	SearchRequests.WithLabelValues(operation, outcome).Inc()
	if outcome == OutcomeUndefined {
		UndefinedDistances.WithLabelValues(operation).Inc()
	}
}

// ObserveQuoteDistance records the length of a quoted route.
func ObserveQuoteDistance(km float64) {
	QuoteDistanceKm.Observe(km)
}

// RecordSourceFailure counts a failed load of sourceID.
func RecordSourceFailure(sourceID string) {
	SourceLoadFailures.WithLabelValues(sourceID).Inc()
}

var OutgoingLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "trainsearch_outgoing_request_duration_seconds",
	Help:    "Latency of outgoing HTTP requests to configuration and station sources",
	Buckets: prometheus.DefBuckets,
}, []string{"host", "method", "status"})
