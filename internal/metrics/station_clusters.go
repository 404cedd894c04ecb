package metrics

import "trainsearch.org/internal/geo"

// ReportStationsLoaded publishes the station count of a source and how its
// stations spread over S2 clusters. Previous cluster series of the source are
// dropped first so clusters that emptied out do not linger.
func ReportStationsLoaded(sourceID string, stations []*geo.Station) {
	StationsLoaded.WithLabelValues(sourceID).Set(float64(len(stations)))

	StationClusterCount.DeletePartialMatch(map[string]string{"source_id": sourceID})
	for id, count := range geo.CountClusters(stations) {
		StationClusterCount.WithLabelValues(sourceID, id).Set(float64(count))
	}
}

// ForgetSource removes every series published for sourceID.
func ForgetSource(sourceID string) {
	StationsLoaded.DeleteLabelValues(sourceID)
	StationClusterCount.DeletePartialMatch(map[string]string{"source_id": sourceID})
	SourceLoadFailures.DeleteLabelValues(sourceID)
}
