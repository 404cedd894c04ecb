package metrics

import (
	"fmt"
	"time"

	"github.com/jamespfennell/gtfs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BundleEarliestExpirationGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "trainsearch_gtfs_bundle_days_until_earliest_expiration",
		Help: "Days until the first service of a source's GTFS bundle ends",
	}, []string{"source_id"})

	BundleLatestExpirationGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "trainsearch_gtfs_bundle_days_until_latest_expiration",
		Help: "Days until the last service of a source's GTFS bundle ends",
	}, []string{"source_id"})
)

// ReportBundleExpiration publishes how many days remain before the earliest
// and the latest service of a GTFS bundle end. Calendar end dates stand in
// for feed_info.txt, which the GTFS parser does not read.
func ReportBundleExpiration(sourceID string, services []gtfs.Service, now time.Time) (int, int, error) {
	if len(services) == 0 {
		return 0, 0, fmt.Errorf("no services found in GTFS bundle of source %s", sourceID)
	}

	earliest := services[0].EndDate
	latest := services[0].EndDate
	for _, service := range services[1:] {
		if service.EndDate.Before(earliest) {
			earliest = service.EndDate
		}
		if service.EndDate.After(latest) {
			latest = service.EndDate
		}
	}

	earliestDays := int(earliest.Sub(now).Hours() / 24)
	latestDays := int(latest.Sub(now).Hours() / 24)

	BundleEarliestExpirationGauge.WithLabelValues(sourceID).Set(float64(earliestDays))
	BundleLatestExpirationGauge.WithLabelValues(sourceID).Set(float64(latestDays))
	return earliestDays, latestDays, nil
}
