package metrics

import (
	"testing"
	"time"

	"github.com/jamespfennell/gtfs"
)

func TestReportBundleExpiration(t *testing.T) {
	now := time.Date(2025, 1, 12, 20, 16, 38, 0, time.UTC)
	services := []gtfs.Service{
		{Id: "WEEKDAY", EndDate: time.Date(2025, 3, 28, 0, 0, 0, 0, time.UTC)},
		{Id: "HOLIDAY", EndDate: time.Date(2024, 11, 22, 0, 0, 0, 0, time.UTC)},
		{Id: "WEEKEND", EndDate: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)},
	}

	earliest, latest, err := ReportBundleExpiration("bundle-test", services, now)
	if err != nil {
		t.Fatalf("ReportBundleExpiration failed: %v", err)
	}

	expectedEarliest := int(time.Date(2024, 11, 22, 0, 0, 0, 0, time.UTC).Sub(now).Hours() / 24)
	expectedLatest := int(time.Date(2025, 3, 28, 0, 0, 0, 0, time.UTC).Sub(now).Hours() / 24)

	if earliest != expectedEarliest {
		t.Errorf("Expected earliest expiration days to be %d, got %d", expectedEarliest, earliest)
	}
	if latest != expectedLatest {
		t.Errorf("Expected latest expiration days to be %d, got %d", expectedLatest, latest)
	}

	if got := metricValue(t, BundleEarliestExpirationGauge.WithLabelValues("bundle-test")); got != float64(expectedEarliest) {
		t.Errorf("Expected earliest expiration metric to be %v, got %v", expectedEarliest, got)
	}
	if got := metricValue(t, BundleLatestExpirationGauge.WithLabelValues("bundle-test")); got != float64(expectedLatest) {
		t.Errorf("Expected latest expiration metric to be %v, got %v", expectedLatest, got)
	}
}

func TestReportBundleExpirationWithoutServices(t *testing.T) {
	if _, _, err := ReportBundleExpiration("bundle-empty", nil, time.Now()); err == nil {
		t.Error("Expected error for bundle without services")
	}
}
