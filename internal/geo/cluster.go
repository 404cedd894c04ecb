package geo

import (
	"fmt"

	"github.com/golang/geo/s2"
)

// ClusterLevel is the S2 cell level used to bucket stations, roughly 7–10 km across.
const ClusterLevel = 10

// ClusterID returns a stable S2 cell identifier for c at ClusterLevel.
func ClusterID(c Coordinate) string {
	ll := s2.LatLngFromDegrees(c.Latitude, c.Longitude)
	cellID := s2.CellIDFromLatLng(ll).Parent(ClusterLevel)
	return fmt.Sprintf("s2_%d", uint64(cellID))
}

// CountClusters groups stations by ClusterID and returns the size of each group.
// Nil stations are ignored.
func CountClusters(stations []*Station) map[string]int {
	counts := make(map[string]int)
	for _, s := range stations {
		if s == nil {
			continue
		}
		counts[ClusterID(s.Coordinate)]++
	}
	return counts
}
