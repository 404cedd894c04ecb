package geo

import (
	"cmp"
	"slices"
)

// NearestStations returns up to k candidates closest to ref, nearest first.
//
// The reference is excluded by ID, not by position, so a different station at
// the same coordinates is still returned. Candidates whose distance cannot be
// computed (nil entries) are skipped and do not count toward k. Equal
// distances keep the order they had in candidates.
//
// A nil ref, nil candidates or a non-positive k yield an empty result.
func NearestStations(ref *Station, candidates []*Station, k int) []StationDistance {
	if ref == nil || candidates == nil || k <= 0 {
		return []StationDistance{}
	}

	ranked := make([]StationDistance, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate != nil && candidate.ID == ref.ID {
			continue
		}
		d, ok := DistanceBetween(ref, candidate).Value()
		if !ok {
			continue
		}
		ranked = append(ranked, StationDistance{Station: *candidate, Kilometers: d})
	}

	slices.SortStableFunc(ranked, func(a, b StationDistance) int {
		return cmp.Compare(a.Kilometers, b.Kilometers)
	})

	if len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked
}
