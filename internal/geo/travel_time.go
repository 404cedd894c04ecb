package geo

import "math"

// minuteTolerance keeps results like 30.000000000000004 from rounding up to 31.
const minuteTolerance = 1e-9

// EstimateTravelMinutes returns how many whole minutes it takes to cover
// distanceKm at speedKmh, rounded up to the next minute. A result within
// 1e-9 minutes above a whole minute counts as that minute.
//
// A distance or speed that is not positive yields 0, meaning no estimate.
func EstimateTravelMinutes(distanceKm, speedKmh float64) int {
	if !(distanceKm > 0) || !(speedKmh > 0) {
		return 0
	}
	minutes := distanceKm / speedKmh * 60
	return int(math.Ceil(minutes - minuteTolerance))
}
