package geo

// EstimatePrice returns the fare for travelling distanceKm at ratePerKm,
// never less than basePrice.
//
// A distance that is not positive (including Undefined and NaN) means no
// distance is known yet, and the base price is charged.
func EstimatePrice(distanceKm, ratePerKm, basePrice float64) float64 {
	if !(distanceKm > 0) {
		return basePrice
	}
	return max(basePrice, distanceKm*ratePerKm)
}
