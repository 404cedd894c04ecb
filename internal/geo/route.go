package geo

// RouteDistance returns the length of a route travelled in the given order,
// summing the distance of each consecutive pair of stops.
//
// A route with fewer than two stops has no length and is unknown. If any
// segment is unknown the whole route is unknown; partial totals are never
// returned. Stops are not reordered.
func RouteDistance(route []*Station) Distance {
	if len(route) < 2 {
		return UnknownDistance
	}

	total := Kilometers(0)
	for i := 0; i < len(route)-1; i++ {
		segment := DistanceBetween(route[i], route[i+1])
		if !segment.Valid() {
			return UnknownDistance
		}
		total = total.Add(segment)
	}
	return total
}
