package catalog

// CandidateStation is a Station projected onto a route: its milepost along
// the route polyline and its perpendicular distance from it. Produced by
// the station selector, consumed by the fuel-plan optimizer.
type CandidateStation struct {
	Station *Station

	// MilepostMiles is the cumulative route mileage at the station's
	// nearest point on the polyline.
	MilepostMiles float64

	// OffRouteMiles is the perpendicular distance from the polyline to
	// the station, used to filter candidates into the corridor and
	// reported in the plan response.
	OffRouteMiles float64
}
