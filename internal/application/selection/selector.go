// Package selection projects geocoded catalog stations onto a route
// polyline and down-samples them to a bounded, milepost-ordered set of
// fuel-purchase candidates.
package selection

import (
	"context"
	"sort"

	"github.com/andrescamacho/fuelplanner/internal/domain/catalog"
	"github.com/andrescamacho/fuelplanner/internal/domain/geo"
	"github.com/andrescamacho/fuelplanner/pkg/utils"
)

const (
	// DefaultMaxCandidates is the MAX_CANDIDATE_STATIONS default.
	DefaultMaxCandidates = 600

	// maxPolylinePoints is the simplification threshold.
	maxPolylinePoints = 1500

	// bucketMiles is the down-sampling bucket width.
	bucketMiles = 25

	// stationsKeptPerBucket is how many cheapest stations survive each bucket.
	stationsKeptPerBucket = 3

	// milesPerDegree is used to inflate the bounding box by a corridor margin.
	milesPerDegree = 69.0

	chunkSize = 1000
)

// Selector selects candidate stations along a route.
type Selector struct {
	store         catalog.Store
	maxCandidates int
}

// New builds a Selector. maxCandidates <= 0 uses DefaultMaxCandidates.
func New(store catalog.Store, maxCandidates int) *Selector {
	if maxCandidates <= 0 {
		maxCandidates = DefaultMaxCandidates
	}
	return &Selector{store: store, maxCandidates: maxCandidates}
}

// Select implements the algorithm in the specification's station-selector
// section: simplify, project, corridor-filter, bucket down-sample.
func (s *Selector) Select(ctx context.Context, polyline []geo.LonLat, corridorMiles float64) ([]*catalog.CandidateStation, error) {
	simplified := simplifyPolyline(polyline)
	cumulative := cumulativeMileage(simplified)
	box := boundingBox(simplified, corridorMiles)

	var candidates []*catalog.CandidateStation
	err := s.store.StreamInBoundingBox(ctx, box, chunkSize, func(stations []*catalog.Station) error {
		for _, st := range stations {
			if !st.HasCoordinates() {
				continue
			}
			candidate, ok := projectOntoPolyline(st, simplified, cumulative)
			if !ok {
				continue
			}
			if candidate.OffRouteMiles > corridorMiles {
				continue
			}
			candidates = append(candidates, candidate)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	candidates = downSample(candidates, s.maxCandidates)

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].MilepostMiles != candidates[j].MilepostMiles {
			return candidates[i].MilepostMiles < candidates[j].MilepostMiles
		}
		return candidates[i].Station.RetailPrice < candidates[j].Station.RetailPrice
	})

	return candidates, nil
}

// simplifyPolyline strides down polylines longer than maxPolylinePoints,
// always keeping the last point.
func simplifyPolyline(polyline []geo.LonLat) []geo.LonLat {
	if len(polyline) <= maxPolylinePoints {
		return polyline
	}
	stride := len(polyline) / maxPolylinePoints
	if stride < 1 {
		stride = 1
	}
	simplified := make([]geo.LonLat, 0, maxPolylinePoints+1)
	for i := 0; i < len(polyline); i += stride {
		simplified = append(simplified, polyline[i])
	}
	last := polyline[len(polyline)-1]
	if simplified[len(simplified)-1] != last {
		simplified = append(simplified, last)
	}
	return simplified
}

func cumulativeMileage(polyline []geo.LonLat) []float64 {
	cumulative := make([]float64, len(polyline))
	for i := 1; i < len(polyline); i++ {
		prev := polyline[i-1].ToPoint()
		curr := polyline[i].ToPoint()
		cumulative[i] = cumulative[i-1] + geo.Distance(prev, curr)
	}
	return cumulative
}

func boundingBox(polyline []geo.LonLat, corridorMiles float64) catalog.BoundingBox {
	margin := corridorMiles / milesPerDegree
	box := catalog.BoundingBox{
		MinLat: polyline[0].Lat, MaxLat: polyline[0].Lat,
		MinLon: polyline[0].Lon, MaxLon: polyline[0].Lon,
	}
	for _, p := range polyline {
		box.MinLat = minF(box.MinLat, p.Lat)
		box.MaxLat = maxF(box.MaxLat, p.Lat)
		box.MinLon = minF(box.MinLon, p.Lon)
		box.MaxLon = maxF(box.MaxLon, p.Lon)
	}
	box.MinLat -= margin
	box.MaxLat += margin
	box.MinLon -= margin
	box.MaxLon += margin
	return box
}

// projectOntoPolyline finds the polyline segment nearest to st and
// returns the candidate with its milepost and off-route distance.
func projectOntoPolyline(st *catalog.Station, polyline []geo.LonLat, cumulative []float64) (*catalog.CandidateStation, bool) {
	best := &catalog.CandidateStation{Station: st}
	found := false
	bestDist := 0.0

	for i := 0; i < len(polyline)-1; i++ {
		p0, p1 := polyline[i], polyline[i+1]
		refLat := (p0.Lat + p1.Lat) / 2

		a := geo.ToMilesXY(p0.Lon, p0.Lat, refLat)
		b := geo.ToMilesXY(p1.Lon, p1.Lat, refLat)
		segment := b.Sub(a)
		lenSq := segment.Dot(segment)
		if lenSq == 0 {
			continue
		}

		stationXY := geo.ToMilesXY(*st.Lon, *st.Lat, refLat)
		toStation := stationXY.Sub(a)
		t := geo.Clamp01(toStation.Dot(segment) / lenSq)

		projected := geo.XY{X: a.X + t*segment.X, Y: a.Y + t*segment.Y}
		dist := stationXY.Sub(projected).Norm()

		if !found || dist < bestDist {
			found = true
			bestDist = dist
			best.MilepostMiles = cumulative[i] + t*(cumulative[i+1]-cumulative[i])
			best.OffRouteMiles = dist
		}
	}

	return best, found
}

// downSample applies the 25-mile-bucket top-3-cheapest heuristic, then
// caps the remainder at maxCandidates by global price if still over.
func downSample(candidates []*catalog.CandidateStation, maxCandidates int) []*catalog.CandidateStation {
	buckets := make(map[int][]*catalog.CandidateStation)
	for _, c := range candidates {
		bucket := int(c.MilepostMiles / bucketMiles)
		buckets[bucket] = append(buckets[bucket], c)
	}

	var survivors []*catalog.CandidateStation
	for _, bucket := range buckets {
		sort.Slice(bucket, func(i, j int) bool {
			return bucket[i].Station.RetailPrice < bucket[j].Station.RetailPrice
		})
		keep := utils.Min(stationsKeptPerBucket, len(bucket))
		survivors = append(survivors, bucket[:keep]...)
	}

	if len(survivors) <= maxCandidates {
		return survivors
	}

	sort.Slice(survivors, func(i, j int) bool {
		return survivors[i].Station.RetailPrice < survivors[j].Station.RetailPrice
	})
	return survivors[:utils.Min(maxCandidates, len(survivors))]
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
