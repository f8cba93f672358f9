package selection_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/fuelplanner/internal/application/selection"
	"github.com/andrescamacho/fuelplanner/internal/domain/catalog"
	"github.com/andrescamacho/fuelplanner/internal/domain/geo"
)

// fakeStore is an in-memory catalog.Store for selector tests.
type fakeStore struct {
	stations []*catalog.Station
}

func (f *fakeStore) Upsert(ctx context.Context, station *catalog.Station) error { return nil }
func (f *fakeStore) ReplaceAll(ctx context.Context) error                       { return nil }
func (f *fakeStore) StreamUngeocoded(ctx context.Context, chunkSize int, fn func([]*catalog.Station) error) error {
	return nil
}
func (f *fakeStore) MarkGeocoded(ctx context.Context, stationID string, lat, lon float64, at int64) error {
	return nil
}
func (f *fakeStore) MarkGeocodeFailed(ctx context.Context, stationID string, attempts int) error {
	return nil
}

func (f *fakeStore) StreamInBoundingBox(ctx context.Context, box catalog.BoundingBox, chunkSize int, fn func([]*catalog.Station) error) error {
	var in []*catalog.Station
	for _, s := range f.stations {
		if s.Lat == nil || s.Lon == nil {
			continue
		}
		if *s.Lat < box.MinLat || *s.Lat > box.MaxLat || *s.Lon < box.MinLon || *s.Lon > box.MaxLon {
			continue
		}
		in = append(in, s)
	}
	return fn(in)
}

func ptr(f float64) *float64 { return &f }

func straightLinePolyline() []geo.LonLat {
	// A straight east-west line along latitude 35.0 from lon -97.0 to -96.0,
	// roughly 57 miles long.
	return []geo.LonLat{
		{Lon: -97.0, Lat: 35.0},
		{Lon: -96.5, Lat: 35.0},
		{Lon: -96.0, Lat: 35.0},
	}
}

func TestSelect_ProjectionSoundness(t *testing.T) {
	// Arrange: a station right on the line, and one off to the side.
	store := &fakeStore{stations: []*catalog.Station{
		{ID: "on-route", RetailPrice: 3.50, Lat: ptr(35.0), Lon: ptr(-96.75)},
		{ID: "off-route", RetailPrice: 3.40, Lat: ptr(35.05), Lon: ptr(-96.6)},
	}}
	selector := selection.New(store, 0)

	// Act
	candidates, err := selector.Select(context.Background(), straightLinePolyline(), 5.0)

	// Assert
	require.NoError(t, err)
	routeDistance := 0.0
	poly := straightLinePolyline()
	for i := 1; i < len(poly); i++ {
		routeDistance += geo.Distance(poly[i-1].ToPoint(), poly[i].ToPoint())
	}
	for _, c := range candidates {
		assert.GreaterOrEqual(t, c.MilepostMiles, -1e-6)
		assert.LessOrEqual(t, c.MilepostMiles, routeDistance+1e-6)
		assert.LessOrEqual(t, c.OffRouteMiles, 5.0)
	}
}

func TestSelect_DropsStationsOutsideCorridor(t *testing.T) {
	// Arrange: a station far enough off the route to exceed the corridor.
	store := &fakeStore{stations: []*catalog.Station{
		{ID: "far", RetailPrice: 3.5, Lat: ptr(36.0), Lon: ptr(-96.5)},
	}}
	selector := selection.New(store, 0)

	// Act
	candidates, err := selector.Select(context.Background(), straightLinePolyline(), 5.0)

	// Assert
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestSelect_MilepostAscendingOrder(t *testing.T) {
	// Arrange
	store := &fakeStore{stations: []*catalog.Station{
		{ID: "b", RetailPrice: 3.3, Lat: ptr(35.0), Lon: ptr(-96.2)},
		{ID: "a", RetailPrice: 3.6, Lat: ptr(35.0), Lon: ptr(-96.9)},
	}}
	selector := selection.New(store, 0)

	// Act
	candidates, err := selector.Select(context.Background(), straightLinePolyline(), 5.0)

	// Assert
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	for i := 1; i < len(candidates); i++ {
		assert.GreaterOrEqual(t, candidates[i].MilepostMiles, candidates[i-1].MilepostMiles)
	}
}
