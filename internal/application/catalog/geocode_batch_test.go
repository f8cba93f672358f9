package catalog_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcatalog "github.com/andrescamacho/fuelplanner/internal/application/catalog"
	domaincatalog "github.com/andrescamacho/fuelplanner/internal/domain/catalog"
	"github.com/andrescamacho/fuelplanner/internal/domain/geo"
	"github.com/andrescamacho/fuelplanner/internal/domain/geocoding"
	"github.com/andrescamacho/fuelplanner/internal/domain/shared"
)

type ungeocodedStore struct {
	*fakeStore
	pending []*domaincatalog.Station
	marked  map[string]bool
	failed  map[string]bool
}

func newUngeocodedStore(stations []*domaincatalog.Station) *ungeocodedStore {
	return &ungeocodedStore{
		fakeStore: &fakeStore{},
		pending:   stations,
		marked:    map[string]bool{},
		failed:    map[string]bool{},
	}
}

func (s *ungeocodedStore) StreamUngeocoded(ctx context.Context, chunkSize int, fn func([]*domaincatalog.Station) error) error {
	return fn(s.pending)
}
func (s *ungeocodedStore) MarkGeocoded(ctx context.Context, stationID string, lat, lon float64, at int64) error {
	s.marked[stationID] = true
	return nil
}
func (s *ungeocodedStore) MarkGeocodeFailed(ctx context.Context, stationID string, attempts int) error {
	s.failed[stationID] = true
	return nil
}

type fakeGeocodeClient struct {
	results map[string]geocoding.Result
}

func (c *fakeGeocodeClient) Geocode(ctx context.Context, query, countryCode string) (geocoding.Result, error) {
	if r, ok := c.results[query]; ok {
		return r, nil
	}
	return geocoding.Result{}, shared.New(shared.ErrInvalidLocation, "no match")
}

func TestGeocodeBatch_MarksSuccessAndFailure(t *testing.T) {
	// Arrange
	stations := []*domaincatalog.Station{
		{ID: "s1", Address: "1 Main St", City: "Tulsa", State: "OK"},
		{ID: "s2", Address: "Nowhere", City: "Nowhere", State: "ZZ"},
	}
	store := newUngeocodedStore(stations)
	client := &fakeGeocodeClient{results: map[string]geocoding.Result{
		"1 Main St, Tulsa, OK": {Point: geo.Point{Lat: 36.1, Lon: -95.9}},
	}}
	clock := shared.NewMockClock(time.Unix(0, 0))

	// Act
	result, err := appcatalog.GeocodeBatch(context.Background(), store, client, clock, appcatalog.GeocodeBatchOptions{Limit: 10})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, result.Geocoded)
	assert.Equal(t, 1, result.Failed)
	assert.True(t, store.marked["s1"])
	assert.True(t, store.failed["s2"])
}

func TestGeocodeBatch_RespectsLimit(t *testing.T) {
	// Arrange
	stations := []*domaincatalog.Station{
		{ID: "s1", Address: "1 Main St", City: "Tulsa", State: "OK"},
		{ID: "s2", Address: "2 Main St", City: "Tulsa", State: "OK"},
		{ID: "s3", Address: "3 Main St", City: "Tulsa", State: "OK"},
	}
	store := newUngeocodedStore(stations)
	client := &fakeGeocodeClient{results: map[string]geocoding.Result{
		"1 Main St, Tulsa, OK": {Point: geo.Point{Lat: 1, Lon: 1}},
		"2 Main St, Tulsa, OK": {Point: geo.Point{Lat: 1, Lon: 1}},
		"3 Main St, Tulsa, OK": {Point: geo.Point{Lat: 1, Lon: 1}},
	}}
	clock := shared.NewMockClock(time.Unix(0, 0))

	// Act
	result, err := appcatalog.GeocodeBatch(context.Background(), store, client, clock, appcatalog.GeocodeBatchOptions{Limit: 2})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 2, result.Geocoded)
}
