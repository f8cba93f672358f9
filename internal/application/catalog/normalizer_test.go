package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcatalog "github.com/andrescamacho/fuelplanner/internal/application/catalog"
	domaincatalog "github.com/andrescamacho/fuelplanner/internal/domain/catalog"
)

// fakeStore records every upserted station and whether ReplaceAll was called.
type fakeStore struct {
	replacedAll bool
	upserted    []*domaincatalog.Station
}

func (f *fakeStore) Upsert(ctx context.Context, station *domaincatalog.Station) error {
	f.upserted = append(f.upserted, station)
	return nil
}
func (f *fakeStore) ReplaceAll(ctx context.Context) error {
	f.replacedAll = true
	return nil
}
func (f *fakeStore) StreamInBoundingBox(ctx context.Context, box domaincatalog.BoundingBox, chunkSize int, fn func([]*domaincatalog.Station) error) error {
	return nil
}
func (f *fakeStore) StreamUngeocoded(ctx context.Context, chunkSize int, fn func([]*domaincatalog.Station) error) error {
	return nil
}
func (f *fakeStore) MarkGeocoded(ctx context.Context, stationID string, lat, lon float64, at int64) error {
	return nil
}
func (f *fakeStore) MarkGeocodeFailed(ctx context.Context, stationID string, attempts int) error {
	return nil
}

func TestIngest_S6_DedupKeepsCheapest(t *testing.T) {
	// Arrange
	store := &fakeStore{}
	n := appcatalog.New(store)
	rows := []appcatalog.Row{
		{TruckstopID: "1", Name: "A", Address: "100 Main St", City: "Tulsa", State: "OK", RetailPrice: "3.500"},
		{TruckstopID: "2", Name: "A-dup", Address: "100 Main St", City: "Tulsa", State: "OK", RetailPrice: "3.200"},
		{TruckstopID: "3", Name: "B", Address: "50 Elm St", City: "Norman", State: "OK", RetailPrice: "0.000"},
		{TruckstopID: "4", Name: "C", Address: "1 Highway Dr", City: "Edmond", State: "OK", RetailPrice: "3.100"},
	}

	// Act
	count, err := n.Ingest(context.Background(), rows, false)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	byKey := make(map[string]*domaincatalog.Station)
	for _, s := range store.upserted {
		byKey[s.CanonicalKey] = s
	}
	tulsa := byKey[domaincatalog.CanonicalKey("100 Main St", "Tulsa", "OK")]
	require.NotNil(t, tulsa)
	assert.Equal(t, 3.200, tulsa.RetailPrice)
}

func TestIngest_RejectsInvalidRows(t *testing.T) {
	// Arrange
	store := &fakeStore{}
	n := appcatalog.New(store)
	rows := []appcatalog.Row{
		{Address: "", City: "Tulsa", State: "OK", RetailPrice: "3.0"},
		{Address: "1 Main St", City: "", State: "OK", RetailPrice: "3.0"},
		{Address: "1 Main St", City: "Tulsa", State: "O", RetailPrice: "3.0"},
		{Address: "1 Main St", City: "Tulsa", State: "OK", RetailPrice: "not-a-number"},
		{Address: "1 Main St", City: "Tulsa", State: "OK", RetailPrice: "-1.0"},
	}

	// Act
	count, err := n.Ingest(context.Background(), rows, false)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestIngest_ReplaceAll_ClearsStoreFirst(t *testing.T) {
	// Arrange
	store := &fakeStore{}
	n := appcatalog.New(store)
	rows := []appcatalog.Row{
		{Address: "1 Main St", City: "Tulsa", State: "OK", RetailPrice: "3.0"},
	}

	// Act
	_, err := n.Ingest(context.Background(), rows, true)

	// Assert
	require.NoError(t, err)
	assert.True(t, store.replacedAll)
}
