package persistence_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/fuelplanner/internal/adapters/persistence"
	"github.com/andrescamacho/fuelplanner/internal/domain/catalog"
	"github.com/andrescamacho/fuelplanner/test/helpers"
)

func ptr(f float64) *float64 { return &f }

func TestStationRepository_UpsertAndStream(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormStationRepository(db)

	station := &catalog.Station{
		ID:           "s1",
		Name:         "Pilot Travel Center",
		Address:      "100 Main St",
		City:         "Tulsa",
		State:        "OK",
		RetailPrice:  3.459,
		CanonicalKey: catalog.CanonicalKey("100 Main St", "Tulsa", "OK"),
		Lat:          ptr(36.1540),
		Lon:          ptr(-95.9928),
	}

	// Act - Upsert
	err := repo.Upsert(context.Background(), station)
	require.NoError(t, err)

	// Act - stream within a box that contains Tulsa
	var found []*catalog.Station
	err = repo.StreamInBoundingBox(context.Background(), catalog.BoundingBox{
		MinLat: 35.0, MaxLat: 37.0, MinLon: -97.0, MaxLon: -95.0,
	}, 100, func(batch []*catalog.Station) error {
		found = append(found, batch...)
		return nil
	})

	// Assert
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "s1", found[0].ID)
	assert.Equal(t, 3.459, found[0].RetailPrice)
}

func TestStationRepository_Upsert_ReplacesOnCanonicalKeyConflict(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormStationRepository(db)
	key := catalog.CanonicalKey("1 Elm St", "Norman", "OK")

	first := &catalog.Station{ID: "a", Address: "1 Elm St", City: "Norman", State: "OK", RetailPrice: 3.5, CanonicalKey: key, Lat: ptr(35.2), Lon: ptr(-97.4)}
	second := &catalog.Station{ID: "b", Address: "1 Elm St", City: "Norman", State: "OK", RetailPrice: 3.1, CanonicalKey: key, Lat: ptr(35.2), Lon: ptr(-97.4)}

	// Act
	require.NoError(t, repo.Upsert(context.Background(), first))
	require.NoError(t, repo.Upsert(context.Background(), second))

	var found []*catalog.Station
	err := repo.StreamInBoundingBox(context.Background(), catalog.BoundingBox{MinLat: 34, MaxLat: 36, MinLon: -98, MaxLon: -96}, 100, func(batch []*catalog.Station) error {
		found = append(found, batch...)
		return nil
	})

	// Assert
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, 3.1, found[0].RetailPrice)
}

func TestStationRepository_MarkGeocodedAndFailed(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormStationRepository(db)
	station := &catalog.Station{ID: "s2", Address: "2 Oak St", City: "Edmond", State: "OK", RetailPrice: 3.2, CanonicalKey: catalog.CanonicalKey("2 Oak St", "Edmond", "OK")}
	require.NoError(t, repo.Upsert(context.Background(), station))

	// Act
	err := repo.MarkGeocoded(context.Background(), "s2", 35.6, -97.4, 1000)

	// Assert
	require.NoError(t, err)

	var geocoded []*catalog.Station
	err = repo.StreamInBoundingBox(context.Background(), catalog.BoundingBox{MinLat: 35, MaxLat: 36, MinLon: -98, MaxLon: -97}, 100, func(batch []*catalog.Station) error {
		geocoded = append(geocoded, batch...)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, geocoded, 1)
	require.NotNil(t, geocoded[0].Lat)
	assert.InDelta(t, 35.6, *geocoded[0].Lat, 1e-9)
}
