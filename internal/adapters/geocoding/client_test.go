package geocoding_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/fuelplanner/internal/adapters/geocoding"
	"github.com/andrescamacho/fuelplanner/internal/domain/shared"
	"github.com/andrescamacho/fuelplanner/internal/infrastructure/cache"
)

func TestGeocode_ParsesFirstResult(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"lat":"36.1540","lon":"-95.9928","address":{"country_code":"us"}}]`))
	}))
	defer server.Close()

	clock := shared.NewMockClock(time.Unix(0, 0))
	client := geocoding.New(server.URL, "fuelplanner-test", time.Second, 2, clock, nil, 0)

	// Act
	result, err := client.Geocode(context.Background(), "123 Main St, Tulsa, OK", "us")

	// Assert
	require.NoError(t, err)
	assert.InDelta(t, 36.1540, result.Point.Lat, 1e-9)
	assert.InDelta(t, -95.9928, result.Point.Lon, 1e-9)
}

func TestGeocode_EmptyArray_IsInvalidLocation(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	clock := shared.NewMockClock(time.Unix(0, 0))
	client := geocoding.New(server.URL, "fuelplanner-test", time.Second, 2, clock, nil, 0)

	// Act
	_, err := client.Geocode(context.Background(), "nowhere", "us")

	// Assert
	require.Error(t, err)
	assert.Equal(t, shared.ErrInvalidLocation, shared.KindOf(err))
}

func TestGeocode_WrongCountry_IsInvalidLocation(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"lat":"51.5","lon":"-0.12","address":{"country_code":"gb"}}]`))
	}))
	defer server.Close()

	clock := shared.NewMockClock(time.Unix(0, 0))
	client := geocoding.New(server.URL, "fuelplanner-test", time.Second, 2, clock, nil, 0)

	// Act
	_, err := client.Geocode(context.Background(), "London", "us")

	// Assert
	require.Error(t, err)
	assert.Equal(t, shared.ErrInvalidLocation, shared.KindOf(err))
}

func TestGeocode_CachesSuccessfulResult(t *testing.T) {
	// Arrange
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`[{"lat":"36.0","lon":"-96.0","address":{"country_code":"us"}}]`))
	}))
	defer server.Close()

	clock := shared.NewMockClock(time.Unix(0, 0))
	c, err := cache.New(10, clock)
	require.NoError(t, err)
	client := geocoding.New(server.URL, "fuelplanner-test", time.Second, 2, clock, c, time.Hour)

	// Act
	_, err1 := client.Geocode(context.Background(), "same query", "us")
	_, err2 := client.Geocode(context.Background(), "same query", "us")

	// Assert
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, 1, calls)
}
