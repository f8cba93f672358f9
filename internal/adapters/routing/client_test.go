package routing_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/fuelplanner/internal/adapters/routing"
	"github.com/andrescamacho/fuelplanner/internal/domain/geo"
	"github.com/andrescamacho/fuelplanner/internal/domain/shared"
)

const sampleRoute = `{
  "code": "Ok",
  "routes": [{
    "distance": 160934.4,
    "duration": 5400,
    "geometry": {"coordinates": [[-95.9928, 36.1540], [-97.5164, 35.4676]]}
  }]
}`

func TestRouteThrough_ParsesDistanceAndPolyline(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleRoute))
	}))
	defer server.Close()

	clock := shared.NewMockClock(time.Unix(0, 0))
	client := routing.New(server.URL, time.Second, 2, clock, nil, 0)
	waypoints := []geo.Point{{Lat: 36.1540, Lon: -95.9928}, {Lat: 35.4676, Lon: -97.5164}}

	// Act
	result, err := client.RouteThrough(context.Background(), waypoints)

	// Assert
	require.NoError(t, err)
	assert.InDelta(t, 100, result.DistanceMiles, 0.5)
	assert.Len(t, result.Polyline, 2)
	assert.InDelta(t, -95.9928, result.Polyline[0].Lon, 1e-9)
	assert.InDelta(t, 36.1540, result.Polyline[0].Lat, 1e-9)
}

func TestRouteThrough_TooFewWaypoints_IsNoRouteFound(t *testing.T) {
	clock := shared.NewMockClock(time.Unix(0, 0))
	client := routing.New("http://unused.example", time.Second, 2, clock, nil, 0)

	_, err := client.RouteThrough(context.Background(), []geo.Point{{Lat: 1, Lon: 1}})

	require.Error(t, err)
	assert.Equal(t, shared.ErrNoRouteFound, shared.KindOf(err))
}

func TestRouteThrough_NonOkCode_IsNoRouteFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code": "NoRoute", "routes": []}`))
	}))
	defer server.Close()

	clock := shared.NewMockClock(time.Unix(0, 0))
	client := routing.New(server.URL, time.Second, 2, clock, nil, 0)
	waypoints := []geo.Point{{Lat: 1, Lon: 1}, {Lat: 2, Lon: 2}}

	_, err := client.RouteThrough(context.Background(), waypoints)

	require.Error(t, err)
	assert.Equal(t, shared.ErrNoRouteFound, shared.KindOf(err))
}
