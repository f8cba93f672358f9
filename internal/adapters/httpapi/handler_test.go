package httpapi_test

import (
	"bytes"
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/fuelplanner/internal/adapters/httpapi"
	"github.com/andrescamacho/fuelplanner/internal/application/planning"
	"github.com/andrescamacho/fuelplanner/internal/application/selection"
	"github.com/andrescamacho/fuelplanner/internal/domain/catalog"
	"github.com/andrescamacho/fuelplanner/internal/domain/geo"
	"github.com/andrescamacho/fuelplanner/internal/domain/geocoding"
	"github.com/andrescamacho/fuelplanner/internal/domain/routing"
	"github.com/andrescamacho/fuelplanner/internal/domain/shared"
)

type stubGeocoder struct{ point geo.Point }

func (s stubGeocoder) Geocode(ctx context.Context, query, countryCode string) (geocoding.Result, error) {
	return geocoding.Result{Point: s.point, CountryCode: "us"}, nil
}

type invalidLocationGeocoder struct{}

func (invalidLocationGeocoder) Geocode(ctx context.Context, query, countryCode string) (geocoding.Result, error) {
	return geocoding.Result{}, shared.New(shared.ErrInvalidLocation, "could not resolve address")
}

type stubRouter struct{}

func (stubRouter) RouteThrough(ctx context.Context, waypoints []geo.Point) (routing.RouteData, error) {
	return routing.RouteData{
		Polyline:        []geo.LonLat{{Lon: waypoints[0].Lon, Lat: waypoints[0].Lat}, {Lon: waypoints[1].Lon, Lat: waypoints[1].Lat}},
		DistanceMiles:   40,
		DurationSeconds: 3600,
	}, nil
}

type emptyStore struct{}

func (emptyStore) Upsert(ctx context.Context, station *catalog.Station) error { return nil }
func (emptyStore) ReplaceAll(ctx context.Context) error                      { return nil }
func (emptyStore) StreamInBoundingBox(ctx context.Context, box catalog.BoundingBox, chunkSize int, fn func([]*catalog.Station) error) error {
	return fn(nil)
}
func (emptyStore) StreamUngeocoded(ctx context.Context, chunkSize int, fn func([]*catalog.Station) error) error {
	return nil
}
func (emptyStore) MarkGeocoded(ctx context.Context, stationID string, lat, lon float64, at int64) error {
	return nil
}
func (emptyStore) MarkGeocodeFailed(ctx context.Context, stationID string, attempts int) error {
	return nil
}

func newTestHandler(geocoder geocoding.Client) *httpapi.Handler {
	selector := selection.New(emptyStore{}, 0)
	orchestrator := planning.New(geocoder, stubRouter{}, selector, nil, planning.VehicleDefaults{
		MPG: 10, TankCapacityGal: 50, MaxRangeMiles: 500, CorridorMiles: 8,
	})
	return httpapi.NewHandler(orchestrator)
}

func TestHandler_NoStopNeeded_ReturnsEmptyStops(t *testing.T) {
	// Arrange
	handler := newTestHandler(stubGeocoder{point: geo.Point{Lat: 35.0, Lon: -97.0}})
	body := `{"start_location":"Tulsa, OK","finish_location":"Oklahoma City, OK"}`
	req := httptest.NewRequest("POST", "/plan", bytes.NewBufferString(body))
	recorder := httptest.NewRecorder()

	// Act
	handler.ServeHTTP(recorder, req)

	// Assert
	assert.Equal(t, 200, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"stops":[]`)
}

func TestHandler_UnknownField_IsInvalidJSON(t *testing.T) {
	// Arrange
	handler := newTestHandler(stubGeocoder{point: geo.Point{Lat: 35.0, Lon: -97.0}})
	body := `{"start_location":"Tulsa, OK","finish_location":"Oklahoma City, OK","bogus_field":1}`
	req := httptest.NewRequest("POST", "/plan", bytes.NewBufferString(body))
	recorder := httptest.NewRecorder()

	// Act
	handler.ServeHTTP(recorder, req)

	// Assert
	assert.Equal(t, 400, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"invalid_json"`)
}

func TestHandler_TooShortLocation_IsValidationError(t *testing.T) {
	// Arrange
	handler := newTestHandler(stubGeocoder{point: geo.Point{Lat: 35.0, Lon: -97.0}})
	body := `{"start_location":"a","finish_location":"Oklahoma City, OK"}`
	req := httptest.NewRequest("POST", "/plan", bytes.NewBufferString(body))
	recorder := httptest.NewRecorder()

	// Act
	handler.ServeHTTP(recorder, req)

	// Assert
	assert.Equal(t, 400, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"validation_error"`)
}

func TestHandler_InvalidLocation_Returns400WithCode(t *testing.T) {
	// Arrange
	handler := newTestHandler(invalidLocationGeocoder{})
	body := `{"start_location":"Nowhereville","finish_location":"Oklahoma City, OK"}`
	req := httptest.NewRequest("POST", "/plan", bytes.NewBufferString(body))
	recorder := httptest.NewRecorder()

	// Act
	handler.ServeHTTP(recorder, req)

	// Assert
	require.Equal(t, 400, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"invalid_location"`)
}
