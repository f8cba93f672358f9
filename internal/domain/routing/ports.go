// Package routing defines the port for converting an ordered list of
// waypoints into route geometry. The concrete OSRM-compatible client
// lives in internal/adapters/routing.
package routing

import (
	"context"

	"github.com/andrescamacho/fuelplanner/internal/domain/geo"
)

// RouteData is the ephemeral result of a routing call: a polyline in
// (lon, lat) order to match the external convention, total distance in
// miles, and total duration in seconds.
type RouteData struct {
	Polyline        []geo.LonLat
	DistanceMiles   float64
	DurationSeconds float64
}

// Client converts waypoints (length >= 2) into a RouteData. Returns
// shared.ErrNoRouteFound for fewer than two waypoints or a degenerate
// upstream response, and shared.ErrExternalService when the upstream
// service cannot be reached after retries.
type Client interface {
	RouteThrough(ctx context.Context, waypoints []geo.Point) (RouteData, error)
}
