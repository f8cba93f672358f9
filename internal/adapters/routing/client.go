// Package routing implements an OSRM-compatible routing.Client.
package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/andrescamacho/fuelplanner/internal/adapters/external"
	"github.com/andrescamacho/fuelplanner/internal/domain/geo"
	domainrouting "github.com/andrescamacho/fuelplanner/internal/domain/routing"
	"github.com/andrescamacho/fuelplanner/internal/domain/shared"
	"github.com/andrescamacho/fuelplanner/internal/infrastructure/cache"
)

// metersToMiles converts OSRM's meter distances to miles.
const metersToMiles = 0.000621371

type Client struct {
	baseURL  string
	getter   *external.Getter
	cache    *cache.TTLCache
	cacheTTL time.Duration
}

// New builds a routing client against baseURL (e.g. a running OSRM
// instance). cache may be nil to disable caching.
func New(baseURL string, timeout time.Duration, retryCount int, clock shared.Clock, c *cache.TTLCache, cacheTTL time.Duration) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		getter:   external.NewGetter(timeout, retryCount, clock),
		cache:    c,
		cacheTTL: cacheTTL,
	}
}

type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
		Geometry struct {
			Coordinates [][2]float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"routes"`
}

// RouteThrough implements routing.Client.
func (c *Client) RouteThrough(ctx context.Context, waypoints []geo.Point) (domainrouting.RouteData, error) {
	if len(waypoints) < 2 {
		return domainrouting.RouteData{}, shared.New(shared.ErrNoRouteFound, "at least two waypoints are required")
	}

	cacheKey := cache.Key(routeCacheInput(waypoints))
	if c.cache != nil {
		if cached, ok := c.cache.Get(cacheKey); ok {
			return cached.(domainrouting.RouteData), nil
		}
	}

	requestURL := c.buildURL(waypoints)
	body, err := c.getter.Get(ctx, requestURL, map[string]string{
		"Accept": "application/json",
	})
	if err != nil {
		return domainrouting.RouteData{}, err
	}

	var parsed osrmResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return domainrouting.RouteData{}, shared.Wrap(shared.ErrNoRouteFound, "malformed routing response", err)
	}
	if parsed.Code != "Ok" || len(parsed.Routes) == 0 {
		return domainrouting.RouteData{}, shared.New(shared.ErrNoRouteFound, "routing engine returned no route")
	}

	route := parsed.Routes[0]
	if len(route.Geometry.Coordinates) < 2 {
		return domainrouting.RouteData{}, shared.New(shared.ErrNoRouteFound, "route geometry has fewer than two points")
	}

	polyline := make([]geo.LonLat, len(route.Geometry.Coordinates))
	for i, coord := range route.Geometry.Coordinates {
		polyline[i] = geo.LonLat{Lon: coord[0], Lat: coord[1]}
	}

	result := domainrouting.RouteData{
		Polyline:        polyline,
		DistanceMiles:   route.Distance * metersToMiles,
		DurationSeconds: route.Duration,
	}

	if c.cache != nil {
		c.cache.Set(cacheKey, result, c.cacheTTL)
	}

	return result, nil
}

func (c *Client) buildURL(waypoints []geo.Point) string {
	parts := make([]string, len(waypoints))
	for i, w := range waypoints {
		parts[i] = fmt.Sprintf("%f,%f", w.Lon, w.Lat)
	}
	coords := strings.Join(parts, ";")
	return fmt.Sprintf("%s/route/v1/driving/%s?overview=full&geometries=geojson&steps=false&annotations=false", c.baseURL, coords)
}

// routeCacheInput builds the cache key input: 5-decimal-rounded
// "lat:lon" pairs joined by "|".
func routeCacheInput(waypoints []geo.Point) string {
	parts := make([]string, len(waypoints))
	for i, w := range waypoints {
		parts[i] = fmt.Sprintf("%.5f:%.5f", w.Lat, w.Lon)
	}
	return strings.Join(parts, "|")
}
