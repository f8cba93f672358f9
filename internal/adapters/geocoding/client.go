// Package geocoding implements a Nominatim-compatible geocoding.Client.
package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/andrescamacho/fuelplanner/internal/adapters/external"
	"github.com/andrescamacho/fuelplanner/internal/domain/geo"
	"github.com/andrescamacho/fuelplanner/internal/domain/geocoding"
	"github.com/andrescamacho/fuelplanner/internal/domain/shared"
	"github.com/andrescamacho/fuelplanner/internal/infrastructure/cache"
)

// cacheTTL and cache are injected by the caller so the same process-local
// cache instance can be shared with the routing adapter.
type Client struct {
	baseURL   string
	userAgent string
	getter    *external.Getter
	cache     *cache.TTLCache
	cacheTTL  time.Duration
}

// New builds a geocoding client against baseURL (e.g. a Nominatim
// instance). cache may be nil to disable caching.
func New(baseURL, userAgent string, timeout time.Duration, retryCount int, clock shared.Clock, c *cache.TTLCache, cacheTTL time.Duration) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		getter:    external.NewGetter(timeout, retryCount, clock),
		cache:     c,
		cacheTTL:  cacheTTL,
	}
}

type nominatimResult struct {
	Lat     string `json:"lat"`
	Lon     string `json:"lon"`
	Address struct {
		CountryCode string `json:"country_code"`
	} `json:"address"`
}

// Geocode implements geocoding.Client.
func (c *Client) Geocode(ctx context.Context, query, countryCode string) (geocoding.Result, error) {
	if countryCode == "" {
		countryCode = "us"
	}
	cacheKey := cache.Key(strings.ToLower(query) + "|" + countryCode)

	if c.cache != nil {
		if cached, ok := c.cache.Get(cacheKey); ok {
			return cached.(geocoding.Result), nil
		}
	}

	requestURL := c.buildURL(query, countryCode)
	body, err := c.getter.Get(ctx, requestURL, map[string]string{
		"User-Agent": c.userAgent,
		"Accept":     "application/json",
	})
	if err != nil {
		return geocoding.Result{}, err
	}

	var results []nominatimResult
	if err := json.Unmarshal(body, &results); err != nil {
		return geocoding.Result{}, shared.Wrap(shared.ErrInvalidLocation, "malformed geocoder response", err)
	}
	if len(results) == 0 {
		return geocoding.Result{}, shared.New(shared.ErrInvalidLocation, "address could not be resolved")
	}

	first := results[0]
	lat, err := strconv.ParseFloat(first.Lat, 64)
	if err != nil {
		return geocoding.Result{}, shared.Wrap(shared.ErrInvalidLocation, "geocoder returned a non-numeric latitude", err)
	}
	lon, err := strconv.ParseFloat(first.Lon, 64)
	if err != nil {
		return geocoding.Result{}, shared.Wrap(shared.ErrInvalidLocation, "geocoder returned a non-numeric longitude", err)
	}

	resultCountry := first.Address.CountryCode
	if resultCountry != "" && !strings.EqualFold(resultCountry, countryCode) {
		return geocoding.Result{}, shared.New(shared.ErrInvalidLocation, "address must be within USA")
	}

	result := geocoding.Result{
		Point:       geo.Point{Lat: lat, Lon: lon},
		CountryCode: resultCountry,
	}

	if c.cache != nil {
		c.cache.Set(cacheKey, result, c.cacheTTL)
	}

	return result, nil
}

func (c *Client) buildURL(query, countryCode string) string {
	v := url.Values{}
	v.Set("q", query)
	v.Set("format", "jsonv2")
	v.Set("limit", "1")
	v.Set("addressdetails", "1")
	v.Set("countrycodes", countryCode)
	return fmt.Sprintf("%s/search?%s", c.baseURL, v.Encode())
}
