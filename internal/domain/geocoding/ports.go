// Package geocoding defines the port for resolving a free-text address
// into coordinates. The concrete Nominatim-compatible client lives in
// internal/adapters/geocoding.
package geocoding

import (
	"context"

	"github.com/andrescamacho/fuelplanner/internal/domain/geo"
)

// Result is a resolved address: a point plus the ISO country code the
// upstream service reported for it, if any.
type Result struct {
	Point       geo.Point
	CountryCode string
}

// Client resolves a free-text query to a point, validating it falls
// within countryCode (default "us"). Returns shared.ErrInvalidLocation
// when the query cannot be resolved or resolves outside countryCode, and
// shared.ErrExternalService when the upstream service cannot be reached
// after retries.
type Client interface {
	Geocode(ctx context.Context, query, countryCode string) (Result, error)
}
