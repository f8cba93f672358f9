// Package catalog holds the persistent Station aggregate: a geocoded
// truck-stop fuel price record, deduplicated to a canonical address key.
package catalog

import (
	"strings"
	"time"
)

// Station is a catalog row: a truck stop with a retail fuel price,
// optionally geocoded. Canonical identity is CanonicalKey, not ID.
type Station struct {
	ID      string
	Name    string
	Address string
	City    string
	State   string

	// RetailPrice is dollars/gallon, fixed-point with three decimals at
	// rest; carried as float64 for arithmetic per the specification's
	// "convert at the store boundary" guidance.
	RetailPrice float64

	CanonicalKey string

	Lat, Lon        *float64
	GeocodeAttempts int
	GeocodeFailed   bool
	LastGeocodedAt  *time.Time
}

// CanonicalKey computes the deduplication identity for a physical fueling
// location: UPPER(address) | UPPER(city) | UPPER(state).
func CanonicalKey(address, city, state string) string {
	return strings.ToUpper(strings.TrimSpace(address)) + "|" +
		strings.ToUpper(strings.TrimSpace(city)) + "|" +
		strings.ToUpper(strings.TrimSpace(state))
}

// HasCoordinates reports whether the station has been successfully geocoded.
func (s *Station) HasCoordinates() bool {
	return s.Lat != nil && s.Lon != nil
}
