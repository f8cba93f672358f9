package catalog

import "context"

// BoundingBox is a lat/lon rectangle used to scope a catalog scan.
type BoundingBox struct {
	MinLat, MaxLat float64
	MinLon, MaxLon float64
}

// Store is the persistence port for the station table. The HTTP handler,
// ORM, and schema migrations that back a concrete Store are out of scope
// for this specification; Store is the only surface the rest of the
// system depends on.
type Store interface {
	// Upsert inserts or updates a station keyed on CanonicalKey.
	Upsert(ctx context.Context, station *Station) error

	// ReplaceAll deletes every row before the caller upserts a fresh batch.
	ReplaceAll(ctx context.Context) error

	// StreamInBoundingBox streams geocoded stations within box to fn, in
	// chunks of chunkSize rows. fn returning an error stops the scan.
	StreamInBoundingBox(ctx context.Context, box BoundingBox, chunkSize int, fn func([]*Station) error) error

	// StreamUngeocoded streams stations that have no coordinates yet and
	// are not flagged as failed, for the offline geocoding batch job.
	StreamUngeocoded(ctx context.Context, chunkSize int, fn func([]*Station) error) error

	// MarkGeocoded records a successful geocode result for a station.
	MarkGeocoded(ctx context.Context, stationID string, lat, lon float64, at int64) error

	// MarkGeocodeFailed records a failed geocode attempt for a station.
	MarkGeocodeFailed(ctx context.Context, stationID string, attempts int) error
}
