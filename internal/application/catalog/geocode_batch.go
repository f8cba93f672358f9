package catalog

import (
	"context"
	"fmt"
	"time"

	domaincatalog "github.com/andrescamacho/fuelplanner/internal/domain/catalog"
	"github.com/andrescamacho/fuelplanner/internal/domain/geocoding"
	"github.com/andrescamacho/fuelplanner/internal/domain/shared"
)

// nominatimPoliteInterval is the pause applied between requests when
// GeocodeBatchOptions.SleepBetweenRequests is set, matching Nominatim's
// usage-policy rate limit of roughly one request per second.
const nominatimPoliteInterval = 1100 * time.Millisecond

// GeocodeBatchOptions configures an offline geocoding run against
// previously-imported, ungeocoded stations.
type GeocodeBatchOptions struct {
	// Limit caps the number of stations geocoded in one run.
	Limit int

	// SleepBetweenRequests is applied after every attempt, successful or
	// not, to stay polite to the geocoding service.
	SleepBetweenRequests bool
}

// GeocodeBatchResult summarizes a completed run.
type GeocodeBatchResult struct {
	Geocoded int
	Failed   int
}

// GeocodeBatch resolves coordinates for stations the normalizer imported
// but that have not yet been geocoded, one page at a time, persisting
// every attempt through store. Stations already flagged as failed are not
// streamed by store.StreamUngeocoded and so are not retried.
func GeocodeBatch(ctx context.Context, store domaincatalog.Store, client geocoding.Client, clock shared.Clock, opts GeocodeBatchOptions) (GeocodeBatchResult, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}

	var result GeocodeBatchResult
	remaining := limit

	err := store.StreamUngeocoded(ctx, 100, func(stations []*domaincatalog.Station) error {
		for _, station := range stations {
			if remaining <= 0 {
				return errStopStreaming
			}
			remaining--

			address := fmt.Sprintf("%s, %s, %s", station.Address, station.City, station.State)
			geocoded, err := client.Geocode(ctx, address, "us")
			at := clock.Now().Unix()

			if err != nil {
				result.Failed++
				if markErr := store.MarkGeocodeFailed(ctx, station.ID, station.GeocodeAttempts+1); markErr != nil {
					return markErr
				}
				if opts.SleepBetweenRequests {
					clock.Sleep(nominatimPoliteInterval)
				}
				continue
			}

			result.Geocoded++
			if markErr := store.MarkGeocoded(ctx, station.ID, geocoded.Point.Lat, geocoded.Point.Lon, at); markErr != nil {
				return markErr
			}
			if opts.SleepBetweenRequests {
				clock.Sleep(nominatimPoliteInterval)
			}
		}
		return nil
	})

	if err != nil && err != errStopStreaming {
		return result, shared.Wrap(shared.ErrExternalService, "geocode batch failed", err)
	}

	return result, nil
}

// errStopStreaming is a sentinel used to end StreamUngeocoded early once
// the batch limit is reached; it is never returned to the caller.
var errStopStreaming = fmt.Errorf("geocode batch: limit reached")
