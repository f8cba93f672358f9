// Package catalog normalizes raw tabular fuel-price rows into the
// catalog store: trimming, validating, canonicalizing, and deduplicating
// to the cheapest price per physical location.
package catalog

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/andrescamacho/fuelplanner/internal/domain/catalog"
	"github.com/andrescamacho/fuelplanner/internal/domain/shared"
)

// Row is a single raw record from the tabular price source, column names
// matching the OPIS truckstop feed this system ingests.
type Row struct {
	TruckstopID string
	Name        string
	Address     string
	City        string
	State       string
	RackID      string
	RetailPrice string
}

// Normalizer validates and deduplicates a batch of raw Rows into Station
// upserts, applying them through store.
type Normalizer struct {
	store catalog.Store
}

func New(store catalog.Store) *Normalizer {
	return &Normalizer{store: store}
}

// Ingest normalizes rows, deduplicates by canonical key keeping the
// cheapest price, and upserts the survivors. If replaceAll is true the
// store is cleared before upserting. Individual malformed rows are
// dropped silently; there is no fatal condition at this layer beyond a
// store error.
func (n *Normalizer) Ingest(ctx context.Context, rows []Row, replaceAll bool) (int, error) {
	stations := normalizeRows(rows)
	stations = dedupeCheapest(stations)

	if replaceAll {
		if err := n.store.ReplaceAll(ctx); err != nil {
			return 0, shared.Wrap(shared.ErrExternalService, "failed to clear catalog store", err)
		}
	}

	for _, s := range stations {
		if err := n.store.Upsert(ctx, s); err != nil {
			return 0, shared.Wrap(shared.ErrExternalService, "failed to upsert station", err)
		}
	}

	return len(stations), nil
}

// normalizeRows applies row-level normalization, dropping rows that fail
// any validation rule.
func normalizeRows(rows []Row) []*catalog.Station {
	var stations []*catalog.Station
	for _, r := range rows {
		station, ok := normalizeRow(r)
		if !ok {
			continue
		}
		stations = append(stations, station)
	}
	return stations
}

func normalizeRow(r Row) (*catalog.Station, bool) {
	name := strings.TrimSpace(r.Name)
	address := strings.TrimSpace(r.Address)
	city := strings.TrimSpace(r.City)
	state := strings.ToUpper(strings.TrimSpace(r.State))
	if len(state) > 2 {
		state = state[:2]
	}

	if address == "" || city == "" || len(state) != 2 {
		return nil, false
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(r.RetailPrice), 64)
	if err != nil || price <= 0 {
		return nil, false
	}

	return &catalog.Station{
		ID:           strings.TrimSpace(r.TruckstopID),
		Name:         name,
		Address:      address,
		City:         city,
		State:        state,
		RetailPrice:  price,
		CanonicalKey: catalog.CanonicalKey(address, city, state),
	}, true
}

// dedupeCheapest sorts by (canonical_key, price ascending) and keeps the
// first row per canonical_key — the cheapest.
func dedupeCheapest(stations []*catalog.Station) []*catalog.Station {
	sort.SliceStable(stations, func(i, j int) bool {
		if stations[i].CanonicalKey != stations[j].CanonicalKey {
			return stations[i].CanonicalKey < stations[j].CanonicalKey
		}
		return stations[i].RetailPrice < stations[j].RetailPrice
	})

	var kept []*catalog.Station
	seen := make(map[string]bool)
	for _, s := range stations {
		if seen[s.CanonicalKey] {
			continue
		}
		seen[s.CanonicalKey] = true
		kept = append(kept, s)
	}
	return kept
}
