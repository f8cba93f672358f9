package steps

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
	"github.com/cucumber/messages/go/v21"

	catalogapp "github.com/andrescamacho/fuelplanner/internal/application/catalog"
	"github.com/andrescamacho/fuelplanner/internal/domain/catalog"
)

// memoryStore is a minimal in-memory catalog.Store for BDD scenarios,
// keyed by canonical key so that Upsert replaces on a key conflict.
type memoryStore struct {
	byID map[string]*catalog.Station
}

func newMemoryStore() *memoryStore {
	return &memoryStore{byID: make(map[string]*catalog.Station)}
}

func (m *memoryStore) Upsert(_ context.Context, s *catalog.Station) error {
	m.byID[s.CanonicalKey] = s
	return nil
}

func (m *memoryStore) ReplaceAll(_ context.Context) error {
	m.byID = make(map[string]*catalog.Station)
	return nil
}

func (m *memoryStore) StreamInBoundingBox(_ context.Context, _ catalog.BoundingBox, _ int, fn func([]*catalog.Station) error) error {
	var all []*catalog.Station
	for _, s := range m.byID {
		all = append(all, s)
	}
	return fn(all)
}

func (m *memoryStore) StreamUngeocoded(_ context.Context, _ int, fn func([]*catalog.Station) error) error {
	return fn(nil)
}

func (m *memoryStore) MarkGeocoded(_ context.Context, _ string, _, _ float64, _ int64) error {
	return nil
}

func (m *memoryStore) MarkGeocodeFailed(_ context.Context, _ string, _ int) error {
	return nil
}

type catalogContext struct {
	rows  []catalogapp.Row
	store *memoryStore
	count int
	err   error
}

func (cc *catalogContext) reset() {
	cc.rows = nil
	cc.store = newMemoryStore()
	cc.count = 0
	cc.err = nil
}

func (cc *catalogContext) aCSVBatchWithTheFollowingRows(table *godog.Table) error {
	for i, row := range table.Rows {
		if i == 0 {
			continue // header row
		}
		cc.rows = append(cc.rows, catalogapp.Row{
			TruckstopID: fmt.Sprintf("%d", i),
			Address:     cellByColumn(table, row, "address"),
			City:        cellByColumn(table, row, "city"),
			State:       cellByColumn(table, row, "state"),
			RetailPrice: cellByColumn(table, row, "price"),
		})
	}
	return nil
}

// cellByColumn finds a cell in row by matching the header row's column
// name, so scenario tables don't need to keep their columns in a fixed
// positional order.
func cellByColumn(table *godog.Table, row *messages.PickleTableRow, columnName string) string {
	if len(table.Rows) == 0 {
		return ""
	}
	header := table.Rows[0]
	for i, cell := range header.Cells {
		if cell.Value == columnName {
			if i < len(row.Cells) {
				return row.Cells[i].Value
			}
			return ""
		}
	}
	return ""
}

func (cc *catalogContext) theCatalogNormalizerIngestsTheBatch() error {
	normalizer := catalogapp.New(cc.store)
	cc.count, cc.err = normalizer.Ingest(context.Background(), cc.rows, false)
	return cc.err
}

func (cc *catalogContext) theCatalogHasStations(n int) error {
	if len(cc.store.byID) != n {
		return fmt.Errorf("expected %d stations, got %d", n, len(cc.store.byID))
	}
	return nil
}

func (cc *catalogContext) theStationAtHasPrice(address string, price float64) error {
	for _, s := range cc.store.byID {
		if fmt.Sprintf("%s, %s, %s", s.Address, s.City, s.State) == address {
			if s.RetailPrice != price {
				return fmt.Errorf("expected price %v, got %v", price, s.RetailPrice)
			}
			return nil
		}
	}
	return fmt.Errorf("no station found matching %q", address)
}

// InitializeCatalogIngestScenario registers the catalog ingestion steps.
func InitializeCatalogIngestScenario(sc *godog.ScenarioContext) {
	cc := &catalogContext{}

	sc.Before(func(ctx context.Context, s *godog.Scenario) (context.Context, error) {
		cc.reset()
		return ctx, nil
	})

	sc.Step(`^a CSV batch with the following rows:$`, cc.aCSVBatchWithTheFollowingRows)
	sc.Step(`^the catalog normalizer ingests the batch$`, cc.theCatalogNormalizerIngestsTheBatch)
	sc.Step(`^the catalog has (\d+) stations$`, cc.theCatalogHasStations)
	sc.Step(`^the station at "([^"]*)" has price ([0-9.]+)$`, cc.theStationAtHasPrice)
}
