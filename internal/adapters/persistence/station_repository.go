// Package persistence implements the catalog store port against a GORM
// database handle (PostgreSQL in production, SQLite for local/dev use).
package persistence

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/andrescamacho/fuelplanner/internal/domain/catalog"
)

// GormStationRepository implements catalog.Store using GORM.
type GormStationRepository struct {
	db *gorm.DB
}

func NewGormStationRepository(db *gorm.DB) *GormStationRepository {
	return &GormStationRepository{db: db}
}

// Upsert inserts or updates a station keyed on CanonicalKey.
func (r *GormStationRepository) Upsert(ctx context.Context, station *catalog.Station) error {
	model := stationToModel(station)
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "canonical_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "address", "city", "state", "retail_price"}),
	}).Create(model)
	if result.Error != nil {
		return fmt.Errorf("failed to upsert station: %w", result.Error)
	}
	return nil
}

// ReplaceAll deletes every row before the caller upserts a fresh batch.
func (r *GormStationRepository) ReplaceAll(ctx context.Context) error {
	result := r.db.WithContext(ctx).Where("1 = 1").Delete(&StationModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to clear stations table: %w", result.Error)
	}
	return nil
}

// StreamInBoundingBox streams geocoded stations within box to fn, in
// chunks of chunkSize rows.
func (r *GormStationRepository) StreamInBoundingBox(ctx context.Context, box catalog.BoundingBox, chunkSize int, fn func([]*catalog.Station) error) error {
	query := r.db.WithContext(ctx).
		Where("lat IS NOT NULL AND lon IS NOT NULL").
		Where("lat BETWEEN ? AND ?", box.MinLat, box.MaxLat).
		Where("lon BETWEEN ? AND ?", box.MinLon, box.MaxLon)

	return streamInChunks(query, chunkSize, fn)
}

// StreamUngeocoded streams stations that have no coordinates yet and are
// not flagged as failed.
func (r *GormStationRepository) StreamUngeocoded(ctx context.Context, chunkSize int, fn func([]*catalog.Station) error) error {
	query := r.db.WithContext(ctx).
		Where("(lat IS NULL OR lon IS NULL) AND geocode_failed = ?", false)

	return streamInChunks(query, chunkSize, fn)
}

func streamInChunks(query *gorm.DB, chunkSize int, fn func([]*catalog.Station) error) error {
	var models []StationModel
	var batchErr error
	result := query.FindInBatches(&models, chunkSize, func(tx *gorm.DB, batch int) error {
		stations := make([]*catalog.Station, 0, len(models))
		for i := range models {
			stations = append(stations, modelToStation(&models[i]))
		}
		if err := fn(stations); err != nil {
			batchErr = err
			return err
		}
		return nil
	})
	if result.Error != nil {
		return fmt.Errorf("failed to stream stations: %w", result.Error)
	}
	return batchErr
}

// MarkGeocoded records a successful geocode result for a station.
func (r *GormStationRepository) MarkGeocoded(ctx context.Context, stationID string, lat, lon float64, at int64) error {
	geocodedAt := time.Unix(at, 0).UTC()
	result := r.db.WithContext(ctx).Model(&StationModel{}).Where("id = ?", stationID).Updates(map[string]interface{}{
		"lat":              lat,
		"lon":              lon,
		"geocode_failed":   false,
		"geocode_attempts": gorm.Expr("geocode_attempts + 1"),
		"last_geocoded_at": geocodedAt,
	})
	if result.Error != nil {
		return fmt.Errorf("failed to mark station geocoded: %w", result.Error)
	}
	return nil
}

// MarkGeocodeFailed records a failed geocode attempt for a station.
func (r *GormStationRepository) MarkGeocodeFailed(ctx context.Context, stationID string, attempts int) error {
	result := r.db.WithContext(ctx).Model(&StationModel{}).Where("id = ?", stationID).Updates(map[string]interface{}{
		"geocode_failed":   true,
		"geocode_attempts": attempts,
	})
	if result.Error != nil {
		return fmt.Errorf("failed to mark station geocode failure: %w", result.Error)
	}
	return nil
}

func stationToModel(s *catalog.Station) *StationModel {
	return &StationModel{
		ID:              s.ID,
		Name:            s.Name,
		Address:         s.Address,
		City:            s.City,
		State:           s.State,
		RetailPrice:     s.RetailPrice,
		CanonicalKey:    s.CanonicalKey,
		Lat:             s.Lat,
		Lon:             s.Lon,
		GeocodeAttempts: s.GeocodeAttempts,
		GeocodeFailed:   s.GeocodeFailed,
		LastGeocodedAt:  s.LastGeocodedAt,
	}
}

func modelToStation(m *StationModel) *catalog.Station {
	return &catalog.Station{
		ID:              m.ID,
		Name:            m.Name,
		Address:         m.Address,
		City:            m.City,
		State:           m.State,
		RetailPrice:     m.RetailPrice,
		CanonicalKey:    m.CanonicalKey,
		Lat:             m.Lat,
		Lon:             m.Lon,
		GeocodeAttempts: m.GeocodeAttempts,
		GeocodeFailed:   m.GeocodeFailed,
		LastGeocodedAt:  m.LastGeocodedAt,
	}
}
