package persistence

import "time"

// StationModel is the GORM row for the station table.
type StationModel struct {
	ID           string `gorm:"primaryKey"`
	Name         string
	Address      string
	City         string
	State        string
	RetailPrice  float64
	CanonicalKey string `gorm:"uniqueIndex"`

	Lat *float64 `gorm:"index"`
	Lon *float64 `gorm:"index"`

	GeocodeAttempts int
	GeocodeFailed   bool
	LastGeocodedAt  *time.Time
}

func (StationModel) TableName() string { return "stations" }
