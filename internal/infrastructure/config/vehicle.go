package config

// VehicleConfig holds the default vehicle parameters applied when a plan
// request omits an override.
type VehicleConfig struct {
	// MPG is the default fuel economy in miles per gallon.
	MPG float64 `mapstructure:"mpg" validate:"gt=0"`

	// TankCapacityGal is the default usable tank capacity in gallons.
	TankCapacityGal float64 `mapstructure:"tank_capacity_gal" validate:"gt=0"`

	// MaxRangeMiles is the default hard cap on single-tank range,
	// independent of tank size times MPG.
	MaxRangeMiles float64 `mapstructure:"max_range_miles" validate:"gt=0"`
}

// SelectionConfig holds defaults for the corridor station selector.
type SelectionConfig struct {
	// CorridorMiles is the default lateral corridor half-width.
	CorridorMiles float64 `mapstructure:"corridor_miles" validate:"gt=0"`

	// MaxCandidates caps the number of stations returned to the optimizer.
	MaxCandidates int `mapstructure:"max_candidates" validate:"min=1"`
}
