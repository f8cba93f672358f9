package config

// SetDefaults sets default values for all configuration fields, matching
// spec.md's §4.H and §6 defaults.
func SetDefaults(cfg *Config) {
	// Database defaults
	if cfg.Database.Type == "" {
		cfg.Database.Type = "postgres"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "fuelplanner"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "fuelplanner"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 25
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 5
	}

	// OSRM defaults
	if cfg.OSRM.BaseURL == "" {
		cfg.OSRM.BaseURL = "https://router.project-osrm.org"
	}
	if cfg.OSRM.TimeoutSeconds == 0 {
		cfg.OSRM.TimeoutSeconds = 12
	}
	if cfg.OSRM.RetryCount == 0 {
		cfg.OSRM.RetryCount = 2
	}

	// Geocoding defaults
	if cfg.Geocoding.BaseURL == "" {
		cfg.Geocoding.BaseURL = "https://nominatim.openstreetmap.org"
	}
	if cfg.Geocoding.UserAgent == "" {
		cfg.Geocoding.UserAgent = "fuelplanner/1.0 (route-planning service)"
	}
	if cfg.Geocoding.TimeoutSeconds == 0 {
		cfg.Geocoding.TimeoutSeconds = 12
	}
	if cfg.Geocoding.RetryCount == 0 {
		cfg.Geocoding.RetryCount = 2
	}

	// Cache defaults
	if cfg.Cache.GeocodeTTLSeconds == 0 {
		cfg.Cache.GeocodeTTLSeconds = 86400
	}
	if cfg.Cache.RouteTTLSeconds == 0 {
		cfg.Cache.RouteTTLSeconds = 600
	}
	if cfg.Cache.MaxEntries == 0 {
		cfg.Cache.MaxEntries = 10000
	}

	// Vehicle defaults
	if cfg.Vehicle.MPG == 0 {
		cfg.Vehicle.MPG = 10
	}
	if cfg.Vehicle.TankCapacityGal == 0 {
		cfg.Vehicle.TankCapacityGal = 50
	}
	if cfg.Vehicle.MaxRangeMiles == 0 {
		cfg.Vehicle.MaxRangeMiles = 500
	}

	// Selection defaults
	if cfg.Selection.CorridorMiles == 0 {
		cfg.Selection.CorridorMiles = 8
	}
	if cfg.Selection.MaxCandidates == 0 {
		cfg.Selection.MaxCandidates = 600
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}

	// Solver defaults; Address left empty unless explicitly configured.
	if cfg.Solver.DialTimeoutSeconds == 0 {
		cfg.Solver.DialTimeoutSeconds = 5
	}

	// Server defaults
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
}
