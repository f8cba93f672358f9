package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the main configuration struct combining all sub-configs.
type Config struct {
	Database  DatabaseConfig  `mapstructure:"database"`
	OSRM      OSRMConfig      `mapstructure:"osrm"`
	Geocoding GeocodingConfig `mapstructure:"geocoding"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Vehicle   VehicleConfig   `mapstructure:"vehicle"`
	Selection SelectionConfig `mapstructure:"selection"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Solver    SolverConfig    `mapstructure:"solver"`
	Server    ServerConfig    `mapstructure:"server"`
}

// envBindings maps the exact environment variable names from the
// specification's configuration table onto the nested mapstructure paths
// above. Kept explicit (rather than relying on viper's automatic prefix
// replacement) since the spec's variable names are flat while the config
// struct is grouped by concern.
var envBindings = map[string]string{
	"osrm.base_url":             "OSRM_BASE_URL",
	"osrm.timeout_seconds":      "OSRM_TIMEOUT_SECONDS",
	"osrm.retry_count":          "OSRM_RETRY_COUNT",
	"geocoding.base_url":        "GEOCODING_BASE_URL",
	"geocoding.user_agent":      "GEOCODING_USER_AGENT",
	"geocoding.timeout_seconds": "GEOCODING_TIMEOUT_SECONDS",
	"geocoding.retry_count":     "GEOCODING_RETRY_COUNT",
	"cache.route_ttl_seconds":   "ROUTE_CACHE_TTL_SECONDS",
	"cache.geocode_ttl_seconds": "GEOCODE_CACHE_TTL_SECONDS",
	"vehicle.max_range_miles":   "MAX_RANGE_MILES",
	"vehicle.mpg":               "VEHICLE_MPG",
	"vehicle.tank_capacity_gal": "FUEL_TANK_GALLONS",
	"selection.corridor_miles":  "DEFAULT_CORRIDOR_MILES",
	"selection.max_candidates":  "MAX_CANDIDATE_STATIONS",
	"database.url":              "DATABASE_URL",
	"solver.address":            "SOLVER_ADDRESS",
	"server.host":               "SERVER_HOST",
	"server.port":               "SERVER_PORT",
}

// LoadConfig loads configuration from multiple sources with priority:
//  1. Environment variables (highest priority)
//  2. Config file (config.yaml)
//  3. Defaults (lowest priority)
func LoadConfig(configPath string) (*Config, error) {
	// Load .env file if it exists (doesn't error if missing)
	_ = godotenv.Load()

	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/fuelplanner")
	}

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind env var %s: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	SetDefaults(&cfg)

	if err := ValidateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// LoadConfigOrDefault loads configuration or returns a default config on error.
func LoadConfigOrDefault(configPath string) *Config {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		defaultCfg := &Config{}
		SetDefaults(defaultCfg)
		return defaultCfg
	}
	return cfg
}

// MustLoadConfig loads configuration and panics on error (for use in main.go).
func MustLoadConfig(configPath string) *Config {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}
	return cfg
}
