package config

// OSRMConfig holds routing client configuration for the OSRM-compatible
// driving-route engine.
type OSRMConfig struct {
	// BaseURL is the OSRM service root, e.g. https://router.project-osrm.org
	BaseURL string `mapstructure:"base_url" validate:"required,url"`

	// TimeoutSeconds bounds a single HTTP call to the routing engine.
	TimeoutSeconds int `mapstructure:"timeout_seconds" validate:"min=1"`

	// RetryCount is the number of additional attempts after the first on
	// transient transport failure.
	RetryCount int `mapstructure:"retry_count" validate:"min=0"`
}
