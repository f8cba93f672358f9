package config

// GeocodingConfig holds client configuration for the Nominatim-compatible
// geocoding service.
type GeocodingConfig struct {
	// BaseURL is the geocoding service root, e.g. https://nominatim.openstreetmap.org
	BaseURL string `mapstructure:"base_url" validate:"required,url"`

	// UserAgent is sent on every request; Nominatim's usage policy requires
	// a stable, identifying value.
	UserAgent string `mapstructure:"user_agent" validate:"required"`

	// TimeoutSeconds bounds a single HTTP call to the geocoder.
	TimeoutSeconds int `mapstructure:"timeout_seconds" validate:"min=1"`

	// RetryCount is the number of additional attempts after the first on
	// transient transport failure.
	RetryCount int `mapstructure:"retry_count" validate:"min=0"`
}
