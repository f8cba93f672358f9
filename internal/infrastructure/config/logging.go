package config

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level: debug, info, warn, error
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
}
