package config

// ServerConfig controls the HTTP listener for the plan API.
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
}
