package config

import "github.com/kelseyhightower/envconfig"

// Config holds application configuration loaded from environment variables.
type Config struct {
	Port                int    `envconfig:"PORT" default:"8080"`
	LogLevel            string `envconfig:"LOG_LEVEL" default:"info"`
	DatabaseURL         string `envconfig:"DATABASE_URL" required:"true"`
	OwnerExternalID     string `envconfig:"OWNER_EXTERNAL_ID" required:"true"`
	TransportSecretHash string `envconfig:"TRANSPORT_SECRET_HASH" default:""`
	TransportURL        string `envconfig:"TRANSPORT_URL" default:""`
	Version             string `envconfig:"VERSION" default:"dev"`
}

// Load reads configuration from environment variables into a Config struct.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
