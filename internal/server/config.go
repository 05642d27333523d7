package server

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds server settings, populated from LUMINAD_* environment
// variables.
type Config struct {
	Addr      string        `envconfig:"ADDR" default:":8000"`
	DBPath    string        `envconfig:"DB" default:"lumina.db"`
	JWTSecret string        `envconfig:"JWT_SECRET" required:"true"`
	TokenTTL  time.Duration `envconfig:"TOKEN_TTL" default:"24h"`
}

// LoadConfig reads configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("luminad", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
