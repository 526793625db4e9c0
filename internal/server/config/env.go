package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config fields from environment variables. A .env file in
// the working directory is loaded first if present; an absent file is not an
// error.
func parseEnv(config *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("WAYPOST_ADDRESS"); v != "" {
		config.EndpointAddrHTTP = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		config.DatabaseDSN = v
	}
	if v := os.Getenv("WAYPOST_RESOURCE_DIR"); v != "" {
		config.ResourceDir = v
	}
	if v := os.Getenv("WAYPOST_SHUTDOWN_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.ShutdownTimeout = d
		}
	}
}
