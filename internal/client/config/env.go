package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays values from the environment. A .env file in the working
// directory is loaded first (existing environment variables win).
func parseEnv(config *Config) {
	_ = godotenv.Load()

	overlayEnv(&config.ServerBaseURL, "AUTHSTACK_SERVER_URL")
	overlayEnv(&config.SessionTransport, "AUTHSTACK_SESSION_TRANSPORT")
	overlayEnv(&config.DatabasePath, "AUTHSTACK_DB_PATH")

	if v := os.Getenv("AUTHSTACK_REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.RequestTimeout = d
		}
	}
}

func overlayEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
