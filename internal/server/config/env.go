package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays values from the environment. A .env file in the working
// directory is loaded first (existing environment variables win, so .env is
// a development convenience, not an override).
func parseEnv(config *Config) {
	_ = godotenv.Load()

	overlayEnv(&config.EndpointAddr, "ENDPOINT_ADDR")
	overlayEnv(&config.Environment, "APP_ENV")
	overlayEnv(&config.DatabaseDSN, "DATABASE_DSN")
	overlayEnv(&config.RedisURL, "REDIS_URL")
	overlayEnv(&config.SessionStore, "SESSION_STORE")
	overlayEnv(&config.SecretKey, "SECRET_KEY")
	overlayEnv(&config.SessionTransport, "SESSION_TRANSPORT")
	overlayEnv(&config.CookieName, "SESSION_COOKIE_NAME")
	overlayEnv(&config.CookieSameSite, "SESSION_COOKIE_SAME_SITE")
	overlayEnv(&config.CORSAllowedOrigins, "CORS_ALLOWED_ORIGINS")

	if v := os.Getenv("SESSION_COOKIE_SECURE"); v != "" {
		config.CookieSecure = v == "true" || v == "1"
	}
	if v := os.Getenv("SESSION_VALIDITY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.SessionValidityDuration = d
		}
	}
}

func overlayEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
