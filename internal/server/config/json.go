package config

import (
	"encoding/json"
	"os"

	"authstack/internal/flagx"
	"authstack/internal/timex"
)

// jsonConfig is the DTO for the optional JSON config file. Duration fields
// accept either strings like "24h" or integer nanoseconds. Only keys present
// in the file override the running config.
type jsonConfig struct {
	EndpointAddr            *string         `json:"endpoint_addr"`
	Environment             *string         `json:"environment"`
	DatabaseDSN             *string         `json:"database_dsn"`
	RedisURL                *string         `json:"redis_url"`
	SessionStore            *string         `json:"session_store"`
	SecretKey               *string         `json:"secret_key"`
	SessionValidityDuration *timex.Duration `json:"session_validity_duration"`
	SessionTransport        *string         `json:"session_transport"`
	CookieName              *string         `json:"cookie_name"`
	CookieSecure            *bool           `json:"cookie_secure"`
	CookieSameSite          *string         `json:"cookie_same_site"`
	CORSAllowedOrigins      *string         `json:"cors_allowed_origins"`
}

// parseJSON overlays values from the file named by -c/-config, if any.
// An unreadable or malformed file panics: a config file that was explicitly
// requested but cannot be honored should not be silently skipped.
func parseJSON(config *Config) {
	jsonConfigFile := flagx.JSONConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &jsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setIfPresent(&config.EndpointAddr, c.EndpointAddr)
	setIfPresent(&config.Environment, c.Environment)
	setIfPresent(&config.DatabaseDSN, c.DatabaseDSN)
	setIfPresent(&config.RedisURL, c.RedisURL)
	setIfPresent(&config.SessionStore, c.SessionStore)
	setIfPresent(&config.SecretKey, c.SecretKey)
	setIfPresent(&config.SessionTransport, c.SessionTransport)
	setIfPresent(&config.CookieName, c.CookieName)
	setIfPresent(&config.CookieSecure, c.CookieSecure)
	setIfPresent(&config.CookieSameSite, c.CookieSameSite)
	setIfPresent(&config.CORSAllowedOrigins, c.CORSAllowedOrigins)
	if c.SessionValidityDuration != nil {
		config.SessionValidityDuration = c.SessionValidityDuration.Duration
	}
}

func setIfPresent[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
