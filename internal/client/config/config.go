// Package config handles configuration for the client component. Sources
// are applied in order of increasing precedence: built-in defaults, an
// optional JSON file (-c/-config), environment variables, and command-line
// flags.
package config

import "time"

// Session transport modes, mirroring the server setting. In cookie mode the
// client relies on its cookie jar; in bearer mode it caches the token and
// sends it in the Authorization header.
const (
	TransportCookie = "cookie"
	TransportBearer = "bearer"
)

// Config holds runtime settings for the authstack CLI.
type Config struct {
	// ServerBaseURL is the base URL of the backend REST API.
	ServerBaseURL string

	// SessionTransport is TransportCookie or TransportBearer.
	SessionTransport string

	// DatabasePath is the local sqlite file holding cached client state
	// (the session token in bearer mode).
	DatabasePath string

	// RequestTimeout bounds every API call.
	RequestTimeout time.Duration
}

// LoadDefaults populates c with development defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8080"
	c.SessionTransport = TransportBearer
	c.DatabasePath = "authstack.db"
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present), the environment, and command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
