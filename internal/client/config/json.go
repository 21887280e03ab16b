package config

import (
	"encoding/json"
	"os"

	"authstack/internal/flagx"
	"authstack/internal/timex"
)

// jsonConfig is the DTO for the optional JSON config file. The timeout
// accepts either a string like "10s" or integer nanoseconds. Only keys
// present in the file override the running config.
type jsonConfig struct {
	ServerBaseURL    *string         `json:"server_base_url"`
	SessionTransport *string         `json:"session_transport"`
	DatabasePath     *string         `json:"database_path"`
	RequestTimeout   *timex.Duration `json:"request_timeout"`
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

	setIfPresent(&config.ServerBaseURL, c.ServerBaseURL)
	setIfPresent(&config.SessionTransport, c.SessionTransport)
	setIfPresent(&config.DatabasePath, c.DatabasePath)
	if c.RequestTimeout != nil {
		config.RequestTimeout = c.RequestTimeout.Duration
	}
}

func setIfPresent[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
