package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:8080", cfg.ServerBaseURL)
	assert.Equal(t, TransportBearer, cfg.SessionTransport)
	assert.Equal(t, "authstack.db", cfg.DatabasePath)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
}

func TestLoadConfig_EnvOverridesDefaults(t *testing.T) {
	origArgs := os.Args
	os.Args = []string{"client"}
	defer func() { os.Args = origArgs }()

	t.Setenv("AUTHSTACK_SERVER_URL", "https://auth.example.com")
	t.Setenv("AUTHSTACK_SESSION_TRANSPORT", TransportCookie)
	t.Setenv("AUTHSTACK_REQUEST_TIMEOUT", "30s")

	cfg := LoadConfig()

	assert.Equal(t, "https://auth.example.com", cfg.ServerBaseURL)
	assert.Equal(t, TransportCookie, cfg.SessionTransport)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
}

func TestLoadConfig_FlagsOverrideEnv(t *testing.T) {
	origArgs := os.Args
	os.Args = []string{"client", "-a", "http://flag-host:9090", "-t", "5"}
	defer func() { os.Args = origArgs }()

	t.Setenv("AUTHSTACK_SERVER_URL", "http://env-host:8080")

	cfg := LoadConfig()

	assert.Equal(t, "http://flag-host:9090", cfg.ServerBaseURL)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
}

func TestLoadConfig_JSONFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.json")
	data, err := json.Marshal(map[string]any{
		"server_base_url":   "http://json-host:8081",
		"session_transport": TransportCookie,
		"database_path":     "/tmp/client.db",
		"request_timeout":   "15s",
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(file, data, 0o600))

	origArgs := os.Args
	os.Args = []string{"client", "-config", file}
	defer func() { os.Args = origArgs }()

	cfg := LoadConfig()

	assert.Equal(t, "http://json-host:8081", cfg.ServerBaseURL)
	assert.Equal(t, TransportCookie, cfg.SessionTransport)
	assert.Equal(t, "/tmp/client.db", cfg.DatabasePath)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
}
