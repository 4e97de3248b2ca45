package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromFile_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
api:
  base_url: http://localhost:3000/api/
session:
  backend: memory
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:3000/api", cfg.API.BaseURL)
	assert.Equal(t, 10000, cfg.API.Timeout)
	assert.Equal(t, SessionBackendMemory, cfg.Session.Backend)
	assert.Equal(t, "storefront:session:", cfg.Session.KeyPrefix)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "pizza-storefront", cfg.App.Name)
	assert.NotEmpty(t, cfg.Session.Path)
}

func TestLoadFromFile_EnvOverrides(t *testing.T) {
	t.Setenv("STOREFRONT_API_BASE_URL", "https://pizza.example.com/api")
	t.Setenv("STOREFRONT_LOGGING_LEVEL", "debug")

	path := writeConfig(t, `
api:
  base_url: http://localhost:3000/api
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "https://pizza.example.com/api", cfg.API.BaseURL)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadFromFile_ExpandsPlaceholders(t *testing.T) {
	t.Setenv("PIZZA_SERVICE_URL", "http://pizza.internal:3000/api")

	path := writeConfig(t, `
api:
  base_url: ${PIZZA_SERVICE_URL}
session:
  backend: memory
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "http://pizza.internal:3000/api", cfg.API.BaseURL)
}

func TestLoadFromFile_Validation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name:    "missing base url",
			body:    "session:\n  backend: memory\n",
			wantErr: "api.base_url is required",
		},
		{
			name:    "relative base url",
			body:    "api:\n  base_url: /api\n",
			wantErr: "must be an absolute URL",
		},
		{
			name:    "unknown backend",
			body:    "api:\n  base_url: http://localhost:3000\nsession:\n  backend: cookie\n",
			wantErr: "not supported",
		},
		{
			name:    "redis without address",
			body:    "api:\n  base_url: http://localhost:3000\nsession:\n  backend: redis\n",
			wantErr: "session.redis.address is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestGetDuration(t *testing.T) {
	assert.Equal(t, 1500*time.Millisecond, GetDuration(1500))
	assert.Equal(t, time.Duration(0), GetDuration(0))
}
