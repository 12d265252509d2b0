package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults from environment", func(t *testing.T) {
		t.Setenv("NEWSAPI_API_ID", "id")
		t.Setenv("NEWSAPI_API_SECRET", "c2VjcmV0")

		cfg, err := Load("")
		require.NoError(t, err)

		assert.Equal(t, "id", cfg.APIID)
		assert.Equal(t, "c2VjcmV0", cfg.APISecret)
		assert.Equal(t, "news-api.apple.com", cfg.Host)
		assert.Equal(t, 30*time.Second, cfg.Timeout)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "console", cfg.Log.Format)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("file with environment override", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "newsctl.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
api_id: file-id
api_secret: ZmlsZQ==
host: staging.example.com
port: 8443
timeout: 5s
log:
  level: debug
  format: json
`), 0o600))

		t.Setenv("NEWSAPI_API_ID", "env-id")

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "env-id", cfg.APIID)
		assert.Equal(t, "ZmlsZQ==", cfg.APISecret)
		assert.Equal(t, "staging.example.com", cfg.Host)
		assert.Equal(t, 8443, cfg.Port)
		assert.Equal(t, 5*time.Second, cfg.Timeout)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.Equal(t, "json", cfg.Log.Format)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})

	t.Run("invalid duration", func(t *testing.T) {
		t.Setenv("NEWSAPI_TIMEOUT", "soon")

		_, err := Load("")
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	valid := Config{APIID: "id", APISecret: "s", Log: LogConfig{Format: "json"}}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		target error
	}{
		{"missing id", func(c *Config) { c.APIID = "" }, ErrMissingAPIID},
		{"missing secret", func(c *Config) { c.APISecret = "" }, ErrMissingAPISecret},
		{"negative port", func(c *Config) { c.Port = -1 }, ErrInvalidPort},
		{"large port", func(c *Config) { c.Port = 65536 }, ErrInvalidPort},
		{"log format", func(c *Config) { c.Log.Format = "xml" }, ErrInvalidLogFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), tt.target)
		})
	}
}

func TestClient(t *testing.T) {
	cfg := Config{
		APIID:              "id",
		APISecret:          "s",
		Host:               "h",
		Port:               1,
		InsecureSkipVerify: true,
		Timeout:            time.Second,
	}

	got := cfg.Client()
	assert.Equal(t, "id", got.APIID)
	assert.Equal(t, "s", got.APISecret)
	assert.Equal(t, "h", got.Host)
	assert.Equal(t, 1, got.Port)
	assert.True(t, got.InsecureSkipVerify)
	assert.Equal(t, time.Second, got.Timeout)
}

func TestDescribe(t *testing.T) {
	text := Describe()
	assert.Contains(t, text, "NEWSAPI_API_ID")
	assert.Contains(t, text, "NEWSAPI_LOG_FORMAT")
}
