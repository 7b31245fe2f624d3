package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNewConfig_LoadsYAMLAndDefaults(t *testing.T) {
	path := writeConfigFile(t, `
server:
  admin_email: admin@company.com
  session_secret: s3cret
store:
  data_dir: /tmp/portal-test
`)
	t.Setenv("PORTAL_CONFIG_FILE", path)

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "admin@company.com", cfg.Server.AdminEmail)
	assert.Equal(t, "/tmp/portal-test", cfg.Store.DataDir)

	// Defaults fill in what the file omits.
	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, DefaultMaxOpenConns, cfg.Remote.MaxOpenConns)
	assert.Equal(t, DefaultMaxIdleConns, cfg.Remote.MaxIdleConns)
	assert.Equal(t, DatabaseConnMaxLifetime, cfg.Remote.ConnMaxLifetime)
	assert.Equal(t, DefaultChatBaseURL, cfg.Chat.BaseURL)
	assert.Equal(t, DefaultChatModel, cfg.Chat.Model)
}

func TestNewConfig_EnvironmentOverrides(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: "9999"
`)
	t.Setenv("PORTAL_CONFIG_FILE", path)
	t.Setenv("SERVER_PORT", "8088")
	t.Setenv("SERVER_DEBUG", "true")
	t.Setenv("SERVER_CORS_ORIGINS", "http://a.example,http://b.example")
	t.Setenv("REMOTE_CONN_MAX_LIFETIME", "2m")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "8088", cfg.Server.Port, "environment beats the file")
	assert.True(t, cfg.Server.Debug)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 2*time.Minute, cfg.Remote.ConnMaxLifetime)
}

func TestRemoteConfigured(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		serviceKey string
		want       bool
	}{
		{"both set", "postgres://db.example/portal", "key", true},
		{"url only", "postgres://db.example/portal", "", false},
		{"key only", "", "key", false},
		{"whitespace url", "   ", "key", false},
		{"neither", "", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &Config{}
			cfg.Remote.URL = tc.url
			cfg.Remote.ServiceKey = tc.serviceKey
			assert.Equal(t, tc.want, cfg.RemoteConfigured())
		})
	}
}

func TestChatConfigured(t *testing.T) {
	cfg := &Config{}
	assert.False(t, cfg.ChatConfigured())

	cfg.Chat.Enabled = true
	assert.False(t, cfg.ChatConfigured(), "enabled without an API key is not configured")

	cfg.Chat.APIKey = "sk-test"
	assert.True(t, cfg.ChatConfigured())

	cfg.Chat.Enabled = false
	assert.False(t, cfg.ChatConfigured())
}

func TestNewConfig_MissingFile(t *testing.T) {
	t.Setenv("PORTAL_CONFIG_FILE", filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := NewConfig()
	assert.Error(t, err)
}
