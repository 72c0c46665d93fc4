package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable LoadFromEnv reads so the host
// environment cannot leak into a test
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "EURLEX_PORT", "EURLEX_STATIC_DIR", "EURLEX_QUERY",
		"EURLEX_DATE_FROM", "EURLEX_DATE_TO", "EURLEX_MAX_PAGES",
		"EURLEX_LOG_LEVEL", "EURLEX_LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, 3000, config.Server.Port)
	assert.Equal(t, "public", config.Server.StaticDir)
	assert.Equal(t, "antidumping AND phosphate", config.Search.Query)
	assert.Equal(t, "2025-01-01", config.Search.DateFrom)
	assert.Equal(t, "2025-12-31", config.Search.DateTo)
	assert.Equal(t, "https://eur-lex.europa.eu", config.Search.Origin)
	assert.Equal(t, DefaultMaxPages, config.Search.MaxPages)
	assert.NoError(t, config.Validate())
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("EURLEX_QUERY", "dumping AND steel")
	t.Setenv("EURLEX_DATE_FROM", "2024-01-01")
	t.Setenv("EURLEX_DATE_TO", "2024-06-30")
	t.Setenv("EURLEX_MAX_PAGES", "5")
	t.Setenv("EURLEX_LOG_LEVEL", "debug")

	config := DefaultConfig()
	require.NoError(t, config.LoadFromEnv())

	assert.Equal(t, 8080, config.Server.Port)
	assert.Equal(t, "dumping AND steel", config.Search.Query)
	assert.Equal(t, "2024-01-01", config.Search.DateFrom)
	assert.Equal(t, "2024-06-30", config.Search.DateTo)
	assert.Equal(t, 5, config.Search.MaxPages)
	assert.Equal(t, "debug", config.Logging.Level)
}

func TestLoadFromEnvPortPrecedence(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("EURLEX_PORT", "9090")

	config := DefaultConfig()
	require.NoError(t, config.LoadFromEnv())
	assert.Equal(t, 9090, config.Server.Port)
}

func TestLoadFromEnvInvalidPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "not-a-port")

	config := DefaultConfig()
	err := config.LoadFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PORT")
	assert.Equal(t, DefaultPort, config.Server.Port)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Config)
		wantError bool
	}{
		{
			name:      "valid config",
			modify:    func(c *Config) {},
			wantError: false,
		},
		{
			name:      "port out of range",
			modify:    func(c *Config) { c.Server.Port = 70000 },
			wantError: true,
		},
		{
			name:      "empty query",
			modify:    func(c *Config) { c.Search.Query = "   " },
			wantError: true,
		},
		{
			name:      "bad date",
			modify:    func(c *Config) { c.Search.DateFrom = "01/01/2025" },
			wantError: true,
		},
		{
			name:      "negative max pages",
			modify:    func(c *Config) { c.Search.MaxPages = -1 },
			wantError: true,
		},
		{
			name:      "unbounded pages allowed",
			modify:    func(c *Config) { c.Search.MaxPages = 0 },
			wantError: false,
		},
		{
			name:      "invalid log level",
			modify:    func(c *Config) { c.Logging.Level = "verbose" },
			wantError: true,
		},
		{
			name:      "invalid log format",
			modify:    func(c *Config) { c.Logging.Format = "xml" },
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.modify(config)
			err := config.Validate()
			if tt.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	configContent := `server:
  port: 4000
  static_dir: ./web
  shutdown_timeout: 5s
search:
  query: "countervailing AND aluminium"
  max_pages: 12
  timeout: 15s
logging:
  level: warn
  format: json
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	config := DefaultConfig()
	require.NoError(t, config.LoadFromFile(configPath))

	assert.Equal(t, 4000, config.Server.Port)
	assert.Equal(t, "./web", config.Server.StaticDir)
	assert.Equal(t, 5*time.Second, config.Server.ShutdownTimeout)
	assert.Equal(t, "countervailing AND aluminium", config.Search.Query)
	assert.Equal(t, 12, config.Search.MaxPages)
	assert.Equal(t, 15*time.Second, config.Search.Timeout)
	assert.Equal(t, "warn", config.Logging.Level)
	assert.Equal(t, "json", config.Logging.Format)

	// Untouched keys keep their defaults
	assert.Equal(t, "2025-01-01", config.Search.DateFrom)
}

func TestLoadFromFileMissing(t *testing.T) {
	config := DefaultConfig()
	err := config.LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "eurlexscraper.yaml")

	original := DefaultConfig()
	original.Search.Query = "safeguard"
	original.Server.Port = 3100
	require.NoError(t, original.Save(path))

	loaded := DefaultConfig()
	require.NoError(t, loaded.LoadFromFile(path))
	assert.Equal(t, original, loaded)
}

func TestLoadPrecedence(t *testing.T) {
	clearEnv(t)
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("server:\n  port: 4000\nsearch:\n  query: from-file\n"), 0644))

	t.Setenv("EURLEX_PORT", "5000")

	flags := map[string]interface{}{
		"query": "from-flag",
	}

	config, err := Load(configPath, flags)
	require.NoError(t, err)

	assert.Equal(t, 5000, config.Server.Port, "env overrides file")
	assert.Equal(t, "from-flag", config.Search.Query, "flag overrides file")
}

func TestLoadRejectsInvalid(t *testing.T) {
	clearEnv(t)
	_, err := Load("", map[string]interface{}{"from": "yesterday"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration validation failed")
}
