package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"eurlexscraper/pkg/config"
	"eurlexscraper/pkg/scraper"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test", RunE: func(*cobra.Command, []string) error { return nil }}
	cmd.Flags().Int("port", 0, "")
	cmd.Flags().String("query", "", "")
	cmd.Flags().Int("max-pages", 0, "")
	cmd.Flags().String("log-level", "info", "")
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func TestLoadConfigOnlyUsesChangedFlags(t *testing.T) {
	for _, key := range []string{"PORT", "EURLEX_PORT", "EURLEX_QUERY", "EURLEX_MAX_PAGES", "EURLEX_LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	path := filepath.Join(t.TempDir(), "eurlexscraper.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 4000\nsearch:\n  max_pages: 7\n"), 0644))

	old := configFile
	configFile = path
	t.Cleanup(func() { configFile = old })

	cfg, err := loadConfig(newTestCommand(t, "--query", "urea"))
	require.NoError(t, err)
	assert.Equal(t, 4000, cfg.Server.Port, "unset --port must not override the file")
	assert.Equal(t, 7, cfg.Search.MaxPages)
	assert.Equal(t, "urea", cfg.Search.Query)

	cfg, err = loadConfig(newTestCommand(t, "--port", "5000", "--max-pages", "0"))
	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, 0, cfg.Search.MaxPages, "an explicit zero disables the cap")
	assert.Equal(t, config.DefaultConfig().Search.Query, cfg.Search.Query)
}

func TestReportOutcome(t *testing.T) {
	cause := errors.New("network error: connection refused")

	err := reportOutcome(&scraper.Outcome{Status: scraper.StatusFailed, Err: cause})
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "Erreur lors de la récupération du site")

	assert.NoError(t, reportOutcome(&scraper.Outcome{Status: scraper.StatusNoResults}))
	assert.NoError(t, reportOutcome(&scraper.Outcome{Status: scraper.StatusSuccess, Truncated: true}))
}
