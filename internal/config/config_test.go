package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("DAILYXP_DB", "")
	t.Setenv("DAILYXP_DEBUG", "")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.DBPath)
	assert.False(t, cfg.Debug)
}

func TestLoadFromFile(t *testing.T) {
	t.Setenv("DAILYXP_DB", "")
	t.Setenv("DAILYXP_DEBUG", "")

	path := filepath.Join(t.TempDir(), "dailyxp.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db_path: /tmp/custom.db\ndebug: true\n"), 0o600))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.db", cfg.DBPath)
	assert.True(t, cfg.Debug)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dailyxp.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db_path: /tmp/from-file.db\n"), 0o600))

	t.Setenv("DAILYXP_DB", "/tmp/from-env.db")
	t.Setenv("DAILYXP_DEBUG", "1")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/from-env.db", cfg.DBPath)
	assert.True(t, cfg.Debug)
}

func TestInvalidDebugValueIgnored(t *testing.T) {
	t.Setenv("DAILYXP_DB", "")
	t.Setenv("DAILYXP_DEBUG", "maybe")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.False(t, cfg.Debug)
}

func TestMalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dailyxp.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db_path: [\n"), 0o600))

	_, err := LoadFrom(path)
	require.Error(t, err)
}
