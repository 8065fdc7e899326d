package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("PGHOST", "db.internal")
	t.Setenv("PGDATABASE", "tupperbox")
	t.Setenv("PGUSER", "tupper")
	t.Setenv("PGPASSWORD", "hunter2")
	t.Setenv("REDISURL", "redis://localhost:6379/0")
	t.Setenv("PGPORT", "")
	t.Setenv("PGSSLMODE", "")
	t.Setenv("LOG_LEVEL", "")
}

func TestLoadFromEnvironment(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PGPORT", "6543")
	t.Setenv("PGSSLMODE", "disable")

	cfg, path, err := load([]string{t.TempDir()})
	require.NoError(t, err)
	assert.Empty(t, path)

	assert.Equal(t, "db.internal", cfg.PostgreSQL.Host)
	assert.Equal(t, 6543, cfg.PostgreSQL.Port)
	assert.Equal(t, "tupperbox", cfg.PostgreSQL.DBName)
	assert.Equal(t, "tupper", cfg.PostgreSQL.User)
	assert.Equal(t, "hunter2", cfg.PostgreSQL.Password)
	assert.Equal(t, SSLModeDisable, cfg.PostgreSQL.SSLMode)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)
}

func TestLoadKeepsDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, _, err := load([]string{t.TempDir()})
	require.NoError(t, err)

	def := Default()
	assert.Equal(t, def.PostgreSQL.Port, cfg.PostgreSQL.Port)
	assert.Equal(t, SSLModeRequire, cfg.PostgreSQL.SSLMode)
	assert.Equal(t, def.PostgreSQL.MaxOpenConns, cfg.PostgreSQL.MaxOpenConns)
	assert.Equal(t, def.Import.Files, cfg.Import.Files)
	assert.Equal(t, "info", cfg.Debug.LogLevel)
}

func TestLoadFileThenEnvOverride(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PGHOST", "override.internal")

	dir := t.TempDir()
	content := `version = 1

[postgresql]
host = "file.internal"
max_open_conns = 42

[debug]
log_level = "debug"

[import]
files = ["legacy/members.json"]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o600))

	cfg, path, err := load([]string{filepath.Join(dir, "missing"), dir})
	require.NoError(t, err)
	assert.Equal(t, dir, path)

	assert.Equal(t, "override.internal", cfg.PostgreSQL.Host)
	assert.Equal(t, 42, cfg.PostgreSQL.MaxOpenConns)
	assert.Equal(t, "debug", cfg.Debug.LogLevel)
	assert.Equal(t, []string{"legacy/members.json"}, cfg.Import.Files)
}

func TestLoadVersionMismatch(t *testing.T) {
	setRequiredEnv(t)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("version = 7\n"), 0o600))

	_, _, err := load([]string{dir})
	require.ErrorIs(t, err, ErrConfigVersionMismatch)
}

func TestLoadMissingRequired(t *testing.T) {
	t.Setenv("PGHOST", "")
	t.Setenv("PGDATABASE", "tupperbox")
	t.Setenv("PGUSER", "")
	t.Setenv("REDISURL", "")

	_, _, err := load([]string{t.TempDir()})
	require.ErrorIs(t, err, ErrConfigMissing)
	assert.Contains(t, err.Error(), "PGHOST")
	assert.Contains(t, err.Error(), "PGUSER")
	assert.Contains(t, err.Error(), "REDISURL")
	assert.NotContains(t, err.Error(), "PGDATABASE")
}

func TestLoadInvalidSSLMode(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PGSSLMODE", "sometimes")

	_, _, err := load([]string{t.TempDir()})
	require.ErrorIs(t, err, ErrInvalidSSLMode)
}
