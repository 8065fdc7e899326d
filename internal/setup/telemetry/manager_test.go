package telemetry_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tupperbox/tupperbox/internal/setup/config"
	"github.com/tupperbox/tupperbox/internal/setup/telemetry"
)

func TestGetLoggersCreatesSessionFiles(t *testing.T) {
	t.Parallel()

	logDir := t.TempDir()
	manager := telemetry.NewManager("bot", logDir, &config.Debug{
		LogLevel:      "info",
		MaxLogsToKeep: 5,
		MaxLogLines:   100,
	}, false)
	defer manager.Stop()

	mainLogger, dbLogger, err := manager.GetLoggers()
	require.NoError(t, err)

	mainLogger.Info("main entry")
	dbLogger.Warn("db entry")
	require.NoError(t, mainLogger.Sync())
	require.NoError(t, dbLogger.Sync())

	sessionDir := manager.GetCurrentSessionDir()
	assert.Equal(t, logDir, filepath.Dir(sessionDir))

	mainData, err := os.ReadFile(filepath.Join(sessionDir, "main.log"))
	require.NoError(t, err)
	assert.Contains(t, string(mainData), "main entry")
	assert.Contains(t, string(mainData), manager.GetInstanceID())

	dbData, err := os.ReadFile(filepath.Join(sessionDir, "database.log"))
	require.NoError(t, err)
	assert.Contains(t, string(dbData), "db entry")
}

func TestGetLoggersRotatesOldSessions(t *testing.T) {
	t.Parallel()

	logDir := t.TempDir()
	base := time.Now().Add(-time.Hour)

	for i, name := range []string{"old-a", "old-b", "old-c"} {
		dir := filepath.Join(logDir, name)
		require.NoError(t, os.Mkdir(dir, 0o755))

		stamp := base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, os.Chtimes(dir, stamp, stamp))
	}

	manager := telemetry.NewManager("db", logDir, &config.Debug{
		LogLevel:      "debug",
		MaxLogsToKeep: 2,
		MaxLogLines:   100,
	}, false)
	defer manager.Stop()

	_, _, err := manager.GetLoggers()
	require.NoError(t, err)

	entries, err := os.ReadDir(logDir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	names := []string{entries[0].Name(), entries[1].Name()}
	assert.Contains(t, names, "old-c")
	assert.Contains(t, names, filepath.Base(manager.GetCurrentSessionDir()))
}

func TestGetLoggersInvalidLevel(t *testing.T) {
	t.Parallel()

	manager := telemetry.NewManager("bot", t.TempDir(), &config.Debug{
		LogLevel:      "loud",
		MaxLogsToKeep: 1,
	}, false)
	defer manager.Stop()

	_, _, err := manager.GetLoggers()
	require.Error(t, err)
}
