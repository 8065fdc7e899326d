package database_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tupperbox/tupperbox/internal/database"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestCheckImportFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	present := filepath.Join(dir, "tulpae.json")
	require.NoError(t, os.WriteFile(present, []byte("[]"), 0o600))
	missing := filepath.Join(dir, "webhooks.json")

	core, logs := observer.New(zapcore.InfoLevel)
	statuses := database.CheckImportFiles([]string{present, missing}, zap.New(core))

	require.Len(t, statuses, 2)
	assert.Equal(t, database.ImportFileStatus{Path: present, Found: true}, statuses[0])
	assert.Equal(t, database.ImportFileStatus{Path: missing}, statuses[1])

	assert.Equal(t, 1, logs.FilterMessage("File found").Len())
	assert.Equal(t, 1, logs.FilterMessage("File not found").Len())
	assert.Zero(t, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
}

func TestCheckImportFilesEmpty(t *testing.T) {
	t.Parallel()

	statuses := database.CheckImportFiles(nil, zap.NewNop())
	assert.Empty(t, statuses)
}
