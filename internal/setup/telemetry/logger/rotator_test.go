package logger_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tupperbox/tupperbox/internal/setup/telemetry/logger"
)

func readLines(t *testing.T, path string) []string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

func TestLineCappedFileKeepsNewestLines(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "main.log")
	w, err := logger.OpenLineCapped(path, 3)
	require.NoError(t, err)
	defer w.Close()

	for i := range 6 {
		_, err := fmt.Fprintf(w, "line %d\n", i)
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"line 3", "line 4", "line 5"}, readLines(t, path))

	_, err = w.Write([]byte("line 6\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"line 3", "line 4", "line 5", "line 6"}, readLines(t, path))
}

func TestLineCappedFileMultiLineWrite(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "main.log")
	w, err := logger.OpenLineCapped(path, 2)
	require.NoError(t, err)
	defer w.Close()

	_, err = w.Write([]byte("a\nb\nc\nd\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"c", "d"}, readLines(t, path))
}

func TestLineCappedFileUncapped(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "main.log")
	w, err := logger.OpenLineCapped(path, 0)
	require.NoError(t, err)
	defer w.Close()

	for i := range 10 {
		_, err := fmt.Fprintf(w, "line %d\n", i)
		require.NoError(t, err)
	}

	assert.Len(t, readLines(t, path), 10)
}
