package database

import (
	"errors"
	"io/fs"
	"os"

	"github.com/sourcegraph/conc/iter"
	"go.uber.org/zap"
)

// ImportFileStatus describes one legacy import file checked at startup.
type ImportFileStatus struct {
	Path  string
	Found bool
	Err   error
}

// CheckImportFiles reports which legacy import files exist.
// Nothing is read or migrated; missing or unreadable files are only logged.
func CheckImportFiles(paths []string, logger *zap.Logger) []ImportFileStatus {
	logger.Info("Checking for import files...")

	statuses := iter.Map(paths, func(path *string) ImportFileStatus {
		_, err := os.Stat(*path)

		switch {
		case err == nil:
			return ImportFileStatus{Path: *path, Found: true}
		case errors.Is(err, fs.ErrNotExist):
			return ImportFileStatus{Path: *path}
		default:
			return ImportFileStatus{Path: *path, Err: err}
		}
	})

	for _, s := range statuses {
		switch {
		case s.Err != nil:
			logger.Error("Error checking import file", zap.String("path", s.Path), zap.Error(s.Err))
		case s.Found:
			logger.Info("File found", zap.String("path", s.Path))
		default:
			logger.Info("File not found", zap.String("path", s.Path))
		}
	}

	return statuses
}
