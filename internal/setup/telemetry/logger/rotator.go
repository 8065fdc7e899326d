package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// LineCappedFile is an io.Writer over a log file that keeps at most maxLines
// lines on disk. Lines are mirrored into a ring so the file can be rewritten
// with only the newest maxLines once twice that many have been written.
type LineCappedFile struct {
	file     *os.File
	path     string
	ring     []string
	next     int
	held     int
	written  int
	maxLines int
	mu       sync.Mutex
}

// OpenLineCapped opens path for appending and caps it at maxLines lines.
// A non-positive maxLines disables the cap.
func OpenLineCapped(path string, maxLines int) (*LineCappedFile, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file %s: %w", path, err)
	}

	w := &LineCappedFile{
		file:     file,
		path:     path,
		maxLines: maxLines,
	}
	if maxLines > 0 {
		w.ring = make([]string, maxLines)
	}

	return w, nil
}

// Write implements io.Writer.
func (w *LineCappedFile) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	n, err := w.file.Write(p)
	if err != nil || w.maxLines <= 0 {
		return n, err
	}

	for line := range strings.SplitSeq(strings.TrimRight(string(p), "\n"), "\n") {
		if line == "" {
			continue
		}

		w.ring[w.next] = line
		w.next = (w.next + 1) % w.maxLines
		w.held = min(w.held+1, w.maxLines)
		w.written++

		if w.written >= w.maxLines*2 {
			if err := w.truncate(); err != nil {
				return n, fmt.Errorf("failed to truncate log file: %w", err)
			}

			w.written = w.held
		}
	}

	return n, nil
}

// Sync flushes the underlying file.
func (w *LineCappedFile) Sync() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.file.Sync()
}

// Close closes the underlying file.
func (w *LineCappedFile) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.file.Close()
}

// lines returns the held lines oldest first.
func (w *LineCappedFile) lines() []string {
	out := make([]string, 0, w.held)
	start := (w.next - w.held + w.maxLines) % w.maxLines

	for i := range w.held {
		out = append(out, w.ring[(start+i)%w.maxLines])
	}

	return out
}

// truncate replaces the file contents with the held lines via a temp file rename.
func (w *LineCappedFile) truncate() error {
	temp, err := os.CreateTemp(filepath.Dir(w.path), "temp-log-")
	if err != nil {
		return err
	}

	tempPath := temp.Name()

	if _, err := temp.WriteString(strings.Join(w.lines(), "\n") + "\n"); err != nil {
		temp.Close()
		os.Remove(tempPath)

		return err
	}

	if err := temp.Close(); err != nil {
		os.Remove(tempPath)
		return err
	}

	w.file.Close()

	if err := os.Rename(tempPath, w.path); err != nil {
		return err
	}

	file, err := os.OpenFile(w.path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}

	w.file = file

	return nil
}

var _ io.WriteCloser = (*LineCappedFile)(nil)
