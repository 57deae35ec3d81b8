package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// rotatingFile is an append-only file that moves itself aside once it grows
// past maxSize. Backups are named base.1.ext (newest) to base.N.ext.
// Callers serialize writes.
type rotatingFile struct {
	path       string
	maxSize    int64
	maxBackups int
	f          *os.File
	size       int64
}

func openRotatingFile(path string, maxSize int64, maxBackups int) (*rotatingFile, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("unable to create log directory: %w", err)
	}
	r := &rotatingFile{path: path, maxSize: maxSize, maxBackups: maxBackups}
	if err := r.open(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *rotatingFile) open() error {
	f, err := os.OpenFile(r.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("unable to open log file: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return fmt.Errorf("unable to stat log file: %w", err)
	}
	r.f = f
	r.size = info.Size()
	return nil
}

func (r *rotatingFile) Write(p []byte) (int, error) {
	if r.f == nil {
		return 0, os.ErrClosed
	}
	if r.size > 0 && r.size+int64(len(p)) > r.maxSize {
		if err := r.rotate(); err != nil {
			fmt.Fprintf(os.Stderr, "log rotation error: %v\n", err)
		}
	}
	n, err := r.f.Write(p)
	r.size += int64(n)
	return n, err
}

func (r *rotatingFile) rotate() error {
	if err := r.f.Close(); err != nil {
		return err
	}
	r.f = nil

	// Drop the oldest, then shift every backup up by one.
	os.Remove(r.backupName(r.maxBackups))
	for i := r.maxBackups - 1; i >= 1; i-- {
		from := r.backupName(i)
		if _, err := os.Stat(from); err != nil {
			continue
		}
		if err := os.Rename(from, r.backupName(i+1)); err != nil {
			return fmt.Errorf("failed to rotate %s: %w", from, err)
		}
	}
	if err := os.Rename(r.path, r.backupName(1)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to rotate current log: %w", err)
	}

	return r.open()
}

func (r *rotatingFile) backupName(n int) string {
	ext := filepath.Ext(r.path)
	return fmt.Sprintf("%s.%d%s", strings.TrimSuffix(r.path, ext), n, ext)
}

func (r *rotatingFile) Close() error {
	if r.f == nil {
		return nil
	}
	err := r.f.Close()
	r.f = nil
	return err
}
