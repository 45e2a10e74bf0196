// Package writer encodes records and groups back into the content-file
// wire format and commits the result to a sink.
package writer

import (
	"fmt"
	"os"
	"path/filepath"
)

// Sink receives a finished content file.
type Sink interface {
	Commit(buf []byte) error
}

// FileSink writes content files to a filesystem path atomically.
type FileSink struct {
	Path string
}

// Commit writes buf to the configured path via temp file + rename, so a
// reader never sees a half-written plugin.
func (s *FileSink) Commit(buf []byte) error {
	dir := filepath.Dir(s.Path)
	tmpFile, err := os.CreateTemp(dir, ".esmkit-tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	defer func() {
		if tmpFile != nil {
			_ = tmpFile.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(buf); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	tmpFile = nil

	if err := os.Rename(tmpPath, s.Path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// MemSink keeps the committed content file in memory.
type MemSink struct {
	Buf []byte
}

// Commit stores a copy of buf.
func (s *MemSink) Commit(buf []byte) error {
	s.Buf = append(s.Buf[:0], buf...)
	return nil
}
