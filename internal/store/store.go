// Package store persists scout's state as flat JSON documents on disk.
//
// Every record is a whole-file overwrite with last-write-wins semantics:
// the data is advisory context for an agent, not a system of record, so
// there is no locking and no merging. Reads treat absent or unparseable
// files the same way, returning ErrNoData, so a corrupted file can
// never crash a hook.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNoData is returned by Load when the requested document is absent
// or cannot be parsed. Callers treat it as "no prior state".
var ErrNoData = errors.New("no data")

// Store reads and writes JSON documents inside a single directory.
type Store struct {
	dir string
}

// New creates a Store rooted at dir. The directory is created lazily on
// the first Save.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the store's directory path.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the full path of a named document.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// Exists reports whether a named document is present.
func (s *Store) Exists(name string) bool {
	_, err := os.Stat(s.Path(name))
	return err == nil
}

// Save marshals v and writes it to the named document, creating the
// store directory if needed. The write is temp-file-then-rename so a
// reader never observes a torn document from a completed Save.
func (s *Store) Save(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize %s: %w", name, err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create store directory: %w", err)
	}

	if err := atomicWrite(s.Path(name), data); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// Load reads the named document into v. Absent files and malformed JSON
// both return ErrNoData; only unexpected I/O failures surface as other
// errors.
func (s *Store) Load(name string, v any) error {
	data, err := os.ReadFile(s.Path(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrNoData
		}
		return fmt.Errorf("read %s: %w", name, err)
	}

	// Tolerate a UTF-8 BOM left behind by other tools.
	data = trimBOM(data)

	if err := json.Unmarshal(data, v); err != nil {
		return ErrNoData
	}
	return nil
}

// atomicWrite writes data to path using write-to-temp-then-rename.
// The temp file is created in the same directory as path.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmpFile, err := os.CreateTemp(dir, ".tmp-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("write data: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

func trimBOM(data []byte) []byte {
	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		return data[3:]
	}
	return data
}
