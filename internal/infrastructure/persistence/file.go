// internal/infrastructure/persistence/file.go
package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore keeps the session record in a JSON file. Default provider for
// kiosk installs without a Redis nearby.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed session store
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Save writes the record, creating parent directories as needed
func (f *FileStore) Save(ctx context.Context, rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("failed to create session directory: %w", err)
		}
	}

	// Write-then-rename so a crash never leaves a torn session file
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("failed to replace session file: %w", err)
	}
	return nil
}

// Load reads the record; a missing file means no stored session
func (f *FileStore) Load(ctx context.Context) (Record, bool, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, fmt.Errorf("failed to read session file: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		// A corrupt session file is treated as no session
		return Record{}, false, nil
	}
	if rec.Token == "" {
		return Record{}, false, nil
	}
	return rec, true, nil
}

// Clear removes the session file
func (f *FileStore) Clear(ctx context.Context) error {
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

// Close is a no-op for the file store
func (f *FileStore) Close() error {
	return nil
}
