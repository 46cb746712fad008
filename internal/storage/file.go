package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

const (
	filePermissions = 0644
	dirPermissions  = 0755
)

var validKey = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// FileStore keeps each key in its own JSON file inside a directory
type FileStore struct {
	dir string
}

// NewFileStore creates the directory if needed
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, errors.New("file store needs a directory")
	}
	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

// Path returns the file backing key
func (f *FileStore) Path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

// Read returns the file contents for key
func (f *FileStore) Read(key string) (string, bool, error) {
	if !validKey.MatchString(key) {
		return "", false, fmt.Errorf("invalid storage key: %q", key)
	}

	data, err := os.ReadFile(f.Path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return string(data), true, nil
}

// Write replaces the file for key. The value goes to a temp file first and
// is renamed into place so a crash never leaves a half-written session.
func (f *FileStore) Write(key, value string) error {
	if !validKey.MatchString(key) {
		return fmt.Errorf("invalid storage key: %q", key)
	}

	tmp, err := os.CreateTemp(f.dir, "."+key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", key, err)
	}
	if err := os.Chmod(tmpName, filePermissions); err != nil {
		return fmt.Errorf("failed to chmod %s: %w", key, err)
	}
	if err := os.Rename(tmpName, f.Path(key)); err != nil {
		return fmt.Errorf("failed to replace %s: %w", key, err)
	}
	return nil
}

// Close is a no-op
func (f *FileStore) Close() error { return nil }
