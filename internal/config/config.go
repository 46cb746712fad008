package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// FilePermissions is the default permission mode for regular files (read/write for owner, read for others)
	FilePermissions = 0644
	// DirPermissions is the default permission mode for directories (rwxr-xr-x)
	DirPermissions = 0755
)

var (
	// ConfigDir is the global configuration directory (~/.voidrunner)
	ConfigDir string

	// StateDir holds the file storage backend (one JSON file per key)
	StateDir string

	// DatabasePath is the SQLite database file for history and the sqlite storage backend
	DatabasePath string

	// ConfigFile is the settings file read by Load
	ConfigFile string

	// KeybindsFile is the default keybind override file
	KeybindsFile string

	// LogFile receives logs while the TUI owns the terminal
	LogFile string
)

// Initialize sets up the configuration directories.
// It creates ~/.voidrunner/ if it doesn't exist
func Initialize() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	return InitializeAt(filepath.Join(homeDir, ".voidrunner"))
}

// InitializeAt sets the global paths under dir and creates the directories
func InitializeAt(dir string) error {
	ConfigDir = dir
	StateDir = filepath.Join(ConfigDir, "state")
	DatabasePath = filepath.Join(ConfigDir, "voidrunner.db")
	ConfigFile = filepath.Join(ConfigDir, "config.yaml")
	KeybindsFile = filepath.Join(ConfigDir, "keybinds.json")
	LogFile = filepath.Join(ConfigDir, "voidrunner.log")

	for _, d := range []string{ConfigDir, StateDir} {
		if err := os.MkdirAll(d, DirPermissions); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", d, err)
		}
	}
	return nil
}

// ExpandPath expands a leading ~/ to the home directory.
// Relative paths are resolved against ConfigDir.
func ExpandPath(p string) (string, error) {
	if p == "" {
		return "", nil
	}

	if strings.HasPrefix(p, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(homeDir, p[2:]), nil
	}

	if filepath.IsAbs(p) || ConfigDir == "" {
		return p, nil
	}
	return filepath.Join(ConfigDir, p), nil
}
