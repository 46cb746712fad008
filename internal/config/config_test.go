package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studiowebux/voidrunner/internal/storage"
)

func setup(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), ".voidrunner")
	require.NoError(t, InitializeAt(dir))
	t.Setenv(EnvConfig, "")
	return dir
}

func TestInitializeAtCreatesDirectories(t *testing.T) {
	dir := setup(t)

	for _, d := range []string{ConfigDir, StateDir} {
		info, err := os.Stat(d)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
	assert.Equal(t, filepath.Join(dir, "config.yaml"), ConfigFile)
	assert.Equal(t, filepath.Join(dir, "voidrunner.db"), DatabasePath)
	assert.Equal(t, filepath.Join(dir, "voidrunner.log"), LogFile)
}

func TestLoadDefaults(t *testing.T) {
	dir := setup(t)

	s, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://voidrunner.vercel.app/api", s.Execution.Endpoint)
	assert.Zero(t, s.Execution.Timeout)
	assert.Equal(t, storage.BackendFile, s.Storage.Backend)
	assert.Equal(t, "editorState", s.Storage.Key)
	assert.Equal(t, "localhost:6379", s.Storage.Redis.Addr)
	assert.Equal(t, "voidrunner:", s.Storage.Redis.Prefix)
	assert.True(t, s.History.Enabled)
	assert.Equal(t, "info", s.Log.Level)
	assert.Equal(t, filepath.Join(dir, "keybinds.json"), s.Keybinds.File)
}

func TestLoadFile(t *testing.T) {
	dir := setup(t)
	content := `execution:
  endpoint: http://localhost:9000/run
  timeout: 30s
storage:
  backend: sqlite
history:
  enabled: false
log:
  level: debug
`
	require.NoError(t, os.WriteFile(ConfigFile, []byte(content), FilePermissions))

	s, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9000/run", s.Execution.Endpoint)
	assert.Equal(t, 30*time.Second, s.Execution.Timeout)
	assert.Equal(t, storage.BackendSQLite, s.Storage.Backend)
	assert.False(t, s.History.Enabled)
	assert.Equal(t, "debug", s.Log.Level)

	opts := s.StorageOptions()
	assert.Equal(t, storage.BackendSQLite, opts.Backend)
	assert.Equal(t, filepath.Join(dir, "voidrunner.db"), opts.DatabasePath)
	assert.Equal(t, filepath.Join(dir, "state"), opts.Dir)
}

func TestLoadEnvOverrides(t *testing.T) {
	setup(t)
	t.Setenv("VOIDRUNNER_EXECUTION_ENDPOINT", "http://env.example/api")
	t.Setenv("VOIDRUNNER_STORAGE_BACKEND", "redis")
	t.Setenv("VOIDRUNNER_STORAGE_REDIS_ADDR", "redis:6380")

	s, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://env.example/api", s.Execution.Endpoint)
	assert.Equal(t, storage.BackendRedis, s.Storage.Backend)
	assert.Equal(t, "redis:6380", s.Storage.Redis.Addr)
}

func TestLoadConfigEnvPath(t *testing.T) {
	setup(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  key: other\n"), FilePermissions))
	t.Setenv(EnvConfig, path)

	s, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "other", s.Storage.Key)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown backend", "storage:\n  backend: dynamo\n"},
		{"empty key", "storage:\n  key: \"\"\n"},
		{"negative timeout", "execution:\n  timeout: -1s\n"},
		{"malformed yaml", "execution: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setup(t)
			require.NoError(t, os.WriteFile(ConfigFile, []byte(tt.content), FilePermissions))

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestExpandPath(t *testing.T) {
	dir := setup(t)
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"~/keys.json", filepath.Join(home, "keys.json")},
		{"/etc/keys.json", "/etc/keys.json"},
		{"keys.json", filepath.Join(dir, "keys.json")},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ExpandPath(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
