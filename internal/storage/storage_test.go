package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runKVContract exercises the behaviour every backend must share
func runKVContract(t *testing.T, kv KV) {
	t.Helper()

	_, ok, err := kv.Read("editorState")
	require.NoError(t, err)
	assert.False(t, ok, "unwritten key should report ok=false")

	require.NoError(t, kv.Write("editorState", `{"language":"cpp","code":"","stdin":""}`))
	v, ok, err := kv.Read("editorState")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"language":"cpp","code":"","stdin":""}`, v)

	// Overwrite
	require.NoError(t, kv.Write("editorState", `{"language":"c","code":"x","stdin":"1"}`))
	v, _, err = kv.Read("editorState")
	require.NoError(t, err)
	assert.Equal(t, `{"language":"c","code":"x","stdin":"1"}`, v)

	// Empty value is a real value, distinct from absent
	require.NoError(t, kv.Write("other", ""))
	v, ok, err = kv.Read("other")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "", v)
}

func TestMemoryStore_Contract(t *testing.T) {
	runKVContract(t, NewMemoryStore())
}

func TestFileStore_Contract(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	runKVContract(t, fs)
}

func TestSQLiteStore_Contract(t *testing.T) {
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "voidrunner.db"))
	require.NoError(t, err)
	defer s.Close()
	runKVContract(t, s)
}

func TestRedisStore_Contract(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	defer mr.Close()

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	s := NewRedisStoreFromClient(client, "test:", 0)
	defer s.Close()

	runKVContract(t, s)
	assert.True(t, mr.Exists("test:editorState"), "keys should be prefixed")
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	first, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.Write("editorState", "payload"))

	second, err := NewFileStore(dir)
	require.NoError(t, err)
	v, ok, err := second.Read("editorState")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "payload", v)

	// No temp files left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileStore_RejectsInvalidKeys(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, fs.Write("../escape", "x"))
	_, _, err = fs.Read("a/b")
	assert.Error(t, err)
}

func TestSQLiteStore_WaitsForLocks(t *testing.T) {
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "voidrunner.db"))
	require.NoError(t, err)
	defer s.Close()

	var mode string
	require.NoError(t, s.db.QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)

	var timeout int
	require.NoError(t, s.db.QueryRow("PRAGMA busy_timeout").Scan(&timeout))
	assert.Equal(t, 5000, timeout)
}

func TestSQLiteStore_ConcurrentHandlesOnOneFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voidrunner.db")
	first, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer first.Close()
	second, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer second.Close()

	const writes = 50
	errs := make(chan error, 2*writes)
	var wg sync.WaitGroup
	for i := 0; i < writes; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			errs <- first.Write("editorState", fmt.Sprint(i))
		}(i)
		go func(i int) {
			defer wg.Done()
			errs <- second.Write("other", fmt.Sprint(i))
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	_, ok, err := first.Read("other")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSQLiteStore_Closed(t *testing.T) {
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "voidrunner.db"))
	require.NoError(t, err)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	assert.ErrorIs(t, s.Write("k", "v"), ErrClosed)
	_, _, err = s.Read("k")
	assert.ErrorIs(t, err, ErrClosed)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{name: "default is file", opts: Options{Dir: dir}},
		{name: "file", opts: Options{Backend: BackendFile, Dir: dir}},
		{name: "sqlite", opts: Options{Backend: BackendSQLite, DatabasePath: filepath.Join(dir, "x.db")}},
		{name: "memory", opts: Options{Backend: BackendMemory}},
		{name: "redis", opts: Options{Backend: BackendRedis, Redis: RedisOptions{Addr: "localhost:0"}}},
		{name: "unknown", opts: Options{Backend: "etcd"}, wantErr: true},
		{name: "file without dir", opts: Options{Backend: BackendFile}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Open(tt.opts)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NoError(t, s.Close())
		})
	}
}
