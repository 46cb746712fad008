package storage

import (
	"errors"
	"fmt"
)

// ErrClosed is returned by backends used after Close
var ErrClosed = errors.New("storage closed")

// KV is the narrow durable key-value capability the session store needs.
// Read reports ok=false when the key has never been written.
// Write must be durable before it returns.
type KV interface {
	Read(key string) (value string, ok bool, err error)
	Write(key, value string) error
}

// Store is a KV backend that owns resources
type Store interface {
	KV
	Close() error
}

// Backend names accepted by Open
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Options selects and configures a backend
type Options struct {
	Backend string

	// Dir holds one file per key for the file backend
	Dir string

	// DatabasePath is the sqlite database file
	DatabasePath string

	Redis RedisOptions
}

// Open returns the backend named by opts.Backend
func Open(opts Options) (Store, error) {
	switch opts.Backend {
	case "", BackendFile:
		return NewFileStore(opts.Dir)
	case BackendSQLite:
		return NewSQLiteStore(opts.DatabasePath)
	case BackendRedis:
		return NewRedisStore(opts.Redis), nil
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", opts.Backend)
	}
}
