package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"
)

// RedisOptions configures the redis backend
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
	Timeout  time.Duration
}

// RedisStore keeps keys in redis under a prefix, with no expiration
type RedisStore struct {
	client  *backend.Client
	prefix  string
	timeout time.Duration
}

// NewRedisStore creates a client for opts. It does not dial until used.
func NewRedisStore(opts RedisOptions) *RedisStore {
	client := backend.NewClient(&backend.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	return NewRedisStoreFromClient(client, opts.Prefix, opts.Timeout)
}

// NewRedisStoreFromClient wraps an existing client
func NewRedisStoreFromClient(client *backend.Client, prefix string, timeout time.Duration) *RedisStore {
	if prefix == "" {
		prefix = "voidrunner:"
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &RedisStore{client: client, prefix: prefix, timeout: timeout}
}

func (r *RedisStore) key(k string) string {
	return r.prefix + k
}

// Read returns the value stored under key
func (r *RedisStore) Read(key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	val, err := r.client.Get(ctx, r.key(key)).Result()
	if errors.Is(err, backend.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s from redis: %w", key, err)
	}
	return val, true, nil
}

// Write sets key with no expiration
func (r *RedisStore) Write(key, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	if err := r.client.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to write %s to redis: %w", key, err)
	}
	return nil
}

// Close closes the client
func (r *RedisStore) Close() error {
	return r.client.Close()
}
