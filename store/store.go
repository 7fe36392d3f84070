// Package store implements the durable key-value stores dropdeck snapshots
// its collections into.
//
// Every key holds the full serialized content of one collection, and every
// write replaces it. Backends:
//   - memory: a map, for tests and throw-away sessions.
//   - file: one JSON file per key in a folder, human-readable and git-friendly.
//   - redis: one redis string per key, under a prefix.
//   - sqlite: one row per key in a local SQLite database.
//   - aztables: one entity per key in an Azure Storage table.
package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("key not found")

// Store is a durable key-value store addressed by fixed keys.
type Store interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put replaces the value stored under key.
	Put(ctx context.Context, key string, value []byte) error
}

// DB is a Store holding resources until it is closed.
type DB interface {
	Store
	io.Closer
}

// Backend names accepted by Open.
const (
	Memory   = "memory"
	File     = "file"
	Redis    = "redis"
	SQLite   = "sqlite"
	AzTables = "aztables"
)

// Config selects and configures a backend.
type Config struct {
	Backend string `mapstructure:"backend"`

	Dir string `mapstructure:"dir"` // file

	RedisURL    string `mapstructure:"redis_url"`    // redis, e.g. redis://localhost:6379/0
	RedisPrefix string `mapstructure:"redis_prefix"` // redis

	SQLitePath string `mapstructure:"sqlite_path"` // sqlite

	AzureConnectionString string `mapstructure:"azure_connection_string"` // aztables
	AzureTable            string `mapstructure:"azure_table"`             // aztables
}

// Open opens the backend described by cfg. The returned store must be closed.
func Open(ctx context.Context, cfg Config) (DB, error) {
	switch cfg.Backend {
	case Memory:
		return NewMemory(), nil
	case File, "":
		return OpenDir(cfg.Dir)
	case Redis:
		return OpenRedis(ctx, cfg.RedisURL, cfg.RedisPrefix)
	case SQLite:
		return OpenSQLite(cfg.SQLitePath)
	case AzTables:
		return OpenTable(ctx, cfg.AzureConnectionString, cfg.AzureTable)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

// MemoryStore keeps values in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemory returns an empty in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{values: make(map[string][]byte)}
}

func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *MemoryStore) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = append([]byte(nil), value...)
	return nil
}

// Close does nothing, values are lost with the process.
func (m *MemoryStore) Close() error { return nil }
