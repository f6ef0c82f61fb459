// Package kv provides the durable key-value layer custom annotations are
// persisted to. Values are opaque JSON documents keyed by well-known
// names ("custom-markers", "custom-routes"); the layer has no schema
// awareness beyond that.
package kv

import (
	"fmt"

	"github.com/lorescape/waymark/internal/config"
)

// Store is the interface all key-value backends must satisfy.
type Store interface {
	// Get returns the value for key, or (nil, nil) when the key is absent.
	Get(key string) ([]byte, error)
	// Put writes the value for key, replacing any previous value.
	Put(key string, value []byte) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error
	// Close releases backend resources.
	Close() error
}

// Open creates a key-value store based on configuration.
func Open(cfg config.StorageConfig) (Store, error) {
	switch cfg.Type {
	case "file":
		return NewFileStore(cfg.Dir)
	case "sqlite":
		return NewSqliteStore(cfg.SqlitePath)
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}
