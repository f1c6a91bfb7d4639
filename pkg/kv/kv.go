// Package kv defines the opaque key-value port behind which all collection
// snapshots are persisted, together with memory, Redis, and SQLite adapters.
package kv

import (
	"context"
	"errors"
	"strings"
)

// ErrNotFound reports that no value is stored under the requested key.
var ErrNotFound = errors.New("kv: key not found")

// Store is the persistence port. Values are opaque JSON blobs; one key holds
// one whole collection snapshot.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Key joins a namespace and a collection name into a storage key.
func Key(namespace, name string) string {
	namespace = strings.TrimSpace(namespace)
	if namespace == "" {
		return name
	}
	return namespace + "_" + name
}
