// Package cache provides the two caches the engine uses.
//
// [Computed] is an in-memory LRU keyed by identity. The render-graph compiler
// uses it with a key made of input pointers, so a hit means "these exact
// inputs were seen before" and never requires comparing documents.
//
// [Cache] stores rendered artifacts as bytes. [FileCache] persists them
// between CLI runs so that rendering an unchanged diagram skips Graphviz;
// [RedisCache] shares them between server replicas; [NullCache] disables
// artifact caching.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is a byte store for rendered artifacts.
type Cache interface {
	// Get returns the data stored under key. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// ArtifactKey returns the key of the artifact rendered in format from source.
func ArtifactKey(format string, source []byte) string {
	return "artifact:" + format + ":" + Hash(source)
}
