package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching external lookup results.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a cache key from a namespace and a free-text query. Queries
// are hashed so arbitrary claim text never leaks into cache internals.
func Key(namespace, query string) string {
	hash := sha256.Sum256([]byte(query))
	return "veristream:v1:" + namespace + ":" + hex.EncodeToString(hash[:])
}
