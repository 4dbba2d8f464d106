// Package cache stores fetched legislative documents between runs.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is the storage interface for fetched documents.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a cache key from a document URL.
func Key(url string) string {
	hash := sha256.Sum256([]byte(url))
	return "doctrina:v1:" + hex.EncodeToString(hash[:])
}
