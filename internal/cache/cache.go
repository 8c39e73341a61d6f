// Package cache provides the URL-keyed memoization layer in front of the
// source adapters. Entries are request results, never raw HTML, and live
// only in process memory.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// Cache defines the interface for result caching
type Cache interface {
	Get(key string) (any, bool)
	Set(key string, value any)
	Delete(key string)
	Clear()
}

// Key generates a cache key from a resolved request URL
func Key(url string) string {
	hash := sha256.Sum256([]byte(url))
	return "tahqiq:v1:" + hex.EncodeToString(hash[:])
}
