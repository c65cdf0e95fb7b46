package cache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"
)

// Cache stores opaque values under string keys with a TTL.
type Cache interface {
	// Get returns nil, nil on a miss.
	Get(ctx context.Context, key string) ([]byte, error)

	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Close closes the cache connection
	Close() error
}

// GenerateCacheKey hashes parts into a stable key.
func GenerateCacheKey(parts ...any) string {
	data, err := json.Marshal(parts)
	if err != nil {
		data = []byte(fmt.Sprint(parts...))
	}
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%x", sum)
}
