// Package cache stores rendered artifacts between runs.
//
// [Cache] is a byte store with per-entry expiry. [FileCache] backs the CLI
// (one JSON entry per key under the user cache directory), [RedisCache]
// lets several server instances share results and [NullCache] disables
// caching. Cache keys come from a [Keyer]; [DefaultKeyer] hashes the source
// text and every option that affects the output, so a stale hit cannot
// happen when options change.
package cache

import (
	"context"
	"time"
)

// Default expiries.
const (
	TTLKeymap   = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a key-value byte store.
//
// Get reports a miss as (nil, false, nil); an error means the backend failed.
// A ttl of zero stores the entry without expiry.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
