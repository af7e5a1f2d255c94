// Package cache stores rendered report artifacts.
//
// A [Cache] is a byte store with per-entry TTL. Three backends ship with the
// package:
//   - [FileCache]: one JSON envelope per entry under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for the HTTP server
//   - [NullCache]: stores nothing, used when caching is disabled
//
// Keys come from a [Keyer], which hashes the record content together with
// every option that changes the rendered bytes. Wrap a backend with
// [Observed] to report hits, misses and writes to the registered
// observability hooks.
package cache

import (
	"context"
	"time"

	"github.com/matzehuels/inspectreport/pkg/observability"
)

// Default lifetimes.
const (
	// ArtifactTTL bounds how long a rendered artifact is served again for an
	// unchanged record.
	ArtifactTTL = 24 * time.Hour

	// ScoreTTL bounds how long a computed score summary is reused.
	ScoreTTL = 7 * 24 * time.Hour
)

// Cache is the interface for artifact storage backends.
type Cache interface {
	// Get returns the stored bytes and whether the key was present and live.
	// A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by backends that can drop every entry.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Observed wraps c so every Get and Set is reported to the cache hooks
// registered in package observability. keyType labels the events.
func Observed(c Cache, keyType string) Cache {
	if c == nil {
		c = NewNullCache()
	}
	return &observed{Cache: c, keyType: keyType}
}

type observed struct {
	Cache
	keyType string
}

func (o *observed) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, hit, err := o.Cache.Get(ctx, key)
	if err == nil {
		if hit {
			observability.Cache().OnCacheHit(ctx, o.keyType)
		} else {
			observability.Cache().OnCacheMiss(ctx, o.keyType)
		}
	}
	return data, hit, err
}

func (o *observed) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := o.Cache.Set(ctx, key, data, ttl); err != nil {
		return err
	}
	observability.Cache().OnCacheSet(ctx, o.keyType, len(data))
	return nil
}

// Clear forwards to the wrapped backend when it supports clearing.
func (o *observed) Clear(ctx context.Context) error {
	if c, ok := o.Cache.(Clearer); ok {
		return c.Clear(ctx)
	}
	return nil
}
