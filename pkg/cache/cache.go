// Package cache provides the storage backends pipreq uses for HTTP responses
// and package catalog snapshots.
//
// Three backends implement [Cache]:
//
//   - [FileCache]: JSON envelopes on disk, the CLI default
//   - [RedisCache]: a shared Redis instance, for the API server
//   - [NullCache]: caching disabled
//
// Keys are built by a [Keyer] so that every component derives them the same
// way regardless of backend.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under string keys with an optional TTL.
// A zero TTL means the entry does not expire. Get reports a miss with
// ok == false and a nil error.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keyer derives cache keys.
type Keyer interface {
	// HTTPKey is the key for a cached registry response.
	HTTPKey(namespace, key string) string
	// CatalogKey is the key for the catalog snapshot of a package index.
	CatalogKey(index string) string
}

// DefaultKeyer builds unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default Keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) HTTPKey(namespace, key string) string {
	return "http:" + namespace + ":" + key
}

func (DefaultKeyer) CatalogKey(index string) string {
	return hashKey("catalog", index)
}
