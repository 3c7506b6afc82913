package cache

import "context"

// Store is the small surface the read-through catalog cache needs.
// Values are opaque strings; callers do their own marshalling.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
	// DeleteByPrefix removes every key starting with prefix. Used when a
	// batch mutation's blast radius spans an unknown set of categories.
	DeleteByPrefix(ctx context.Context, prefix string) error
}
