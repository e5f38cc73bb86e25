package cache

import "time"

// Entry is a single cached record together with its timing metadata.
// An entry past its expiry is stale, not gone: it stays servable until it is
// overwritten or explicitly invalidated.
type Entry[T any] struct {
	Data      T         `msgpack:"data" json:"data"`
	StoredAt  time.Time `msgpack:"stored_at" json:"stored_at"`
	ExpiresAt time.Time `msgpack:"expires_at" json:"expires_at"`
}

// Fresh reports whether the entry has not yet passed its expiry.
func (e Entry[T]) Fresh(now time.Time) bool {
	return now.Before(e.ExpiresAt)
}

// Stale reports whether the entry has passed its expiry but is still present.
func (e Entry[T]) Stale(now time.Time) bool {
	return !e.Fresh(now)
}
