package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// FetchFn is the function signature the resolver expects when fetching from
// the source of truth. It must settle exactly once; a fetch that never
// returns keeps its key's in-flight slot occupied forever, so callers are
// responsible for bounding it (deadline on ctx, transport timeout).
type FetchFn[T any] func(ctx context.Context) (T, error)

// ResolveOption configures a single Resolve call.
type ResolveOption[T any] func(*resolveCall[T])

// OnBackgroundUpdate registers a callback fired at most once per Resolve,
// only on the stale-hit path, and only when the background refresh produced
// data that differs from the stale data already returned. It runs on the
// refresh goroutine after the cache has been updated.
func OnBackgroundUpdate[T any](fn func(T)) ResolveOption[T] {
	return func(c *resolveCall[T]) { c.onUpdate = fn }
}

type resolveCall[T any] struct {
	onUpdate func(T)
}

// Resolver wraps fetch operations with stale-while-revalidate reads over a
// Store. Fresh entries are served without network activity, stale entries are
// served immediately while a refresh runs in the background, and misses block
// on the fetch. Concurrent fetches for the same key collapse into one.
type Resolver[T any] struct {
	store *Store[T]
	group singleflight.Group
	now   func() time.Time
	log   zerolog.Logger
}

// ResolverOption configures a Resolver during construction.
type ResolverOption[T any] func(*Resolver[T])

// WithResolverClock overrides the time source used for staleness decisions.
func WithResolverClock[T any](now func() time.Time) ResolverOption[T] {
	return func(r *Resolver[T]) { r.now = now }
}

// WithResolverLogger sets the logger that receives swallowed background
// refresh failures.
func WithResolverLogger[T any](log zerolog.Logger) ResolverOption[T] {
	return func(r *Resolver[T]) { r.log = log }
}

// NewResolver constructs a Resolver over the given store.
func NewResolver[T any](store *Store[T], opts ...ResolverOption[T]) *Resolver[T] {
	r := &Resolver[T]{
		store: store,
		now:   time.Now,
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns data for key, consulting the cache before the fetch.
//
// Policy, in priority order:
//  1. Fresh entry: return its data, no fetch.
//  2. Stale entry: return its data immediately and refresh in the
//     background. Refresh failures are logged, never surfaced to this call.
//  3. Miss: fetch, block until it settles, and propagate its result or error
//     unchanged. Nothing is cached on failure.
//
// Both the blocking fetch and background refreshes share one in-flight slot
// per key, so N concurrent callers produce a single fetch and observe the
// same outcome.
func (r *Resolver[T]) Resolve(ctx context.Context, key string, fetch FetchFn[T], ttl time.Duration, opts ...ResolveOption[T]) (T, error) {
	var call resolveCall[T]
	for _, opt := range opts {
		opt(&call)
	}

	if entry, ok := r.store.GetEntry(key); ok {
		if entry.Fresh(r.now()) {
			return entry.Data, nil
		}
		r.refreshAsync(ctx, key, fetch, ttl, entry.Data, call.onUpdate)
		return entry.Data, nil
	}

	return r.fetch(ctx, key, fetch, ttl)
}

// fetch runs the shared fetch procedure: join the in-flight operation for key
// if one exists, otherwise start one. The slot is released when the fetch
// settles, success or failure.
func (r *Resolver[T]) fetch(ctx context.Context, key string, fetch FetchFn[T], ttl time.Duration) (T, error) {
	result, err, _ := r.group.Do(key, func() (any, error) {
		data, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		r.store.Set(key, data, ttl)
		return data, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result.(T), nil
}

// refreshAsync revalidates a stale entry without blocking the caller. The
// refresh outlives the triggering request, so the caller's cancellation is
// detached from the context handed to the fetch.
func (r *Resolver[T]) refreshAsync(ctx context.Context, key string, fetch FetchFn[T], ttl time.Duration, stale T, onUpdate func(T)) {
	ctx = context.WithoutCancel(ctx)
	go func() {
		fresh, err := r.fetch(ctx, key, fetch, ttl)
		if err != nil {
			r.log.Debug().Err(err).Str("key", key).Msg("background refresh failed, serving stale data until next read")
			return
		}
		if onUpdate != nil && !canonicallyEqual(stale, fresh) {
			onUpdate(fresh)
		}
	}()
}

// canonicallyEqual compares two payloads by their canonical JSON form. An
// unencodable payload counts as different, so the update callback fires
// rather than suppressing a possible change.
func canonicallyEqual[T any](a, b T) bool {
	aj, err := json.Marshal(a)
	if err != nil {
		return false
	}
	bj, err := json.Marshal(b)
	if err != nil {
		return false
	}
	return bytes.Equal(aj, bj)
}
