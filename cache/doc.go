// Package cache implements the client-side data cache: a two-tier key-value
// store with stale-while-revalidate reads and in-flight request deduplication.
//
// # Overview
//
// Two types make up the package:
//
//   - Store: a key-value store of entries with a volatile in-process tier
//     and an optional durable session-scoped tier, expiry metadata, and
//     pattern-based invalidation
//   - Resolver: wraps an asynchronous fetch with cache-first reads,
//     background revalidation, and per-key deduplication of concurrent
//     fetches
//
// # Entry lifecycle
//
// Entries are created only by a successful fetch (or an explicit Set) and
// removed only by invalidation, pattern invalidation, or Clear. Expiry does
// not remove an entry: it marks it stale, and stale entries keep serving
// reads while a replacement is fetched in the background. Callers that need
// to distinguish missing from stale from fresh use GetEntry; Get collapses
// stale and missing into absent.
//
// # Basic usage
//
//	store, err := cache.NewStore[Forms](cache.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	resolver := cache.NewResolver(store)
//
//	forms, err := resolver.Resolve(ctx, "forms::list", fetchForms, time.Minute,
//		cache.OnBackgroundUpdate(func(fresh Forms) {
//			// reconcile UI state with data that arrived after the stale read
//		}))
//
// # Durable tier
//
// When constructed with WithDurableTier, every write is mirrored into a
// session-scoped store under a format-versioned key. The mirror is strictly
// best-effort: write rejections (capacity, serialization) and unreadable
// payloads are logged and otherwise ignored, with the volatile tier staying
// authoritative for the life of the process. Bumping Config.FormatVersion
// makes all previously persisted entries unreadable, which stands in for a
// migration on breaking format changes.
//
// # Concurrency
//
// Store operations are safe for concurrent use. The resolver guarantees that
// at most one fetch per key is in flight at any instant; callers that arrive
// while a fetch is pending attach to it and observe the same resolved value
// or the same error. A stale-triggered background refresh participates in
// the same in-flight accounting as a miss-triggered fetch for that key.
//
// # Error handling
//
// Fetch errors propagate unchanged on the miss path and are swallowed (but
// logged) on the stale-refresh path, since the caller already received data.
// No Store-internal failure is ever escalated; only the absence of usable
// data is.
package cache
