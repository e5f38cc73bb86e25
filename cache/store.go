package cache

import (
	"strings"
	"time"

	"github.com/puzpuzpuz/xsync/v3"
	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"
)

// DurableTier is the session-scoped mirror behind the volatile tier. Keys are
// already namespaced with the format version when they reach the tier, and
// payloads are opaque encoded entries. Implementations may bound their
// capacity and reject writes with an error; the store treats every tier
// failure as best-effort loss, never as a caller-visible error.
type DurableTier interface {
	Load(key string) ([]byte, bool)
	Store(key string, payload []byte) error
	Delete(key string)
	Keys() []string
	Clear()
}

// StoreOption configures a Store during construction.
type StoreOption[T any] func(*Store[T])

// WithDurableTier mirrors every write into the given tier and consults it on
// volatile misses. Without it the store is volatile-only.
func WithDurableTier[T any](tier DurableTier) StoreOption[T] {
	return func(s *Store[T]) { s.durable = tier }
}

// WithClock overrides the time source. Tests use this to pin expiry decisions.
func WithClock[T any](now func() time.Time) StoreOption[T] {
	return func(s *Store[T]) { s.now = now }
}

// WithStoreLogger sets the logger used for swallowed durable-tier failures.
func WithStoreLogger[T any](log zerolog.Logger) StoreOption[T] {
	return func(s *Store[T]) { s.log = log }
}

// Store is a two-tier key-value cache: a volatile in-process tier that is
// always authoritative, and an optional durable session-scoped mirror that
// survives process restarts within the same session. Entries past their
// expiry remain retrievable through GetEntry until invalidated or
// overwritten, so callers can tell missing from stale from fresh.
type Store[T any] struct {
	volatile *xsync.MapOf[string, Entry[T]]
	durable  DurableTier
	version  string
	now      func() time.Time
	log      zerolog.Logger
}

// NewStore constructs a Store from the given configuration.
func NewStore[T any](cfg Config, opts ...StoreOption[T]) (*Store[T], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Store[T]{
		volatile: xsync.NewMapOf[string, Entry[T]](),
		version:  cfg.FormatVersion,
		now:      time.Now,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Set writes an entry to both tiers with an expiry of now+ttl. A durable-tier
// failure (capacity, serialization) is logged and otherwise ignored; the
// volatile write always succeeds.
func (s *Store[T]) Set(key string, data T, ttl time.Duration) {
	now := s.now()
	entry := Entry[T]{Data: data, StoredAt: now, ExpiresAt: now.Add(ttl)}
	s.volatile.Store(key, entry)

	if s.durable == nil {
		return
	}
	payload, err := msgpack.Marshal(entry)
	if err != nil {
		s.log.Debug().Err(err).Str("key", key).Msg("durable tier encode failed, volatile only")
		return
	}
	if err := s.durable.Store(s.namespaced(key), payload); err != nil {
		s.log.Debug().Err(err).Str("key", key).Msg("durable tier write rejected, volatile only")
	}
}

// Get returns the data for key only when a fresh entry exists. Expired and
// missing entries are both reported as absent; staleness-aware callers use
// GetEntry instead.
func (s *Store[T]) Get(key string) (T, bool) {
	entry, ok := s.GetEntry(key)
	if !ok || !entry.Fresh(s.now()) {
		var zero T
		return zero, false
	}
	return entry.Data, true
}

// GetEntry returns the full entry for key regardless of expiry. The volatile
// tier is consulted first; on a miss the durable tier is checked and, when it
// holds a readable entry, the volatile tier is rehydrated before returning.
// Unreadable durable payloads count as a miss for that key.
func (s *Store[T]) GetEntry(key string) (Entry[T], bool) {
	if entry, ok := s.volatile.Load(key); ok {
		return entry, true
	}
	if s.durable == nil {
		return Entry[T]{}, false
	}

	payload, ok := s.durable.Load(s.namespaced(key))
	if !ok {
		return Entry[T]{}, false
	}
	var entry Entry[T]
	if err := msgpack.Unmarshal(payload, &entry); err != nil {
		s.log.Debug().Err(err).Str("key", key).Msg("durable tier payload unreadable, treating as miss")
		return Entry[T]{}, false
	}
	s.volatile.Store(key, entry)
	return entry, true
}

// Invalidate removes the entry for key from both tiers. Missing keys are a
// no-op.
func (s *Store[T]) Invalidate(key string) {
	s.volatile.Delete(key)
	if s.durable != nil {
		s.durable.Delete(s.namespaced(key))
	}
}

// InvalidatePattern removes every entry whose key the matcher accepts, across
// both tiers. Durable keys carrying a different format version are skipped;
// they are already unreadable to this store.
func (s *Store[T]) InvalidatePattern(match KeyMatcher) {
	s.volatile.Range(func(key string, _ Entry[T]) bool {
		if match(key) {
			s.volatile.Delete(key)
		}
		return true
	})

	if s.durable == nil {
		return
	}
	for _, nsKey := range s.durable.Keys() {
		key, ok := s.callerKey(nsKey)
		if ok && match(key) {
			s.durable.Delete(nsKey)
		}
	}
}

// Clear removes all entries from both tiers.
func (s *Store[T]) Clear() {
	s.volatile.Clear()
	if s.durable != nil {
		s.durable.Clear()
	}
}

func (s *Store[T]) namespaced(key string) string {
	return s.version + KeySeparator + key
}

func (s *Store[T]) callerKey(nsKey string) (string, bool) {
	return strings.CutPrefix(nsKey, s.version+KeySeparator)
}
