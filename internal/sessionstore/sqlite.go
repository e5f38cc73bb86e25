// Package sessionstore provides durable session-scoped tiers for the cache
// store. Payloads are opaque byte slices (the cache layer owns encoding);
// this package only persists them under their namespaced keys and enforces
// the capacity bound.
package sessionstore

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-easeform-client/cache"
)

// Both tiers satisfy the cache store's durable tier contract.
var (
	_ cache.DurableTier = (*SQLiteTier)(nil)
	_ cache.DurableTier = (*MemoryTier)(nil)
)

// ErrCapacityExceeded is returned by Store when the tier is full and the key
// is not already present. The cache layer swallows it; the write is simply
// not mirrored.
var ErrCapacityExceeded = errors.New("sessionstore: capacity exceeded")

// Config holds the configuration for the sqlite-backed tier.
type Config struct {
	// Path is the sqlite database location. Use ":memory:" for a tier that
	// lives only as long as the process, or a file path to survive restarts
	// within a session.
	Path string

	// Capacity bounds the number of persisted rows. Zero means unbounded.
	Capacity int

	// QueryTimeout caps each database operation so a slow disk can never
	// stall a cache read or write indefinitely.
	QueryTimeout time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Path:         ":memory:",
		Capacity:     200,
		QueryTimeout: 5 * time.Second,
	}
}

type cacheRow struct {
	bun.BaseModel `bun:"table:cache_entries,alias:ce"`

	Key      string    `bun:"key,pk"`
	Payload  []byte    `bun:"payload,notnull"`
	StoredAt time.Time `bun:"stored_at,notnull"`
}

// SQLiteTier persists cache entries in a sqlite table through bun. It
// implements the cache store's DurableTier contract: lookups degrade to a
// miss on any database error, and writes report capacity rejection as an
// error for the caller to drop.
type SQLiteTier struct {
	db       *bun.DB
	capacity int
	timeout  time.Duration
	log      zerolog.Logger
}

// NewSQLite opens (or creates) the backing database and ensures the schema
// exists.
func NewSQLite(cfg Config, log zerolog.Logger) (*SQLiteTier, error) {
	sqldb, err := sql.Open("sqlite3", cfg.Path)
	if err != nil {
		return nil, err
	}
	// A single pooled connection keeps ":memory:" databases coherent (each
	// sqlite connection would otherwise open its own) and serializes writers.
	sqldb.SetMaxOpenConns(1)
	db := bun.NewDB(sqldb, sqlitedialect.New())

	tier := &SQLiteTier{
		db:       db,
		capacity: cfg.Capacity,
		timeout:  cfg.QueryTimeout,
		log:      log,
	}

	ctx, cancel := tier.opContext()
	defer cancel()
	if _, err := db.NewCreateTable().Model((*cacheRow)(nil)).IfNotExists().Exec(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return tier, nil
}

// Load returns the payload stored under key, or absent on a miss or any
// database failure.
func (t *SQLiteTier) Load(key string) ([]byte, bool) {
	ctx, cancel := t.opContext()
	defer cancel()

	row := new(cacheRow)
	err := t.db.NewSelect().Model(row).Where("ce.key = ?", key).Scan(ctx)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			t.log.Debug().Err(err).Str("key", key).Msg("session tier read failed, treating as miss")
		}
		return nil, false
	}
	return row.Payload, true
}

// Store upserts the payload under key. A full tier rejects new keys with
// ErrCapacityExceeded; overwriting an existing key always succeeds. The
// capacity check and the upsert run in one transaction so concurrent
// writers cannot race past the row budget.
func (t *SQLiteTier) Store(key string, payload []byte) error {
	ctx, cancel := t.opContext()
	defer cancel()

	return t.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if t.capacity > 0 {
			count, err := tx.NewSelect().
				Model((*cacheRow)(nil)).
				Where("ce.key != ?", key).
				Count(ctx)
			if err != nil {
				return err
			}
			if count >= t.capacity {
				return ErrCapacityExceeded
			}
		}

		row := &cacheRow{Key: key, Payload: payload, StoredAt: time.Now()}
		_, err := tx.NewInsert().
			Model(row).
			On("CONFLICT (key) DO UPDATE").
			Set("payload = EXCLUDED.payload").
			Set("stored_at = EXCLUDED.stored_at").
			Exec(ctx)
		return err
	})
}

// Delete removes the row for key. Missing keys are a no-op.
func (t *SQLiteTier) Delete(key string) {
	ctx, cancel := t.opContext()
	defer cancel()

	if _, err := t.db.NewDelete().Model((*cacheRow)(nil)).Where("key = ?", key).Exec(ctx); err != nil {
		t.log.Debug().Err(err).Str("key", key).Msg("session tier delete failed")
	}
}

// Keys lists every persisted key, in no particular order.
func (t *SQLiteTier) Keys() []string {
	ctx, cancel := t.opContext()
	defer cancel()

	var keys []string
	if err := t.db.NewSelect().Model((*cacheRow)(nil)).Column("key").Scan(ctx, &keys); err != nil {
		t.log.Debug().Err(err).Msg("session tier key scan failed")
		return nil
	}
	return keys
}

// Clear removes every row.
func (t *SQLiteTier) Clear() {
	ctx, cancel := t.opContext()
	defer cancel()

	if _, err := t.db.NewDelete().Model((*cacheRow)(nil)).Where("1 = 1").Exec(ctx); err != nil {
		t.log.Debug().Err(err).Msg("session tier clear failed")
	}
}

// Close releases the underlying database handle.
func (t *SQLiteTier) Close() error {
	return t.db.Close()
}

func (t *SQLiteTier) opContext() (context.Context, context.CancelFunc) {
	if t.timeout <= 0 {
		return context.Background(), func() {}
	}
	return context.WithTimeout(context.Background(), t.timeout)
}
