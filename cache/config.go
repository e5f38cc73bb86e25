package cache

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Config exposes cache configuration options for consumers of the cache package.
type Config struct {
	// FormatVersion tags every key written to the durable tier. Bumping it on
	// a breaking entry-format change orphans all previously persisted entries
	// without a migration.
	FormatVersion string

	// DefaultTTL is the time-to-live applied when a caller does not pick one.
	DefaultTTL time.Duration

	// DurableCapacity bounds how many entries the durable tier may hold.
	// Writes beyond the bound are rejected by the tier and silently dropped
	// by the store; the volatile tier stays authoritative.
	DurableCapacity int
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() Config {
	return Config{
		FormatVersion:   "v1",
		DefaultTTL:      time.Minute,
		DurableCapacity: 200,
	}
}

// Validate checks whether the configuration values are valid.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.FormatVersion, validation.Required),
		validation.Field(&c.DefaultTTL, validation.Required, validation.Min(time.Millisecond)),
		validation.Field(&c.DurableCapacity, validation.Min(0)),
	)
}
