package sessionstore

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-easeform-client/cache"
)

func newSQLiteTier(t *testing.T, capacity int) *SQLiteTier {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Capacity = capacity
	tier, err := NewSQLite(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewSQLite returned error: %v", err)
	}
	t.Cleanup(func() { _ = tier.Close() })
	return tier
}

// Both implementations must behave identically through the tier contract.
func tierUnderTest(t *testing.T, name string, capacity int) cache.DurableTier {
	t.Helper()
	switch name {
	case "sqlite":
		return newSQLiteTier(t, capacity)
	case "memory":
		return NewMemory(capacity)
	default:
		t.Fatalf("unknown tier %q", name)
		return nil
	}
}

func TestTier_RoundTrip(t *testing.T) {
	for _, name := range []string{"sqlite", "memory"} {
		t.Run(name, func(t *testing.T) {
			tier := tierUnderTest(t, name, 0)

			if _, ok := tier.Load("v1::k"); ok {
				t.Error("expected miss on empty tier")
			}

			if err := tier.Store("v1::k", []byte("payload")); err != nil {
				t.Fatalf("Store returned error: %v", err)
			}
			got, ok := tier.Load("v1::k")
			if !ok {
				t.Fatal("expected hit after store")
			}
			if string(got) != "payload" {
				t.Errorf("expected payload, got %q", got)
			}

			if err := tier.Store("v1::k", []byte("updated")); err != nil {
				t.Fatalf("overwrite returned error: %v", err)
			}
			got, _ = tier.Load("v1::k")
			if string(got) != "updated" {
				t.Errorf("expected updated payload, got %q", got)
			}

			tier.Delete("v1::k")
			if _, ok := tier.Load("v1::k"); ok {
				t.Error("expected miss after delete")
			}
			tier.Delete("v1::k") // idempotent
		})
	}
}

func TestTier_CapacityBound(t *testing.T) {
	for _, name := range []string{"sqlite", "memory"} {
		t.Run(name, func(t *testing.T) {
			tier := tierUnderTest(t, name, 2)

			if err := tier.Store("v1::a", []byte("1")); err != nil {
				t.Fatalf("Store a: %v", err)
			}
			if err := tier.Store("v1::b", []byte("2")); err != nil {
				t.Fatalf("Store b: %v", err)
			}

			err := tier.Store("v1::c", []byte("3"))
			if !errors.Is(err, ErrCapacityExceeded) {
				t.Fatalf("expected ErrCapacityExceeded, got %v", err)
			}

			// Overwriting an existing key is not a new row and must succeed.
			if err := tier.Store("v1::a", []byte("1b")); err != nil {
				t.Errorf("overwrite at capacity returned error: %v", err)
			}

			// Freeing a slot makes room again.
			tier.Delete("v1::b")
			if err := tier.Store("v1::c", []byte("3")); err != nil {
				t.Errorf("Store after delete returned error: %v", err)
			}
		})
	}
}

func TestTier_CapacityHoldsUnderConcurrentWrites(t *testing.T) {
	const capacity = 4

	for _, name := range []string{"sqlite", "memory"} {
		t.Run(name, func(t *testing.T) {
			tier := tierUnderTest(t, name, capacity)

			var wg sync.WaitGroup
			errs := make([]error, 16)
			for i := range errs {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					errs[i] = tier.Store(fmt.Sprintf("v1::k%d", i), []byte{byte(i)})
				}(i)
			}
			wg.Wait()

			var accepted int
			for i, err := range errs {
				switch {
				case err == nil:
					accepted++
				case errors.Is(err, ErrCapacityExceeded):
				default:
					t.Errorf("writer %d returned unexpected error: %v", i, err)
				}
			}
			if accepted > capacity {
				t.Errorf("expected at most %d accepted writes, got %d", capacity, accepted)
			}
			if got := len(tier.Keys()); got > capacity {
				t.Errorf("expected at most %d rows, got %d", capacity, got)
			}
		})
	}
}

func TestTier_KeysAndClear(t *testing.T) {
	for _, name := range []string{"sqlite", "memory"} {
		t.Run(name, func(t *testing.T) {
			tier := tierUnderTest(t, name, 0)

			for i := 0; i < 3; i++ {
				key := fmt.Sprintf("v1::k%d", i)
				if err := tier.Store(key, []byte{byte(i)}); err != nil {
					t.Fatalf("Store %s: %v", key, err)
				}
			}

			keys := tier.Keys()
			if len(keys) != 3 {
				t.Fatalf("expected 3 keys, got %d: %v", len(keys), keys)
			}
			seen := make(map[string]bool, len(keys))
			for _, k := range keys {
				seen[k] = true
			}
			for i := 0; i < 3; i++ {
				if key := fmt.Sprintf("v1::k%d", i); !seen[key] {
					t.Errorf("expected key %s in listing", key)
				}
			}

			tier.Clear()
			if got := tier.Keys(); len(got) != 0 {
				t.Errorf("expected empty tier after clear, got %v", got)
			}
			tier.Clear() // idempotent
		})
	}
}
