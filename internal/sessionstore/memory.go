package sessionstore

import "sync"

// MemoryTier is a map-backed tier with the same capacity semantics as the
// sqlite tier. It backs diskless deployments and tests.
type MemoryTier struct {
	mu       sync.Mutex
	entries  map[string][]byte
	capacity int
}

// NewMemory returns a MemoryTier bounded to capacity rows. Zero means
// unbounded.
func NewMemory(capacity int) *MemoryTier {
	return &MemoryTier{
		entries:  make(map[string][]byte),
		capacity: capacity,
	}
}

func (t *MemoryTier) Load(key string) ([]byte, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	payload, ok := t.entries[key]
	return payload, ok
}

func (t *MemoryTier) Store(key string, payload []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, exists := t.entries[key]; !exists && t.capacity > 0 && len(t.entries) >= t.capacity {
		return ErrCapacityExceeded
	}
	t.entries[key] = payload
	return nil
}

func (t *MemoryTier) Delete(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.entries, key)
}

func (t *MemoryTier) Keys() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	keys := make([]string, 0, len(t.entries))
	for k := range t.entries {
		keys = append(keys, k)
	}
	return keys
}

func (t *MemoryTier) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = make(map[string][]byte)
}
