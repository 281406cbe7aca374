package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps fixed-window counters in process memory.
// A single mutex serializes every Take, so concurrent requests for the
// same key never lose increments. State is lost on restart.
type MemoryStore struct {
	mu           sync.Mutex
	entries      map[string]*memoryEntry
	now          func() time.Time
	cleanupEvery time.Duration
}

type memoryEntry struct {
	count   int64
	resetAt time.Time
	window  time.Duration
}

type MemoryStoreOption func(*MemoryStore)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) MemoryStoreOption {
	return func(s *MemoryStore) { s.now = now }
}

// WithCleanupEvery sets the janitor interval. Zero disables the janitor.
func WithCleanupEvery(d time.Duration) MemoryStoreOption {
	return func(s *MemoryStore) { s.cleanupEvery = d }
}

func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	s := &MemoryStore{
		entries:      make(map[string]*memoryEntry),
		now:          time.Now,
		cleanupEvery: time.Minute,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Take implements Store.
func (s *MemoryStore) Take(_ context.Context, key string, limit int64, window time.Duration) (Window, error) {
	if key == "" {
		return Window{}, ErrEmptyKey
	}
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	ent, ok := s.entries[key]
	if !ok || now.After(ent.resetAt) {
		ent = &memoryEntry{count: 1, resetAt: now.Add(window), window: window}
		s.entries[key] = ent
		return Window{Count: 1, ResetAt: ent.resetAt, Allowed: true}, nil
	}

	if ent.count >= limit {
		return Window{Count: ent.count, ResetAt: ent.resetAt, Allowed: false}, nil
	}

	ent.count++
	return Window{Count: ent.count, ResetAt: ent.resetAt, Allowed: true}, nil
}

// Len returns the number of tracked keys.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Sweep removes entries whose window ended more than one window ago and
// returns how many were removed. Expiry is also checked on every Take, so
// sweeping only bounds memory.
func (s *MemoryStore) Sweep() int {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for k, ent := range s.entries {
		if now.Sub(ent.resetAt) > ent.window {
			delete(s.entries, k)
			removed++
		}
	}
	return removed
}

// StartJanitor sweeps periodically until ctx is done.
func (s *MemoryStore) StartJanitor(ctx context.Context) {
	if s.cleanupEvery <= 0 {
		return
	}

	t := time.NewTicker(s.cleanupEvery)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				s.Sweep()
			}
		}
	}()
}
