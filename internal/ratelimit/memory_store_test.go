package ratelimit

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestMemoryStore_AllowsUpToLimitThenDenies(t *testing.T) {
	clock := newFakeClock()
	s := NewMemoryStore(WithClock(clock.Now))
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		w, err := s.Take(ctx, "k", 3, time.Minute)
		if err != nil {
			t.Fatalf("take %d: %v", i, err)
		}
		if !w.Allowed {
			t.Fatalf("expected take %d to be allowed", i)
		}
		if w.Count != int64(i) {
			t.Fatalf("expected count %d, got %d", i, w.Count)
		}
	}

	w, err := s.Take(ctx, "k", 3, time.Minute)
	if err != nil {
		t.Fatalf("take 4: %v", err)
	}
	if w.Allowed {
		t.Fatalf("expected fourth take to be denied")
	}
	if w.Count != 3 {
		t.Fatalf("expected denied take not to increment, got count %d", w.Count)
	}
}

func TestMemoryStore_NewWindowAfterReset(t *testing.T) {
	clock := newFakeClock()
	s := NewMemoryStore(WithClock(clock.Now))
	ctx := context.Background()

	first, _ := s.Take(ctx, "k", 1, time.Minute)
	if _, err := s.Take(ctx, "k", 1, time.Minute); err != nil {
		t.Fatalf("take: %v", err)
	}

	// exactly at the reset instant the window is still current
	clock.Advance(time.Minute)
	w, _ := s.Take(ctx, "k", 1, time.Minute)
	if w.Allowed {
		t.Fatalf("expected deny at the reset instant")
	}

	clock.Advance(time.Millisecond)
	w, _ = s.Take(ctx, "k", 1, time.Minute)
	if !w.Allowed || w.Count != 1 {
		t.Fatalf("expected fresh window with count 1, got allowed=%v count=%d", w.Allowed, w.Count)
	}
	if !w.ResetAt.After(first.ResetAt) {
		t.Fatalf("expected reset time to move forward")
	}
}

func TestMemoryStore_KeysAreIndependent(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if w, _ := s.Take(ctx, "a", 1, time.Minute); !w.Allowed {
		t.Fatalf("expected a allowed")
	}
	if w, _ := s.Take(ctx, "b", 1, time.Minute); !w.Allowed {
		t.Fatalf("expected b allowed")
	}
	if w, _ := s.Take(ctx, "a", 1, time.Minute); w.Allowed {
		t.Fatalf("expected second a denied")
	}
}

func TestMemoryStore_EmptyKey(t *testing.T) {
	s := NewMemoryStore()
	if _, err := s.Take(context.Background(), "", 1, time.Minute); err != ErrEmptyKey {
		t.Fatalf("expected ErrEmptyKey, got %v", err)
	}
}

func TestMemoryStore_SweepRemovesOnlyStaleEntries(t *testing.T) {
	clock := newFakeClock()
	s := NewMemoryStore(WithClock(clock.Now), WithCleanupEvery(0))
	ctx := context.Background()

	_, _ = s.Take(ctx, "old", 10, time.Minute)
	clock.Advance(90 * time.Second)
	_, _ = s.Take(ctx, "fresh", 10, time.Minute)

	// "old" reset 30s ago: not yet one window in the past
	if removed := s.Sweep(); removed != 0 {
		t.Fatalf("expected nothing swept, got %d", removed)
	}

	clock.Advance(31 * time.Second)
	if removed := s.Sweep(); removed != 1 {
		t.Fatalf("expected 1 swept, got %d", removed)
	}
	if s.Len() != 1 {
		t.Fatalf("expected 1 remaining entry, got %d", s.Len())
	}
}

func TestMemoryStore_ConcurrentTakesDoNotLoseUpdates(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	const limit = 100
	var allowed atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 250; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w, err := s.Take(ctx, "shared", limit, time.Minute)
			if err != nil {
				t.Errorf("take: %v", err)
				return
			}
			if w.Allowed {
				allowed.Add(1)
			}
		}()
	}
	wg.Wait()

	if got := allowed.Load(); got != limit {
		t.Fatalf("expected exactly %d allowed, got %d", limit, got)
	}
}

func TestMemoryStore_JanitorStopsWithContext(t *testing.T) {
	clock := newFakeClock()
	s := NewMemoryStore(WithClock(clock.Now), WithCleanupEvery(5*time.Millisecond))

	_, _ = s.Take(context.Background(), "k", 1, time.Millisecond)
	clock.Advance(time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	s.StartJanitor(ctx)
	defer cancel()

	deadline := time.Now().Add(500 * time.Millisecond)
	for s.Len() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("expected janitor to sweep the stale entry")
		}
		time.Sleep(2 * time.Millisecond)
	}
}
