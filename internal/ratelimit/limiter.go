package ratelimit

import (
	"context"
	"fmt"
	"time"
)

// Options configure a Limiter.
type Options struct {
	Limit  int64
	Window time.Duration
	// FailOpen admits requests when the store errors.
	FailOpen bool
	// Now overrides the clock used to compute Retry-After. Defaults to time.Now.
	Now func() time.Time
}

// Limiter applies a fixed-window limit on top of a Store.
type Limiter struct {
	store    Store
	limit    int64
	window   time.Duration
	failOpen bool
	now      func() time.Time
}

func NewLimiter(store Store, opts Options) (*Limiter, error) {
	if store == nil {
		return nil, fmt.Errorf("store is nil: %w", ErrInvalidConfig)
	}
	if opts.Limit <= 0 || opts.Window <= 0 {
		return nil, fmt.Errorf("limit/window must be positive: %w", ErrInvalidConfig)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Limiter{
		store:    store,
		limit:    opts.Limit,
		window:   opts.Window,
		failOpen: opts.FailOpen,
		now:      opts.Now,
	}, nil
}

func (l *Limiter) Limit() int64          { return l.limit }
func (l *Limiter) Window() time.Duration { return l.window }

// Check counts one request for key and decides whether it is admitted.
// When the store fails and the limiter is fail-open, the request is admitted
// and the error is still returned so the caller can log it.
func (l *Limiter) Check(ctx context.Context, key string) (Decision, error) {
	if key == "" {
		return Decision{}, ErrEmptyKey
	}

	w, err := l.store.Take(ctx, key, l.limit, l.window)
	if err != nil {
		if l.failOpen {
			return Decision{
				Allowed:   true,
				Limit:     l.limit,
				Remaining: l.limit,
				ResetAt:   l.now().Add(l.window),
			}, fmt.Errorf("ratelimit.Check: %w", err)
		}
		return Decision{}, fmt.Errorf("ratelimit.Check: %w", err)
	}

	remaining := l.limit - w.Count
	if remaining < 0 {
		remaining = 0
	}
	dec := Decision{
		Allowed:   w.Allowed,
		Limit:     l.limit,
		Remaining: remaining,
		ResetAt:   w.ResetAt,
	}
	if !w.Allowed {
		dec.Remaining = 0
		dec.RetryAfter = w.ResetAt.Sub(l.now())
	}
	return dec, nil
}
