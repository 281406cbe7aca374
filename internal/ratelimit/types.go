package ratelimit

import (
	"context"
	"errors"
	"time"
)

var (
	ErrEmptyKey      = errors.New("empty rate limit key")
	ErrInvalidConfig = errors.New("invalid rate limiter configuration")
)

// Window is the state of one key's counter after a Take.
type Window struct {
	Count   int64
	ResetAt time.Time
	Allowed bool
}

// Store performs one atomic fixed-window step for key:
//   - no window, or now is past ResetAt: start a new window with Count=1, allowed
//   - Count >= limit: deny without incrementing
//   - otherwise: increment and allow
type Store interface {
	Take(ctx context.Context, key string, limit int64, window time.Duration) (Window, error)
}

// Decision is the outcome of a Check.
type Decision struct {
	Allowed    bool
	Limit      int64
	Remaining  int64
	ResetAt    time.Time
	RetryAfter time.Duration
}

// RetryAfterSeconds rounds RetryAfter up to whole seconds, never below 1.
func (d Decision) RetryAfterSeconds() int {
	secs := int((d.RetryAfter + time.Second - 1) / time.Second)
	if secs < 1 {
		secs = 1
	}
	return secs
}
