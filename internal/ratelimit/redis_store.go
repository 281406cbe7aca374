package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps fixed-window counters in Redis so several instances share
// one quota. The window step runs as a Lua script, which Redis executes atomically.
type RedisStore struct {
	client redis.Scripter
	script *redis.Script
	prefix string
	now    func() time.Time
}

type RedisStoreOption func(*RedisStore)

// WithKeyPrefix namespaces the counters, default "ratelimit".
func WithKeyPrefix(prefix string) RedisStoreOption {
	return func(s *RedisStore) { s.prefix = strings.Trim(prefix, ":") }
}

func NewRedisStore(client redis.Scripter, opts ...RedisStoreOption) (*RedisStore, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is nil: %w", ErrInvalidConfig)
	}
	s := &RedisStore{
		client: client,
		script: redis.NewScript(fixedWindowLua),
		prefix: "ratelimit",
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Take implements Store.
func (s *RedisStore) Take(ctx context.Context, key string, limit int64, window time.Duration) (Window, error) {
	if key == "" {
		return Window{}, ErrEmptyKey
	}

	values, err := s.script.Run(ctx, s.client, []string{s.prefix + ":" + key}, limit, window.Milliseconds()).Result()
	if err != nil {
		return Window{}, fmt.Errorf("redis script: %w", err)
	}

	arr, ok := values.([]interface{})
	if !ok || len(arr) < 3 {
		return Window{}, fmt.Errorf("unexpected lua result: %v", values)
	}
	count, err := toInt64(arr[0])
	if err != nil {
		return Window{}, err
	}
	ttlMS, err := toInt64(arr[1])
	if err != nil {
		return Window{}, err
	}
	allowed, err := toInt64(arr[2])
	if err != nil {
		return Window{}, err
	}

	return Window{
		Count:   count,
		ResetAt: s.now().Add(time.Duration(ttlMS) * time.Millisecond),
		Allowed: allowed == 1,
	}, nil
}

func toInt64(value interface{}) (int64, error) {
	switch v := value.(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case string:
		return strconv.ParseInt(v, 10, 64)
	case []byte:
		return strconv.ParseInt(string(v), 10, 64)
	default:
		return 0, fmt.Errorf("unexpected value type %T", value)
	}
}
