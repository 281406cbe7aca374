// Package ratelimit implements fixed-window admission control keyed by client.
//
// The algorithm lives in Store implementations so that the counter can be kept
// in process memory (MemoryStore) or shared between instances (RedisStore).
// Limiter turns a store step into a Decision with the values needed for the
// X-RateLimit-* and Retry-After headers; it knows nothing about HTTP.
package ratelimit
