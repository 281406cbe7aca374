package ratelimit

// fixedWindowLua returns {count, pttl_ms, allowed}.
const fixedWindowLua = `
local key = KEYS[1]
local limit = tonumber(ARGV[1])
local window = tonumber(ARGV[2])

local count = tonumber(redis.call("GET", key) or "0")
local ttl = redis.call("PTTL", key)

if count == 0 or ttl < 0 then
  redis.call("SET", key, 1, "PX", window)
  return { 1, window, 1 }
end

if count >= limit then
  return { count, ttl, 0 }
end

count = redis.call("INCR", key)
return { count, ttl, 1 }
`
