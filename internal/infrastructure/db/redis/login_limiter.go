package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const loginKeyPrefix = "taskcrm:login:"

// tokenBucketLua refills a bucket of burst tokens at rate tokens/second and
// takes one token per call. Returns {allowed, remaining}.
const tokenBucketLua = `
local key = KEYS[1]
local rate = tonumber(ARGV[1])
local burst = tonumber(ARGV[2])
local now = tonumber(ARGV[3])

local data = redis.call("HMGET", key, "tokens", "ts")
local tokens = tonumber(data[1])
local ts = tonumber(data[2])
if tokens == nil then
  tokens = burst
end
if ts == nil then
  ts = now
end

local delta = math.max(0, now - ts)
tokens = math.min(burst, tokens + (delta * rate) / 1000.0)

local allowed = 0
if tokens >= 1 then
  tokens = tokens - 1
  allowed = 1
end

redis.call("HMSET", key, "tokens", tostring(tokens), "ts", tostring(now))
redis.call("PEXPIRE", key, math.ceil((burst / rate) * 1000.0 * 2))

return {allowed, tostring(tokens)}
`

// LoginLimiter is a per-key token bucket kept in Redis so every API
// instance shares the same budget.
type LoginLimiter struct {
	rdb    *redis.Client
	rate   float64
	burst  float64
	script *redis.Script
	now    func() time.Time
}

func NewLoginLimiter(rdb *redis.Client, ratePerSec, burst float64) *LoginLimiter {
	return &LoginLimiter{
		rdb:    rdb,
		rate:   ratePerSec,
		burst:  burst,
		script: redis.NewScript(tokenBucketLua),
		now:    time.Now,
	}
}

// Allow takes one token from key's bucket. A limiter without a client or
// with a non-positive rate or burst always allows.
func (l *LoginLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if l == nil || l.rdb == nil || l.rate <= 0 || l.burst <= 0 {
		return true, nil
	}

	res, err := l.script.Run(ctx, l.rdb, []string{loginKeyPrefix + key}, l.rate, l.burst, l.now().UnixMilli()).Result()
	if err != nil {
		return false, fmt.Errorf("login limiter eval: %w", err)
	}

	values, ok := res.([]interface{})
	if !ok || len(values) < 1 {
		return false, fmt.Errorf("login limiter: unexpected result %v", res)
	}
	return toInt64(values[0]) == 1, nil
}

func toInt64(v interface{}) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case int:
		return int64(t)
	case string:
		n, _ := strconv.ParseInt(t, 10, 64)
		return n
	}
	return 0
}
