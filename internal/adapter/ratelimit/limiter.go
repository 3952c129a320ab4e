package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Config holds configuration for the rate limiter.
type Config struct {
	RequestsPerSecond float64
	BurstCapacity     int
	Enabled           bool
}

// KeyPrefix namespaces every bucket stored in Redis.
const KeyPrefix = "ratelimit:tb:"

// tokenBucket refills at rate tokens per second up to capacity and takes one
// token per call. Bucket state is {last_refill_ms, tokens}.
var tokenBucket = redis.NewScript(`
local key = KEYS[1]
local rate = tonumber(ARGV[1])
local capacity = tonumber(ARGV[2])
local now = tonumber(ARGV[3])
local ttl = tonumber(ARGV[4])

local bucket = redis.call('HMGET', key, 'last_refill', 'tokens')
local last_refill = tonumber(bucket[1]) or now
local tokens = tonumber(bucket[2]) or capacity

local elapsed = math.max(0, now - last_refill) / 1000
tokens = math.min(capacity, tokens + elapsed * rate)

local allowed = 0
if tokens >= 1 then
	tokens = tokens - 1
	allowed = 1
end

redis.call('HSET', key, 'last_refill', now, 'tokens', tokens)
redis.call('EXPIRE', key, ttl)
return allowed
`)

// Limiter is a Redis-backed token bucket shared by every replica.
type Limiter struct {
	client *redis.Client
	config Config
	log    *zap.Logger
	now    func() time.Time
}

// New creates a new rate limiter.
func New(client *redis.Client, config Config, log *zap.Logger) *Limiter {
	return &Limiter{
		client: client,
		config: config,
		log:    log,
		now:    time.Now,
	}
}

// Config returns the limiter configuration.
func (l *Limiter) Config() Config {
	return l.config
}

// Allow takes one token from the bucket identified by key.
// It fails open: Redis errors are logged and the request is allowed.
func (l *Limiter) Allow(ctx context.Context, key string) bool {
	if l == nil || !l.config.Enabled || l.client == nil {
		return true
	}

	allowed, err := tokenBucket.Run(ctx, l.client, []string{KeyPrefix + key},
		l.config.RequestsPerSecond,
		l.config.BurstCapacity,
		l.now().UnixMilli(),
		l.bucketTTLSeconds(),
	).Int64()
	if err != nil {
		l.log.Warn("rate limiter redis error, allowing request", zap.String("key", key), zap.Error(err))
		return true
	}

	if allowed == 0 {
		l.log.Warn("rate limit exceeded",
			zap.String("key", key),
			zap.Float64("requests_per_second", l.config.RequestsPerSecond),
			zap.Int("burst_capacity", l.config.BurstCapacity),
		)
		return false
	}

	return true
}

// Message describes the limit for 429 responses.
func (l *Limiter) Message() string {
	return fmt.Sprintf("Rate limit exceeded: %.2f requests/second (burst capacity: %d)",
		l.config.RequestsPerSecond, l.config.BurstCapacity)
}

// bucketTTLSeconds keeps a bucket alive long enough to refill completely.
func (l *Limiter) bucketTTLSeconds() int {
	if l.config.RequestsPerSecond <= 0 {
		return 60
	}
	ttl := int(float64(l.config.BurstCapacity)/l.config.RequestsPerSecond) + 1
	if ttl < 60 {
		return 60
	}
	return ttl
}
