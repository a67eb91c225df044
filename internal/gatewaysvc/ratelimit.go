package gatewaysvc

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// RateLimiter is a Redis-backed token bucket, adapted from the teacher's
// RateLimitService: each client gets maxRequests tokens that refill every
// windowSeconds. Redis is repurposed here strictly for this rate-limit
// bucket, never for the job status map (SPEC_FULL.md §5).
type RateLimiter struct {
	redisClient   *redis.Client
	enabled       bool
	maxRequests   int
	windowSeconds int
	log           zerolog.Logger
}

// NewRateLimiter builds a RateLimiter from already-loaded config values.
func NewRateLimiter(redisClient *redis.Client, enabled bool, maxRequests, windowSeconds int, log zerolog.Logger) *RateLimiter {
	return &RateLimiter{
		redisClient:   redisClient,
		enabled:       enabled,
		maxRequests:   maxRequests,
		windowSeconds: windowSeconds,
		log:           log,
	}
}

// Allow checks, and if under the limit, consumes one token for clientID.
// Fails open (returns true) on Redis errors so an outage never blocks the
// trigger endpoint.
func (r *RateLimiter) Allow(ctx context.Context, clientID string) (allowed bool, remaining int64, resetSeconds int64) {
	if !r.enabled {
		return true, int64(r.maxRequests), 0
	}

	key := "rate_limit:" + clientID
	now := time.Now().Unix()

	count, errCount := r.redisClient.HGet(ctx, key, "count").Int()
	resetTime, errReset := r.redisClient.HGet(ctx, key, "resetTime").Int64()

	if errCount != nil || errReset != nil || now >= resetTime {
		pipe := r.redisClient.Pipeline()
		pipe.HSet(ctx, key, "count", 1)
		pipe.HSet(ctx, key, "resetTime", now+int64(r.windowSeconds))
		pipe.Expire(ctx, key, time.Duration(r.windowSeconds+10)*time.Second)
		if _, err := pipe.Exec(ctx); err != nil {
			r.log.Error().Err(err).Str("client_id", clientID).Msg("rate limiter init failed, failing open")
			return true, int64(r.maxRequests), 0
		}
		return true, int64(r.maxRequests - 1), int64(r.windowSeconds)
	}

	if count < r.maxRequests {
		if err := r.redisClient.HIncrBy(ctx, key, "count", 1).Err(); err != nil {
			r.log.Error().Err(err).Str("client_id", clientID).Msg("rate limiter increment failed, failing open")
			return true, int64(r.maxRequests - count), resetTime - now
		}
		return true, int64(r.maxRequests - count - 1), resetTime - now
	}

	return false, 0, resetTime - now
}
