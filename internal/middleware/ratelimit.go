package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/edustack/campus-backend/internal/config"
	"github.com/edustack/campus-backend/internal/response"
)

// RateLimiter is a fixed-window per-IP counter backed by redis, so the limit
// holds across replicas. It guards the login endpoint, where unauthenticated
// brute force is the concern.
type RateLimiter struct {
	rdb    *redis.Client
	limit  int64
	window time.Duration
}

// NewRateLimiter allows limit requests per window from each client IP.
func NewRateLimiter(rdb *redis.Client, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{rdb: rdb, limit: int64(limit), window: window}
}

// Middleware rejects requests over the limit with 429. Redis being down fails
// open: login must not become unavailable because the cache is.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := config.CacheKey.LoginRateKey(c.ClientIP())

		count, err := rl.rdb.Incr(c.Request.Context(), key).Result()
		if err != nil {
			c.Next()
			return
		}
		if count == 1 {
			rl.rdb.Expire(c.Request.Context(), key, rl.window)
		}

		if count > rl.limit {
			response.AbortFail(c, http.StatusTooManyRequests, response.ErrRateLimitExceeded)
			return
		}
		c.Next()
	}
}
