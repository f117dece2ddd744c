package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/pageza/recipebox/backend/internal/logger"
)

var errNoRedis = errors.New("rate limit store not configured")

// RateLimitConfig defines configuration for rate limiting
type RateLimitConfig struct {
	// Window is the time window for rate limiting
	Window time.Duration
	// Limit is the maximum number of requests allowed in the window
	Limit int
	// Key prefix for Redis keys
	KeyPrefix string
}

// RateLimiter handles fixed-window rate limiting using Redis
type RateLimiter struct {
	redis  *redis.Client
	config RateLimitConfig
	now    func() time.Time
}

// NewRateLimiter creates a new rate limiter instance. A nil client lets
// every request through.
func NewRateLimiter(redisClient *redis.Client, config RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		redis:  redisClient,
		config: config,
		now:    time.Now,
	}
}

// Middleware enforces the limit per client IP.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, remaining, resetTime, err := rl.IsAllowed(c.Request.Context(), c.ClientIP())
		if err != nil {
			if !errors.Is(err, errNoRedis) {
				logger.For("ratelimit").WithError(err).Warn("Rate limit check failed")
			}
			c.Header("X-RateLimit-Error", "rate limit check failed")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.config.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

		if !allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":                "rate limit exceeded",
				"message":              fmt.Sprintf("You have exceeded the rate limit of %d requests per %v", rl.config.Limit, rl.config.Window),
				"rate_limit_remaining": remaining,
				"rate_limit_reset":     resetTime.Unix(),
				"retry_after":          int(resetTime.Sub(rl.now()).Seconds()),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// IsAllowed counts a request from client and reports whether it fits in the
// current window.
// Returns: allowed, remaining requests, reset time, error
func (rl *RateLimiter) IsAllowed(ctx context.Context, client string) (bool, int, time.Time, error) {
	if rl.redis == nil {
		return true, rl.config.Limit, time.Time{}, errNoRedis
	}
	key, windowStart := rl.key(client)

	pipe := rl.redis.Pipeline()
	incrCmd := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, rl.config.Window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, time.Time{}, err
	}

	count := int(incrCmd.Val())
	return count <= rl.config.Limit, rl.remaining(count), windowStart.Add(rl.config.Window), nil
}

// GetRemainingRequests returns the number of requests client has left in
// the current window without counting one.
func (rl *RateLimiter) GetRemainingRequests(ctx context.Context, client string) (int, time.Time, error) {
	if rl.redis == nil {
		return rl.config.Limit, time.Time{}, errNoRedis
	}
	key, windowStart := rl.key(client)

	count, err := rl.redis.Get(ctx, key).Int()
	if err == redis.Nil {
		return rl.config.Limit, windowStart.Add(rl.config.Window), nil
	}
	if err != nil {
		return 0, time.Time{}, err
	}
	return rl.remaining(count), windowStart.Add(rl.config.Window), nil
}

// Name is the limiter's key prefix without the shared "rate_limit:" part.
func (rl *RateLimiter) Name() string {
	return strings.TrimPrefix(rl.config.KeyPrefix, "rate_limit:")
}

// RateLimitStatus is what a client has left under one limiter.
type RateLimitStatus struct {
	Limit     int   `json:"limit"`
	Remaining int   `json:"remaining"`
	Reset     int64 `json:"reset,omitempty"`
}

// Quota reports the calling client's remaining requests under each limiter
// without spending any. Without redis every limiter reports its full limit
// and enforced is false.
func Quota(limiters ...*RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		enforced := true
		out := make(map[string]RateLimitStatus, len(limiters))
		for _, rl := range limiters {
			remaining, reset, err := rl.GetRemainingRequests(c.Request.Context(), c.ClientIP())
			switch {
			case errors.Is(err, errNoRedis):
				enforced = false
			case err != nil:
				logger.For("ratelimit").WithError(err).Warnf("Reading %s quota failed", rl.Name())
				c.JSON(http.StatusServiceUnavailable, gin.H{"error": "rate limit store unavailable"})
				return
			}
			status := RateLimitStatus{Limit: rl.config.Limit, Remaining: remaining}
			if !reset.IsZero() {
				status.Reset = reset.Unix()
			}
			out[rl.Name()] = status
		}
		c.JSON(http.StatusOK, gin.H{"enforced": enforced, "rate_limits": out})
	}
}

func (rl *RateLimiter) key(client string) (string, time.Time) {
	windowStart := rl.now().Truncate(rl.config.Window)
	return fmt.Sprintf("%s:%s:%d", rl.config.KeyPrefix, client, windowStart.Unix()), windowStart
}

func (rl *RateLimiter) remaining(count int) int {
	if remaining := rl.config.Limit - count; remaining > 0 {
		return remaining
	}
	return 0
}

func perMinute(redisClient *redis.Client, limit int, prefix string) *RateLimiter {
	return NewRateLimiter(redisClient, RateLimitConfig{
		Window:    time.Minute,
		Limit:     limit,
		KeyPrefix: "rate_limit:" + prefix,
	})
}

// NewGroceryWriteRateLimiter limits list creation and recipe changes (20 per minute)
func NewGroceryWriteRateLimiter(redisClient *redis.Client) *RateLimiter {
	return perMinute(redisClient, 20, "grocery_write")
}

// NewItemToggleRateLimiter limits checking items off (60 per minute)
func NewItemToggleRateLimiter(redisClient *redis.Client) *RateLimiter {
	return perMinute(redisClient, 60, "item_toggle")
}

// NewItemUpdateRateLimiter limits item edits (30 per minute)
func NewItemUpdateRateLimiter(redisClient *redis.Client) *RateLimiter {
	return perMinute(redisClient, 30, "item_update")
}

// NewDeleteRateLimiter limits list deletion (10 per minute)
func NewDeleteRateLimiter(redisClient *redis.Client) *RateLimiter {
	return perMinute(redisClient, 10, "delete")
}

// NewRecipeImportRateLimiter limits recipe imports (10 per minute)
func NewRecipeImportRateLimiter(redisClient *redis.Client) *RateLimiter {
	return perMinute(redisClient, 10, "recipe_import")
}
