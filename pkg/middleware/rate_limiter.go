package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// SubmissionRateLimiter throttles complaint submissions per user. Redis
// being down must never block citizens from filing, so every redis failure
// fails open.
type SubmissionRateLimiter struct {
	client       *redis.Client
	log          *logrus.Logger
	maxPerMinute int
}

// NewSubmissionRateLimiter creates a limiter allowing maxPerMinute
// submissions per user per minute.
func NewSubmissionRateLimiter(client *redis.Client, log *logrus.Logger, maxPerMinute int) *SubmissionRateLimiter {
	if maxPerMinute < 1 {
		maxPerMinute = 5
	}
	return &SubmissionRateLimiter{client: client, log: log, maxPerMinute: maxPerMinute}
}

// Limit is the gin middleware enforcing the per-user submission budget.
func (rl *SubmissionRateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			c.Abort()
			return
		}

		key := fmt.Sprintf("complaint_rate:%v", userID)

		if !rl.allow(key) {
			reset := rl.resetTime(key)
			c.Header("X-RateLimit-Limit", strconv.Itoa(rl.maxPerMinute))
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("X-RateLimit-Reset", strconv.FormatInt(reset.Unix(), 10))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":   "Submission rate limit exceeded",
				"message": fmt.Sprintf("Too many complaints filed. Try again in %d seconds.", int(time.Until(reset).Seconds())),
			})
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.maxPerMinute))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(rl.remaining(key)))
		c.Next()
	}
}

func (rl *SubmissionRateLimiter) allow(key string) bool {
	if rl.client == nil {
		return true
	}

	ctx := context.Background()
	val, err := rl.client.Get(ctx, key).Result()
	if err != nil && err != redis.Nil {
		return true
	}

	currentCount := 0
	if err == nil {
		currentCount, _ = strconv.Atoi(val)
	}

	if currentCount >= rl.maxPerMinute {
		return false
	}

	pipe := rl.client.Pipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, time.Minute)
	if _, err := pipe.Exec(ctx); err != nil {
		rl.log.WithError(err).Warn("submission rate limiter update failed")
	}

	return true
}

func (rl *SubmissionRateLimiter) remaining(key string) int {
	if rl.client == nil {
		return rl.maxPerMinute
	}

	val, err := rl.client.Get(context.Background(), key).Result()
	if err != nil {
		return rl.maxPerMinute
	}

	currentCount, _ := strconv.Atoi(val)
	remaining := rl.maxPerMinute - currentCount
	if remaining < 0 {
		remaining = 0
	}
	return remaining
}

func (rl *SubmissionRateLimiter) resetTime(key string) time.Time {
	if rl.client == nil {
		return time.Now()
	}

	ttl, err := rl.client.TTL(context.Background(), key).Result()
	if err != nil || ttl < 0 {
		return time.Now().Add(time.Minute)
	}
	return time.Now().Add(ttl)
}
