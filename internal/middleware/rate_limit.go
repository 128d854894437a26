package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/college-order-service/internal/cache"
	"github.com/guttosm/college-order-service/internal/domain/dto"
	"github.com/guttosm/college-order-service/internal/i18n"
	"github.com/guttosm/college-order-service/internal/metrics"
	"golang.org/x/time/rate"
)

const rateLimiterCapacity = 50000

// RateLimiter hands each client a token bucket refilled at limit tokens
// per window, bursting up to limit. Idle buckets age out of the cache.
type RateLimiter struct {
	limit   int
	window  time.Duration
	every   rate.Limit
	buckets *cache.Sharded[*rate.Limiter]
	mu      sync.Mutex
}

// NewRateLimiter creates a limiter allowing limit requests per window.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	if limit <= 0 {
		limit = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimiter{
		limit:   limit,
		window:  window,
		every:   rate.Every(window / time.Duration(limit)),
		buckets: cache.NewSharded[*rate.Limiter]("rate_limit", rateLimiterCapacity, 2*window, 16),
	}
}

func (rl *RateLimiter) bucket(id string) *rate.Limiter {
	if b, ok := rl.buckets.Get(id); ok {
		return b
	}
	rl.mu.Lock()
	defer rl.mu.Unlock()
	if b, ok := rl.buckets.Get(id); ok {
		return b
	}
	b := rate.NewLimiter(rl.every, rl.limit)
	rl.buckets.Set(id, b)
	return b
}

// allow takes a token for id and reports what is left.
func (rl *RateLimiter) allow(id string) (bool, int) {
	b := rl.bucket(id)
	ok := b.Allow()
	remaining := int(math.Floor(b.Tokens()))
	if remaining < 0 {
		remaining = 0
	}
	return ok, remaining
}

// retryAfter is the time until one token is back, in whole seconds.
func (rl *RateLimiter) retryAfter() string {
	secs := int(math.Ceil((rl.window / time.Duration(rl.limit)).Seconds()))
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}

// RateLimit limits requests per client IP.
func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		rl.handle(c, "ip", "ip:"+c.ClientIP())
	}
}

// UserRateLimit limits admin routes per authenticated subject, falling
// back to the client IP.
func (rl *RateLimiter) UserRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if subject := GetAdminSubject(c); subject != "" {
			rl.handle(c, "admin", "admin:"+subject)
			return
		}
		rl.handle(c, "ip", "ip:"+c.ClientIP())
	}
}

func (rl *RateLimiter) handle(c *gin.Context, scope, id string) {
	ok, remaining := rl.allow(id)
	c.Header("X-RateLimit-Limit", strconv.Itoa(rl.limit))
	c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
	if !ok {
		metrics.RecordRateLimited(scope)
		c.Header("Retry-After", rl.retryAfter())
		abortWithKey(c, http.StatusTooManyRequests, dto.ErrCodeRateLimit, i18n.ErrKeyRateLimitExceeded)
		return
	}
	c.Next()
}

// Stop ends the bucket cache cleanup.
func (rl *RateLimiter) Stop() {
	rl.buckets.Stop()
}
