package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimiter is a per-client token bucket. Buckets refill continuously at
// rate tokens per second up to bucketSize; idle buckets are pruned so the
// maps do not grow without bound.
type RateLimiter struct {
	mu         sync.Mutex
	tokens     map[string]float64
	lastRefill map[string]time.Time
	rate       float64
	bucketSize float64
	maxIdle    time.Duration
}

// NewRateLimiter creates a limiter allowing rate requests per second with
// bursts up to bucketSize.
func NewRateLimiter(rate, bucketSize float64) *RateLimiter {
	return &RateLimiter{
		tokens:     make(map[string]float64),
		lastRefill: make(map[string]time.Time),
		rate:       rate,
		bucketSize: bucketSize,
		maxIdle:    10 * time.Minute,
	}
}

// RateLimit is the gin middleware enforcing the limit per client IP.
func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Please try again later.",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// Allow consumes one token for the client if available.
func (rl *RateLimiter) Allow(client string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	rl.pruneLocked(now)

	last, exists := rl.lastRefill[client]
	if !exists {
		rl.tokens[client] = rl.bucketSize
	} else {
		elapsed := now.Sub(last).Seconds()
		rl.tokens[client] = min(rl.bucketSize, rl.tokens[client]+elapsed*rl.rate)
	}
	rl.lastRefill[client] = now

	if rl.tokens[client] < 1 {
		return false
	}
	rl.tokens[client]--
	return true
}

func (rl *RateLimiter) pruneLocked(now time.Time) {
	for client, last := range rl.lastRefill {
		if now.Sub(last) > rl.maxIdle {
			delete(rl.lastRefill, client)
			delete(rl.tokens, client)
		}
	}
}
