package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/juju/ratelimit"

	"github.com/medicard/patient-record-api/internal/metrics"
	"github.com/medicard/patient-record-api/internal/utils"
)

// RateLimiter keeps a token bucket per client IP. Buckets refill at a fixed
// rate; a full bucket means the client has been idle long enough to forget.
type RateLimiter struct {
	clients  map[string]*ratelimit.Bucket
	mu       sync.RWMutex
	rate     float64
	capacity int64
}

// NewRateLimiter creates a rate limiter with the given refill rate
// (tokens per second) and bucket capacity
func NewRateLimiter(rate float64, capacity int64) *RateLimiter {
	rl := &RateLimiter{
		clients:  make(map[string]*ratelimit.Bucket),
		rate:     rate,
		capacity: capacity,
	}
	go rl.cleanupLoop(30 * time.Minute)
	return rl
}

func (rl *RateLimiter) getBucket(clientIP string) *ratelimit.Bucket {
	rl.mu.RLock()
	bucket, exists := rl.clients[clientIP]
	rl.mu.RUnlock()

	if !exists {
		rl.mu.Lock()
		if bucket, exists = rl.clients[clientIP]; !exists {
			bucket = ratelimit.NewBucketWithRate(rl.rate, rl.capacity)
			rl.clients[clientIP] = bucket
		}
		metrics.RateLimiterBucketsTotal.Set(float64(len(rl.clients)))
		rl.mu.Unlock()
	}

	return bucket
}

// cleanupLoop drops buckets for clients idle long enough to have refilled
func (rl *RateLimiter) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		for ip, bucket := range rl.clients {
			if bucket.Available() == bucket.Capacity() {
				delete(rl.clients, ip)
			}
		}
		metrics.RateLimiterBucketsTotal.Set(float64(len(rl.clients)))
		rl.mu.Unlock()
	}
}

// Middleware rejects requests from clients whose bucket is empty
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		bucket := rl.getBucket(c.ClientIP())

		if bucket.TakeAvailable(1) < 1 {
			c.Header("Retry-After", "60")
			utils.SendTooManyRequestsError(c, "Rate limit exceeded. Please try again later.")
			c.Abort()
			return
		}

		c.Next()
	}
}
