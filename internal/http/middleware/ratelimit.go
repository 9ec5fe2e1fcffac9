// Per-client token-bucket rate limiting on golang.org/x/time/rate.
//
// Buckets live in process memory. Behind several replicas a limit at the
// proxy is needed to cap the total.
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	// bucketTTL is how long an untouched bucket survives.
	bucketTTL = 10 * time.Minute
	// sweepEvery is the number of lookups between idle-bucket sweeps.
	sweepEvery = 5000
)

// keyFunc selects the identity used to key a rate-limit bucket.
type keyFunc func(*gin.Context) string

// KeyByClientIP keys buckets by the client address as resolved by Gin
// (honouring the engine's trusted proxies).
func KeyByClientIP() keyFunc {
	return func(c *gin.Context) string { return "ip:" + c.ClientIP() }
}

type bucket struct {
	*rate.Limiter
	seen time.Time
}

// RateLimiter hands out one token bucket per key. Safe for concurrent use.
type RateLimiter struct {
	limit rate.Limit
	burst int
	key   keyFunc
	skip  map[string]bool

	mu      sync.Mutex
	buckets map[string]*bucket
	lookups int
}

// NewRateLimiter allows rps requests per second per key with the given
// burst (at least 1). Requests to the exempt paths are never limited.
func NewRateLimiter(rps float64, burst int, key keyFunc, exempt ...string) *RateLimiter {
	rl := &RateLimiter{
		limit:   rate.Limit(rps),
		burst:   max(burst, 1),
		key:     key,
		skip:    make(map[string]bool, len(exempt)),
		buckets: make(map[string]*bucket),
	}
	for _, p := range exempt {
		rl.skip[p] = true
	}
	return rl
}

// bucketFor returns the bucket for k, creating it on first use. Periodically
// it drops buckets idle for bucketTTL before the lookup.
func (rl *RateLimiter) bucketFor(k string) *rate.Limiter {
	now := time.Now()
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if rl.lookups++; rl.lookups >= sweepEvery {
		rl.lookups = 0
		for id, b := range rl.buckets {
			if now.Sub(b.seen) >= bucketTTL {
				delete(rl.buckets, id)
			}
		}
	}

	b, ok := rl.buckets[k]
	if !ok {
		b = &bucket{Limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.buckets[k] = b
	}
	b.seen = now
	return b.Limiter
}

// Handler rejects requests over the limit with 429 and Retry-After: 1.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.skip[c.Request.URL.Path] || rl.bucketFor(rl.key(c)).Allow() {
			c.Next()
			return
		}
		c.Header("Retry-After", "1")
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"erro":       "Muitas requisições, tente novamente em instantes",
			"request_id": c.Writer.Header().Get(requestIDHeader),
		})
	}
}
