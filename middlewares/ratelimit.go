package middlewares

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/RafaelMendes244/RMPedidos/pkg/resp"
)

// RateLimiter throttles order submission per client IP with a small
// fixed quota per minute. It runs before any business validation, so a
// flooded store never pays the pricing cost for abusive traffic.
type RateLimiter struct {
	mu         sync.Mutex
	buckets    map[string]*bucket
	quota      int
	window     time.Duration
	maxBuckets int // cap on tracked IPs, prevents memory exhaustion
}

type bucket struct {
	count    int
	start    time.Time
	lastSeen time.Time
}

func NewRateLimiter(quota int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		buckets:    make(map[string]*bucket),
		quota:      quota,
		window:     window,
		maxBuckets: 100000,
	}
}

// Handler is the gin middleware. A throttled request gets a 429 and a
// message telling the customer to wait a minute.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP(), time.Now()) {
			resp.TooManyRequests(c, "Too many attempts! Wait a minute before placing another order.")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (rl *RateLimiter) allow(ip string, now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.buckets[ip]
	if !ok {
		if len(rl.buckets) >= rl.maxBuckets {
			return false // at capacity, reject new clients
		}
		rl.buckets[ip] = &bucket{count: 1, start: now, lastSeen: now}
		return true
	}

	b.lastSeen = now
	if now.Sub(b.start) >= rl.window {
		b.start = now
		b.count = 1
		return true
	}
	if b.count >= rl.quota {
		return false
	}
	b.count++
	return true
}

// StartCleanup drops buckets idle longer than maxIdle. Returns a stop
// function.
func (rl *RateLimiter) StartCleanup(interval, maxIdle time.Duration) func() {
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				rl.cleanup(time.Now(), maxIdle)
			}
		}
	}()
	return func() { close(done) }
}

func (rl *RateLimiter) cleanup(now time.Time, maxIdle time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for ip, b := range rl.buckets {
		if now.Sub(b.lastSeen) > maxIdle {
			delete(rl.buckets, ip)
		}
	}
}
