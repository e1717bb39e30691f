package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mroshb/raffle_api/pkg/errors"
	"golang.org/x/time/rate"
)

// RateLimiter implements a per-IP token bucket limiter
type RateLimiter struct {
	ipLimits map[string]*ipLimit
	mu       sync.Mutex

	ipMaxRequests int
	window        time.Duration
	stop          chan struct{}
	stopOnce      sync.Once
}

type ipLimit struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter allows ipMaxRequests per window for each client IP
func NewRateLimiter(ipMaxRequests int, window time.Duration) *RateLimiter {
	if ipMaxRequests < 1 {
		ipMaxRequests = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	rl := &RateLimiter{
		ipLimits:      make(map[string]*ipLimit),
		ipMaxRequests: ipMaxRequests,
		window:        window,
		stop:          make(chan struct{}),
	}

	// Start cleanup goroutine
	go rl.cleanup(5 * time.Minute)

	return rl
}

// CheckIPLimit reports whether the IP may make another request
func (rl *RateLimiter) CheckIPLimit(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	limit, exists := rl.ipLimits[ip]
	if !exists {
		every := rate.Every(rl.window / time.Duration(rl.ipMaxRequests))
		limit = &ipLimit{limiter: rate.NewLimiter(every, rl.ipMaxRequests)}
		rl.ipLimits[ip] = limit
	}
	limit.lastSeen = time.Now()

	return limit.limiter.Allow()
}

// Middleware rejects requests over the limit with 429
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.CheckIPLimit(c.ClientIP()) {
			abortWithError(c, errors.New(errors.ErrCodeRateLimitExceeded, "Too many requests, please try later."))
			return
		}
		c.Next()
	}
}

// cleanup removes limiters idle for longer than a window
func (rl *RateLimiter) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.mu.Lock()
			now := time.Now()
			for ip, limit := range rl.ipLimits {
				if now.Sub(limit.lastSeen) > rl.window {
					delete(rl.ipLimits, ip)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// Stop ends the cleanup goroutine
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

// Reset clears all rate limits (useful for testing)
func (rl *RateLimiter) Reset() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.ipLimits = make(map[string]*ipLimit)
}
