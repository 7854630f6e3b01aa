package security

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/promptveil/promptveil/internal/config"
	"golang.org/x/time/rate"
)

// RateLimiter applies per-client token bucket rate limiting for DoS
// protection on the scan endpoint.
type RateLimiter struct {
	config   *config.SecurityConfig
	limiters map[string]*clientLimiter
	mu       sync.RWMutex
}

type clientLimiter struct {
	limiter *rate.Limiter
	// Unix nanoseconds, updated atomically: refreshed on every Allow
	// while other goroutines hold only the read lock.
	lastSeen int64
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(cfg *config.SecurityConfig) *RateLimiter {
	return &RateLimiter{
		config:   cfg,
		limiters: make(map[string]*clientLimiter),
	}
}

// Allow checks if a request from the given client IP is allowed
func (r *RateLimiter) Allow(clientIP string) bool {
	if !r.config.RateLimit.Enabled {
		return true
	}
	return r.getLimiter(clientIP).Allow()
}

// getLimiter gets or creates the limiter for a client IP
func (r *RateLimiter) getLimiter(clientIP string) *rate.Limiter {
	r.mu.RLock()
	cl, exists := r.limiters[clientIP]
	r.mu.RUnlock()

	if exists {
		atomic.StoreInt64(&cl.lastSeen, time.Now().UnixNano())
		return cl.limiter
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Double-check after acquiring write lock
	if cl, exists := r.limiters[clientIP]; exists {
		atomic.StoreInt64(&cl.lastSeen, time.Now().UnixNano())
		return cl.limiter
	}

	burst := r.config.RateLimit.Burst
	if burst <= 0 {
		burst = r.config.RateLimit.RequestsPerMin
	}
	cl = &clientLimiter{
		limiter:  rate.NewLimiter(rate.Limit(float64(r.config.RateLimit.RequestsPerMin)/60.0), burst),
		lastSeen: time.Now().UnixNano(),
	}
	r.limiters[clientIP] = cl
	return cl.limiter
}

// CleanupOldLimiters removes idle client limiters to prevent unbounded
// growth.
func (r *RateLimiter) CleanupOldLimiters() {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := time.Now().Add(-time.Hour).UnixNano()
	for ip, cl := range r.limiters {
		if atomic.LoadInt64(&cl.lastSeen) < cutoff {
			delete(r.limiters, ip)
		}
	}
}

// StartCleanupRoutine starts a background routine to clean up idle
// limiters.
func (r *RateLimiter) StartCleanupRoutine() {
	go func() {
		ticker := time.NewTicker(30 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			r.CleanupOldLimiters()
		}
	}()
}
