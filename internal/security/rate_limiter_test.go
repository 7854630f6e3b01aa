package security

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/promptveil/promptveil/internal/config"
)

func newTestConfig(perMin, burst int, enabled bool) *config.SecurityConfig {
	cfg := &config.SecurityConfig{}
	cfg.RateLimit.Enabled = enabled
	cfg.RateLimit.RequestsPerMin = perMin
	cfg.RateLimit.Burst = burst
	return cfg
}

func TestRateLimiterAllow(t *testing.T) {
	t.Run("WithinBurst", func(t *testing.T) {
		rl := NewRateLimiter(newTestConfig(60, 3, true))
		for i := 0; i < 3; i++ {
			if !rl.Allow("10.0.0.1") {
				t.Fatalf("Request %d within burst denied", i)
			}
		}
	})

	t.Run("OverBurst", func(t *testing.T) {
		rl := NewRateLimiter(newTestConfig(60, 2, true))
		rl.Allow("10.0.0.2")
		rl.Allow("10.0.0.2")
		if rl.Allow("10.0.0.2") {
			t.Error("Request over burst allowed")
		}
	})

	t.Run("ClientsIsolated", func(t *testing.T) {
		rl := NewRateLimiter(newTestConfig(60, 1, true))
		if !rl.Allow("10.0.0.3") {
			t.Fatal("First client denied")
		}
		if !rl.Allow("10.0.0.4") {
			t.Error("Second client throttled by first client's usage")
		}
	})

	t.Run("DisabledAllowsEverything", func(t *testing.T) {
		rl := NewRateLimiter(newTestConfig(1, 1, false))
		for i := 0; i < 10; i++ {
			if !rl.Allow("10.0.0.5") {
				t.Fatal("Disabled limiter denied a request")
			}
		}
	})
}

// Exercises the lastSeen update path from many goroutines at once,
// alongside cleanup scans; meaningful under -race.
func TestConcurrentAllowSameClient(t *testing.T) {
	rl := NewRateLimiter(newTestConfig(6000, 1000, true))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				rl.Allow("10.0.0.1")
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for j := 0; j < 20; j++ {
			rl.CleanupOldLimiters()
		}
	}()
	wg.Wait()

	if !rl.Allow("10.0.0.1") {
		t.Error("Client denied despite ample budget")
	}
}

func TestCleanupOldLimiters(t *testing.T) {
	rl := NewRateLimiter(newTestConfig(60, 5, true))
	rl.Allow("10.0.0.6")
	rl.Allow("10.0.0.7")

	rl.mu.Lock()
	atomic.StoreInt64(&rl.limiters["10.0.0.6"].lastSeen, time.Now().Add(-2*time.Hour).UnixNano())
	rl.mu.Unlock()

	rl.CleanupOldLimiters()

	rl.mu.RLock()
	defer rl.mu.RUnlock()
	if _, stale := rl.limiters["10.0.0.6"]; stale {
		t.Error("Stale limiter not removed")
	}
	if _, fresh := rl.limiters["10.0.0.7"]; !fresh {
		t.Error("Fresh limiter removed")
	}
}
