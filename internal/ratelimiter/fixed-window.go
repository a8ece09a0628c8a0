package ratelimiter

import (
	"sync"
	"time"
)

// FixedWindowRateLimiter allows limit requests per key per window. Counters
// are dropped together at the end of every window.
type FixedWindowRateLimiter struct {
	sync.Mutex
	clients map[string]int //string:UserIP, int count
	limit   int
	window  time.Duration
	stop    chan struct{}
	once    sync.Once
}

func NewFixedWindowLimiter(limit int, window time.Duration) *FixedWindowRateLimiter {
	rl := &FixedWindowRateLimiter{
		clients: make(map[string]int),
		limit:   limit,
		window:  window,
		stop:    make(chan struct{}),
	}
	go rl.cleanup()
	return rl
}

func (rl *FixedWindowRateLimiter) cleanup() {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			rl.Lock()
			rl.clients = make(map[string]int) // reset all
			rl.Unlock()
		case <-rl.stop:
			return
		}
	}
}

// Allow counts one request for key. When the key is over its limit it
// returns false and how long the caller should wait.
func (rl *FixedWindowRateLimiter) Allow(key string) (bool, time.Duration) {
	rl.Lock()
	defer rl.Unlock()

	if rl.clients[key] >= rl.limit {
		return false, rl.window
	}
	rl.clients[key]++
	return true, 0
}

// Stop ends the reset loop.
func (rl *FixedWindowRateLimiter) Stop() {
	rl.once.Do(func() { close(rl.stop) })
}
