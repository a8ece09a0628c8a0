package ratelimiter

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowUpToLimit(t *testing.T) {
	rl := NewFixedWindowLimiter(3, time.Hour)
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		ok, _ := rl.Allow("10.0.0.1")
		require.True(t, ok, "request %d", i)
	}
	ok, retry := rl.Allow("10.0.0.1")
	assert.False(t, ok)
	assert.Equal(t, time.Hour, retry)

	ok, _ = rl.Allow("10.0.0.2")
	assert.True(t, ok, "keys are counted separately")
}

func TestWindowResets(t *testing.T) {
	rl := NewFixedWindowLimiter(1, 20*time.Millisecond)
	defer rl.Stop()

	ok, _ := rl.Allow("k")
	require.True(t, ok)
	ok, _ = rl.Allow("k")
	require.False(t, ok)

	assert.Eventually(t, func() bool {
		ok, _ := rl.Allow("k")
		return ok
	}, time.Second, 5*time.Millisecond)
}

func TestConcurrentAllowNeverExceedsLimit(t *testing.T) {
	rl := NewFixedWindowLimiter(50, time.Hour)
	defer rl.Stop()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := rl.Allow("k"); ok {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, allowed)
}
