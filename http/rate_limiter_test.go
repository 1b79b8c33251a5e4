package http

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newManualLimiter(t *testing.T, capacity int, refill time.Duration) (*RateLimiter, *time.Time) {
	t.Helper()
	rl := NewRateLimiter(capacity, refill)
	t.Cleanup(rl.Stop)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }
	return rl, &now
}

func TestRateLimiter_BurstThenRefill(t *testing.T) {
	rl, now := newManualLimiter(t, 5, time.Minute)

	for i := 0; i < 5; i++ {
		assert.True(t, rl.Allow("10.0.0.1"), "request %d", i)
	}
	assert.False(t, rl.Allow("10.0.0.1"))

	// one token every 12s
	*now = now.Add(13 * time.Second)
	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"))

	*now = now.Add(time.Minute)
	for i := 0; i < 5; i++ {
		assert.True(t, rl.Allow("10.0.0.1"))
	}
}

func TestRateLimiter_PerClient(t *testing.T) {
	rl, _ := newManualLimiter(t, 1, time.Minute)

	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.2"))
}

func TestRateLimiter_Cleanup(t *testing.T) {
	rl, now := newManualLimiter(t, 1, time.Minute)
	rl.Allow("10.0.0.1")

	*now = now.Add(2 * time.Hour)
	rl.cleanup()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.Empty(t, rl.clients)
}

func TestRateLimiter_StopTwice(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	assert.NotPanics(t, func() {
		rl.Stop()
		rl.Stop()
	})
}
