// internal/middleware/rate_limit_test.go
package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFixedWindow(window time.Duration, max int) (*FixedWindowLimiter, *time.Time) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := start
	fl := &FixedWindowLimiter{
		window:  window,
		max:     max,
		windows: make(map[string]*windowState),
		now:     func() time.Time { return clock },
	}
	return fl, &clock
}

func TestFixedWindowAllowsUpToMax(t *testing.T) {
	fl, _ := newFixedWindow(15*time.Minute, 5)

	for i := 0; i < 5; i++ {
		allowed, _ := fl.Allow("10.0.0.1")
		require.True(t, allowed, "request %d", i+1)
	}

	allowed, retryAfter := fl.Allow("10.0.0.1")
	assert.False(t, allowed)
	assert.Equal(t, 900, retryAfter)
}

func TestFixedWindowRetryAfterShrinksWithTime(t *testing.T) {
	fl, clock := newFixedWindow(15*time.Minute, 1)

	allowed, _ := fl.Allow("10.0.0.1")
	require.True(t, allowed)

	*clock = clock.Add(10 * time.Minute)
	allowed, retryAfter := fl.Allow("10.0.0.1")
	assert.False(t, allowed)
	assert.Equal(t, 300, retryAfter)
}

func TestFixedWindowResetsAfterWindow(t *testing.T) {
	fl, clock := newFixedWindow(15*time.Minute, 1)

	allowed, _ := fl.Allow("10.0.0.1")
	require.True(t, allowed)
	allowed, _ = fl.Allow("10.0.0.1")
	require.False(t, allowed)

	*clock = clock.Add(15 * time.Minute)
	allowed, _ = fl.Allow("10.0.0.1")
	assert.True(t, allowed, "a fresh window starts once the old one elapses")
}

func TestFixedWindowTracksClientsIndependently(t *testing.T) {
	fl, _ := newFixedWindow(15*time.Minute, 1)

	allowed, _ := fl.Allow("10.0.0.1")
	require.True(t, allowed)
	allowed, _ = fl.Allow("10.0.0.1")
	require.False(t, allowed)

	allowed, _ = fl.Allow("10.0.0.2")
	assert.True(t, allowed, "one client's window must not throttle another")
}
