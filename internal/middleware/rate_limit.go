// internal/middleware/rate_limit.go
package middleware

import (
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/medolina/medolina-backend/internal/utils"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter is the token-bucket limiter applied to the whole API.
type RateLimiter struct {
	visitors map[string]*visitor
	mtx      sync.Mutex
	rate     rate.Limit
	burst    int
}

func NewRateLimiter(r rate.Limit, b int) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		rate:     r,
		burst:    b,
	}

	// Clean up old visitors every minute
	go rl.cleanupVisitors()

	return rl
}

func (rl *RateLimiter) cleanupVisitors() {
	for {
		time.Sleep(time.Minute)
		rl.mtx.Lock()
		for ip, v := range rl.visitors {
			if time.Since(v.lastSeen) > 3*time.Minute {
				delete(rl.visitors, ip)
			}
		}
		rl.mtx.Unlock()
	}
}

func (rl *RateLimiter) getVisitor(ip string) *rate.Limiter {
	rl.mtx.Lock()
	defer rl.mtx.Unlock()

	v, exists := rl.visitors[ip]
	if !exists {
		limiter := rate.NewLimiter(rl.rate, rl.burst)
		rl.visitors[ip] = &visitor{limiter, time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		limiter := rl.getVisitor(c.ClientIP())

		if !limiter.Allow() {
			c.Header("Retry-After", "1")
			c.JSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"error":   "Rate limit exceeded. Please try again later.",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// FixedWindowLimiter counts requests per client IP inside a fixed window and
// rejects everything past the cap until the window rolls over. The auth
// endpoints run behind a 15-minute / 5-request instance of this; rejections
// carry a Retry-After header with the seconds left in the window.
type FixedWindowLimiter struct {
	window time.Duration
	max    int

	mtx     sync.Mutex
	windows map[string]*windowState
	now     func() time.Time
}

type windowState struct {
	start time.Time
	count int
}

func NewFixedWindowLimiter(window time.Duration, max int) *FixedWindowLimiter {
	fl := &FixedWindowLimiter{
		window:  window,
		max:     max,
		windows: make(map[string]*windowState),
		now:     time.Now,
	}

	go fl.cleanupWindows()

	return fl
}

func (fl *FixedWindowLimiter) cleanupWindows() {
	for {
		time.Sleep(fl.window)
		fl.mtx.Lock()
		for ip, w := range fl.windows {
			if fl.now().Sub(w.start) > fl.window {
				delete(fl.windows, ip)
			}
		}
		fl.mtx.Unlock()
	}
}

// Allow reports whether ip may proceed, and on rejection how many seconds
// remain until the window resets.
func (fl *FixedWindowLimiter) Allow(ip string) (allowed bool, retryAfterSeconds int) {
	fl.mtx.Lock()
	defer fl.mtx.Unlock()

	now := fl.now()
	w, exists := fl.windows[ip]
	if !exists || now.Sub(w.start) >= fl.window {
		fl.windows[ip] = &windowState{start: now, count: 1}
		return true, 0
	}

	if w.count >= fl.max {
		remaining := fl.window - now.Sub(w.start)
		return false, int(math.Ceil(remaining.Seconds()))
	}

	w.count++
	return true, 0
}

func (fl *FixedWindowLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, retryAfter := fl.Allow(c.ClientIP())
		if !allowed {
			utils.TooManyRequestsResponse(c, retryAfter)
			c.Abort()
			return
		}
		c.Next()
	}
}
