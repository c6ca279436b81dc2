package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// slidingWindow 按客户端 IP 记录窗口内的尝试时间
type slidingWindow struct {
	mu          sync.Mutex
	maxAttempts int
	window      time.Duration
	hits        map[string][]time.Time
}

func newSlidingWindow(maxAttempts int, window time.Duration) *slidingWindow {
	return &slidingWindow{
		maxAttempts: maxAttempts,
		window:      window,
		hits:        make(map[string][]time.Time),
	}
}

// allow 记录一次尝试，超出上限返回 false（被拒绝的尝试不计数）
func (w *slidingWindow) allow(key string, now time.Time) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	ts := prune(w.hits[key], now.Add(-w.window))
	if len(ts) >= w.maxAttempts {
		w.hits[key] = ts
		return false
	}
	w.hits[key] = append(ts, now)
	return true
}

// sweep 清理过期记录
func (w *slidingWindow) sweep(now time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()

	cutoff := now.Add(-w.window)
	for key, ts := range w.hits {
		ts = prune(ts, cutoff)
		if len(ts) == 0 {
			delete(w.hits, key)
		} else {
			w.hits[key] = ts
		}
	}
}

func prune(ts []time.Time, cutoff time.Time) []time.Time {
	kept := ts[:0]
	for _, t := range ts {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept
}

// LoginRateLimit 登录接口限流中间件
// 每 IP 在 window 内最多 maxAttempts 次尝试，超过则返回 429
func LoginRateLimit(maxAttempts int, window time.Duration) gin.HandlerFunc {
	limiter := newSlidingWindow(maxAttempts, window)
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for now := range ticker.C {
			limiter.sweep(now)
		}
	}()

	return func(c *gin.Context) {
		if !limiter.allow(c.ClientIP(), time.Now()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many login attempts, please try again later",
			})
			return
		}
		c.Next()
	}
}
