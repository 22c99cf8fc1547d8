package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func newTestLimiter(limit int) *RateLimiter {
	logger := zerolog.Nop()
	return NewRateLimiter(limit, &logger)
}

func TestRateLimiter_Allow(t *testing.T) {
	rl := newTestLimiter(3)
	for i := range 3 {
		assert.True(t, rl.Allow("10.0.0.1"), "request %d", i)
	}
	assert.False(t, rl.Allow("10.0.0.1"))

	// Other IPs have their own budget.
	assert.True(t, rl.Allow("10.0.0.2"))
	assert.Equal(t, 2, rl.Visitors())
}

func TestRateLimiter_WindowRefill(t *testing.T) {
	rl := newTestLimiter(1)
	now := time.Now()

	assert.True(t, rl.allowAt("ip", now))
	assert.False(t, rl.allowAt("ip", now.Add(30*time.Second)))
	assert.True(t, rl.allowAt("ip", now.Add(time.Minute)))
}

func TestRateLimiter_Sweep(t *testing.T) {
	rl := newTestLimiter(5)
	now := time.Now()
	rl.allowAt("old", now.Add(-time.Hour))
	rl.allowAt("fresh", now)

	rl.sweep(now)
	assert.Equal(t, 1, rl.Visitors())
}

func TestRateLimiter_RunStops(t *testing.T) {
	rl := newTestLimiter(5)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		rl.Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop")
	}
}

func TestRateLimiter_Concurrent(t *testing.T) {
	rl := newTestLimiter(50)
	var allowed atomic.Int64
	var wg sync.WaitGroup
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if rl.Allow("shared") {
				allowed.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(50), allowed.Load())
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name      string
		remote    string
		forwarded string
		want      string
	}{
		{"remote addr host", "192.0.2.1:1234", "", "192.0.2.1"},
		{"remote addr without port", "192.0.2.1", "", "192.0.2.1"},
		{"forwarded single", "192.0.2.1:1234", "203.0.113.7", "203.0.113.7"},
		{"forwarded chain", "192.0.2.1:1234", "203.0.113.7, 10.0.0.1", "203.0.113.7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remote
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			assert.Equal(t, tt.want, ClientIP(req))
		})
	}
}

func TestRateLimit_Middleware(t *testing.T) {
	handler := RateLimit(newTestLimiter(2))(okHandler())

	codes := make([]int, 0, 3)
	for range 3 {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/v1/snippets", nil)
		req.RemoteAddr = "192.0.2.1:5555"
		handler.ServeHTTP(w, req)
		codes = append(codes, w.Code)
		if w.Code == http.StatusTooManyRequests {
			assert.Equal(t, "60", w.Header().Get("Retry-After"))
			assert.Contains(t, w.Body.String(), "RATE_LIMITED")
		}
	}
	assert.Equal(t, []int{200, 200, 429}, codes)
}
