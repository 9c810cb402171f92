package middleware

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"openinterview/pkg/logger"
)

func newTestLimiter(limit int, window time.Duration) *ClientRateLimiter {
	log := logger.New(logger.Config{Level: "error", Format: logger.JSON, Service: "test"})
	return NewClientRateLimiter(limit, window, nil, log)
}

func TestAllowWithinLimit(t *testing.T) {
	limiter := newTestLimiter(3, time.Minute)
	defer limiter.Stop()

	for i := 0; i < 3; i++ {
		if !limiter.Allow("client-a") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if limiter.Allow("client-a") {
		t.Error("request over the limit should be rejected")
	}
}

func TestAllowKeysAreIndependent(t *testing.T) {
	limiter := newTestLimiter(1, time.Minute)
	defer limiter.Stop()

	if !limiter.Allow("client-a") {
		t.Fatal("first request for client-a should be allowed")
	}
	if !limiter.Allow("client-b") {
		t.Error("client-b must not be throttled by client-a's usage")
	}
}

func TestAllowEmptyKeyBypasses(t *testing.T) {
	limiter := newTestLimiter(1, time.Minute)
	defer limiter.Stop()

	for i := 0; i < 5; i++ {
		if !limiter.Allow("") {
			t.Fatal("empty key must bypass the limiter")
		}
	}
}

func TestAllowWindowExpiry(t *testing.T) {
	limiter := newTestLimiter(1, 30*time.Millisecond)
	defer limiter.Stop()

	if !limiter.Allow("client-a") {
		t.Fatal("first request should be allowed")
	}
	if limiter.Allow("client-a") {
		t.Fatal("second request inside the window should be rejected")
	}

	time.Sleep(50 * time.Millisecond)

	if !limiter.Allow("client-a") {
		t.Error("request after the window elapsed should be allowed")
	}
}

func TestAllowConcurrentBurstStaysAtLimit(t *testing.T) {
	const limit = 5
	const attempts = 50

	limiter := newTestLimiter(limit, time.Minute)
	defer limiter.Stop()

	var allowed int64
	var wg sync.WaitGroup
	start := make(chan struct{})

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			if limiter.Allow("client-a") {
				atomic.AddInt64(&allowed, 1)
			}
		}()
	}

	close(start)
	wg.Wait()

	if allowed != limit {
		t.Errorf("expected exactly %d admitted requests, got %d", limit, allowed)
	}
}
