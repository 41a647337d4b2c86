package http

import (
	"net"
	"net/http"
	"sync"
	"time"

	"nutrition/internal/auth"
)

const bucketIdleTTL = 10 * time.Minute

type rateLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*tokenBucket
	rate      float64
	capacity  float64
	lastSweep time.Time
}

type tokenBucket struct {
	tokens     float64
	lastRefill time.Time
}

func newRateLimiter(rate float64) *rateLimiter {
	if rate <= 0 {
		return nil
	}
	capacity := rate * 2
	if capacity < 5 {
		capacity = 5
	}
	return &rateLimiter{
		buckets:  make(map[string]*tokenBucket),
		rate:     rate,
		capacity: capacity,
	}
}

func (l *rateLimiter) Allow(key string, now time.Time) bool {
	if l == nil {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.sweep(now)

	bucket, ok := l.buckets[key]
	if !ok {
		l.buckets[key] = &tokenBucket{
			tokens:     l.capacity - 1,
			lastRefill: now,
		}
		return true
	}

	elapsed := now.Sub(bucket.lastRefill).Seconds()
	if elapsed > 0 {
		bucket.tokens += elapsed * l.rate
		if bucket.tokens > l.capacity {
			bucket.tokens = l.capacity
		}
		bucket.lastRefill = now
	}

	if bucket.tokens < 1 {
		return false
	}

	bucket.tokens--
	return true
}

// sweep drops buckets idle long enough to have refilled completely.
func (l *rateLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < bucketIdleTTL {
		return
	}
	for key, bucket := range l.buckets {
		if now.Sub(bucket.lastRefill) >= bucketIdleTTL {
			delete(l.buckets, key)
		}
	}
	l.lastSweep = now
}

// rateLimitKey buckets a request by user only when its token is already
// known good (cached verification or valid signature). Any other token,
// including junk, falls back to the client IP.
func (s *Server) rateLimitKey(r *http.Request) string {
	token := auth.AccessToken(r)
	if token == "" {
		token = bearerToken(r)
	}
	if token != "" {
		if id, ok := s.deps.Verifier.KnownUserID(r.Context(), token); ok {
			return "user:" + id
		}
	}
	return "ip:" + clientIPAddress(r.RemoteAddr)
}

func clientIPAddress(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}
