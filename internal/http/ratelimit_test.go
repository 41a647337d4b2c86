package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nutrition/internal/auth"
	"nutrition/internal/cache"
	"nutrition/internal/config"
)

func TestRateLimiterDisabled(t *testing.T) {
	l := newRateLimiter(0)
	assert.Nil(t, l)
	assert.True(t, l.Allow("ip:1", time.Now()))
}

func TestRateLimiterRefills(t *testing.T) {
	l := newRateLimiter(1)
	now := time.Unix(1_700_000_000, 0)

	for i := 0; i < 5; i++ {
		assert.True(t, l.Allow("ip:1", now), "request %d", i)
	}
	assert.False(t, l.Allow("ip:1", now))
	assert.True(t, l.Allow("ip:2", now), "buckets are per key")

	assert.True(t, l.Allow("ip:1", now.Add(time.Second)))
	assert.False(t, l.Allow("ip:1", now.Add(time.Second)))
}

func TestRateLimiterSweepsIdleBuckets(t *testing.T) {
	l := newRateLimiter(1)
	now := time.Unix(1_700_000_000, 0)
	l.Allow("ip:1", now)
	l.Allow("ip:2", now)

	l.Allow("ip:3", now.Add(bucketIdleTTL+time.Second))
	assert.Len(t, l.buckets, 1)
}

func TestRateLimitKey(t *testing.T) {
	mem := cache.NewMemory(time.Minute)
	t.Cleanup(func() { _ = mem.Close() })
	env := newTestEnv(t, func(_ *config.Config, deps *Deps) {
		deps.Verifier = auth.NewVerifier(newBackend(), auth.WithCache(mem, time.Minute))
	})

	request := func(token string) *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.RemoteAddr = "203.0.113.7:5555"
		if token != "" {
			r.AddCookie(accessCookie(token))
		}
		return r
	}

	assert.Equal(t, "ip:203.0.113.7", env.server.rateLimitKey(request("")))
	assert.Equal(t, "ip:203.0.113.7", env.server.rateLimitKey(request("junk-1")), "unverified tokens share the IP bucket")
	assert.Equal(t, "ip:203.0.113.7", env.server.rateLimitKey(request(goodToken)), "not verified yet")

	_, err := env.server.deps.Verifier.Verify(context.Background(), goodToken)
	require.NoError(t, err)
	assert.Equal(t, "user:"+userID, env.server.rateLimitKey(request(goodToken)))
}

func TestClientIPAddress(t *testing.T) {
	assert.Equal(t, "10.0.0.1", clientIPAddress("10.0.0.1:80"))
	assert.Equal(t, "garbage", clientIPAddress("garbage"))
}
