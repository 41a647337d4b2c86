package app

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nutrition/internal/cache"
	"nutrition/internal/config"
)

func TestNewApplicationWithoutBackends(t *testing.T) {
	a, err := NewApplication(context.Background(), config.Config{Port: "0"}, zerolog.Nop())
	require.NoError(t, err)
	assert.Nil(t, a.dbPool)
	assert.Nil(t, a.cache)
	assert.NotNil(t, a.srv)
	a.Shutdown(context.Background())
}

func TestNewApplicationWithAuthUsesMemoryCache(t *testing.T) {
	cfg := config.Config{
		Port:            "0",
		SupabaseURL:     "https://example.supabase.co",
		SupabaseAnonKey: "anon",
		VerifyCacheTTL:  time.Second,
	}

	a, err := NewApplication(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { a.Shutdown(context.Background()) })

	_, ok := a.cache.(*cache.Memory)
	assert.True(t, ok)
}

func TestNewApplicationBadRedisURL(t *testing.T) {
	cfg := config.Config{
		SupabaseURL:     "https://example.supabase.co",
		SupabaseAnonKey: "anon",
		RedisURL:        "://nope",
	}

	_, err := NewApplication(context.Background(), cfg, zerolog.Nop())
	assert.Error(t, err)
}
