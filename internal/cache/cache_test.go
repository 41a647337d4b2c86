package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashTokenStable(t *testing.T) {
	assert.Equal(t, HashToken("abc"), HashToken("abc"))
	assert.NotEqual(t, HashToken("abc"), HashToken("abd"))
	assert.Len(t, HashToken("abc"), 64)
}

func TestMemorySetGetDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(time.Minute)
	t.Cleanup(func() { _ = m.Close() })

	_, ok, err := m.Get(ctx, "token")
	require.NoError(t, err)
	assert.False(t, ok)

	entry := Entry{UserID: "u1", Email: "ana@example.com", DisplayName: "Ana"}
	require.NoError(t, m.Set(ctx, "token", entry, time.Minute))

	got, ok, err := m.Get(ctx, "token")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, entry, *got)
	assert.Equal(t, 1, m.Len())

	require.NoError(t, m.Delete(ctx, "token"))
	_, ok, _ = m.Get(ctx, "token")
	assert.False(t, ok)
}

func TestMemoryExpiry(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(time.Minute)
	t.Cleanup(func() { _ = m.Close() })

	require.NoError(t, m.Set(ctx, "token", Entry{UserID: "u1"}, 10*time.Millisecond))
	time.Sleep(30 * time.Millisecond)

	_, ok, err := m.Get(ctx, "token")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNewRedisRejectsBadURL(t *testing.T) {
	_, err := NewRedis("://nope", "nutrition")
	assert.Error(t, err)
}
