package cache

import (
	"context"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// Memory is a process-local Cache backed by ttlcache.
type Memory struct {
	cache *ttlcache.Cache[string, Entry]
}

func NewMemory(defaultTTL time.Duration) *Memory {
	c := ttlcache.New(
		ttlcache.WithTTL[string, Entry](defaultTTL),
		ttlcache.WithDisableTouchOnHit[string, Entry](),
	)
	go c.Start()
	return &Memory{cache: c}
}

func (m *Memory) Get(_ context.Context, token string) (*Entry, bool, error) {
	item := m.cache.Get(HashToken(token))
	if item == nil || item.IsExpired() {
		return nil, false, nil
	}
	entry := item.Value()
	return &entry, true, nil
}

func (m *Memory) Set(_ context.Context, token string, entry Entry, ttl time.Duration) error {
	m.cache.Set(HashToken(token), entry, ttl)
	return nil
}

func (m *Memory) Delete(_ context.Context, token string) error {
	m.cache.Delete(HashToken(token))
	return nil
}

func (m *Memory) Len() int {
	return m.cache.Len()
}

// Close stops the expiry goroutine.
func (m *Memory) Close() error {
	m.cache.Stop()
	return nil
}
