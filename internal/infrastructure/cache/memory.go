// Package cache memoizes translations so repeated parse runs do not pay for
// the same text twice.
package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"eventbot/internal/ports/output"
)

var _ output.Cache = (*Memory)(nil)

// Memory is a process-local TTL cache.
type Memory struct {
	c *gocache.Cache
}

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{c: gocache.New(ttl, 2*ttl)}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool) {
	v, ok := m.c.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func (m *Memory) Put(_ context.Context, key, value string) {
	m.c.SetDefault(key, value)
}
