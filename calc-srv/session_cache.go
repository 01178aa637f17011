package main

import (
	"sync"

	"calc-build-go/model"

	"github.com/segmentio/fasthash/fnv1a"
)

const kSessionLockStripes = 64

// Live sessions keyed by the fnv1a hash of their id. Entries hold copies so a
// caller can't mutate the cached row.
type sessionCache struct {
	mu    sync.Mutex
	items map[uint64]model.Session
}

func newSessionCache() *sessionCache {
	return &sessionCache{items: map[uint64]model.Session{}}
}

func (c *sessionCache) Get(id string) (*model.Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.items[fnv1a.HashString64(id)]
	if !ok || s.ID != id {
		return nil, false
	}
	return &s, true
}

func (c *sessionCache) Put(s *model.Session) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[fnv1a.HashString64(s.ID)] = *s
}

func (c *sessionCache) Evict(ids ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range ids {
		key := fnv1a.HashString64(id)
		if s, ok := c.items[key]; ok && s.ID == id {
			delete(c.items, key)
		}
	}
}

func (c *sessionCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

var (
	gSessionCache = newSessionCache()
	// Serializes evaluations against the same session.
	gSessionLocks [kSessionLockStripes]sync.Mutex
)

func lockSession(id string) func() {
	mu := &gSessionLocks[fnv1a.HashString64(id)%kSessionLockStripes]
	mu.Lock()
	return mu.Unlock
}
