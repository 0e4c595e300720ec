package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

type entry struct {
	raw      []byte // JSON, mismo formato que en Redis
	deadline time.Time
}

func (e entry) expired(now time.Time) bool {
	return !now.Before(e.deadline)
}

// InMemoryCache sustituye a Redis en un único proceso.
// Las claves caducadas se ignoran al leer y una goroutine las purga cada sweepEvery.
type InMemoryCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time

	done     chan struct{}
	stopOnce sync.Once
}

var _ Cache = (*InMemoryCache)(nil)

// NewInMemoryCache: con sweepEvery <= 0 no se lanza la purga periódica.
func NewInMemoryCache(defaultTTL, sweepEvery time.Duration) *InMemoryCache {
	c := &InMemoryCache{
		entries: make(map[string]entry),
		ttl:     defaultTTL,
		now:     func() time.Time { return time.Now().UTC() },
		done:    make(chan struct{}),
	}
	if sweepEvery > 0 {
		go c.sweepLoop(sweepEvery)
	}
	return c
}

func (c *InMemoryCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	c.mu.RLock()
	e, found := c.entries[key]
	c.mu.RUnlock()

	if !found || e.expired(c.now()) {
		return false, nil
	}
	if err := json.Unmarshal(e.raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *InMemoryCache) Set(_ context.Context, key string, val interface{}, ttlSecs int) error {
	raw, err := json.Marshal(val)
	if err != nil {
		return err
	}
	e := entry{raw: raw, deadline: c.now().Add(ttlOrDefault(ttlSecs, c.ttl))}

	c.mu.Lock()
	c.entries[key] = e
	c.mu.Unlock()
	return nil
}

func (c *InMemoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}

// Len cuenta las claves guardadas, caducadas o no.
func (c *InMemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stop detiene la purga; es idempotente.
func (c *InMemoryCache) Stop() {
	c.stopOnce.Do(func() { close(c.done) })
}

func (c *InMemoryCache) sweep() {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, e := range c.entries {
		if e.expired(now) {
			delete(c.entries, key)
		}
	}
}

func (c *InMemoryCache) sweepLoop(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.sweep()
		}
	}
}
