// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryOptions configures a MemoryCache.
type MemoryOptions struct {
	DefaultTTL time.Duration

	// MaxEntries bounds the number of records (0 = unbounded). When full,
	// expired records are dropped first, then the one closest to expiry.
	MaxEntries int

	// SweepInterval is how often expired records are dropped (0 = never;
	// expired records are still never returned).
	SweepInterval time.Duration
}

// MemoryCache is a process-local Cacher.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	bytes   int64
	closed  bool

	hits, misses, sets int64

	ttl        time.Duration
	maxEntries int
	now        func() time.Time
	done       chan struct{}
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// NewMemoryCache creates a MemoryCache.
func NewMemoryCache(opts MemoryOptions) *MemoryCache {
	c := &MemoryCache{
		entries:    make(map[string]memoryEntry),
		ttl:        opts.DefaultTTL,
		maxEntries: opts.MaxEntries,
		now:        time.Now,
		done:       make(chan struct{}),
	}
	if opts.SweepInterval > 0 {
		go c.sweepLoop(opts.SweepInterval)
	}
	return c
}

// NewSimpleMemoryCache creates an unbounded MemoryCache swept every minute.
func NewSimpleMemoryCache(ttl time.Duration) *MemoryCache {
	return NewMemoryCache(MemoryOptions{DefaultTTL: ttl, SweepInterval: time.Minute})
}

// Get implements Cacher. The returned slice is a copy.
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, ErrCacheClosed
	}
	e, ok := c.entries[key]
	if !ok || !c.now().Before(e.expiresAt) {
		if ok {
			c.remove(key)
		}
		c.misses++
		return nil, ErrCacheMiss
	}
	c.hits++
	return append([]byte(nil), e.value...), nil
}

// Set implements Cacher. value is copied.
func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrCacheClosed
	}
	if ttl <= 0 {
		ttl = c.ttl
	}

	if _, replacing := c.entries[key]; replacing {
		c.remove(key)
	} else if c.maxEntries > 0 && len(c.entries) >= c.maxEntries {
		c.dropExpired()
		if len(c.entries) >= c.maxEntries {
			c.evictSoonest()
		}
	}

	c.entries[key] = memoryEntry{
		value:     append([]byte(nil), value...),
		expiresAt: c.now().Add(ttl),
	}
	c.bytes += int64(len(value))
	c.sets++
	return nil
}

// Close stops the sweeper. It is safe to call more than once.
func (c *MemoryCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.done)
		c.entries = nil
		c.bytes = 0
	}
	return nil
}

// Stats implements StatsProvider.
func (c *MemoryCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Stats{
		Hits:    c.hits,
		Misses:  c.misses,
		Sets:    c.sets,
		Items:   len(c.entries),
		HitRate: hitRate(c.hits, c.misses),
		Size:    c.bytes,
	}
}

// remove deletes key. c.mu must be held.
func (c *MemoryCache) remove(key string) {
	if e, ok := c.entries[key]; ok {
		c.bytes -= int64(len(e.value))
		delete(c.entries, key)
	}
}

// dropExpired deletes every expired record. c.mu must be held.
func (c *MemoryCache) dropExpired() {
	now := c.now()
	for key, e := range c.entries {
		if !now.Before(e.expiresAt) {
			c.remove(key)
		}
	}
}

// evictSoonest deletes the record closest to expiry. c.mu must be held.
func (c *MemoryCache) evictSoonest() {
	var (
		victim  string
		soonest time.Time
	)
	for key, e := range c.entries {
		if soonest.IsZero() || e.expiresAt.Before(soonest) {
			victim, soonest = key, e.expiresAt
		}
	}
	if !soonest.IsZero() {
		c.remove(victim)
	}
}

func (c *MemoryCache) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.mu.Lock()
			if !c.closed {
				c.dropExpired()
			}
			c.mu.Unlock()
		case <-c.done:
			return
		}
	}
}

var (
	_ Cacher        = (*MemoryCache)(nil)
	_ StatsProvider = (*MemoryCache)(nil)
)
