// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cache provides the short-lived record cache used by the frontend
// to avoid hitting the backend API on every page render.
package cache

import (
	"context"
	"time"
)

// Cacher stores encoded records for a bounded time.
// Implementations are safe for concurrent use.
type Cacher interface {
	// Get returns the value stored under key, or ErrCacheMiss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key for ttl. A zero ttl selects the cache default.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Close releases the cache. Later calls fail with ErrCacheClosed.
	Close() error
}

// StatsProvider is implemented by caches that report usage counters.
type StatsProvider interface {
	Stats() Stats
}

// Stats holds cache usage counters.
type Stats struct {
	Hits    int64   `json:"hits"`
	Misses  int64   `json:"misses"`
	Sets    int64   `json:"sets"`
	Items   int     `json:"items"`
	HitRate float64 `json:"hit_rate"`
	Size    int64   `json:"size_bytes,omitempty"`
}

// Error represents an error type for cache operations.
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	// ErrCacheMiss indicates the key was not found in cache or has expired.
	ErrCacheMiss Error = "cache miss"

	// ErrCacheClosed indicates the cache has been closed.
	ErrCacheClosed Error = "cache closed"
)

// hitRate returns hits as a percentage of all lookups.
func hitRate(hits, misses int64) float64 {
	if hits+misses == 0 {
		return 0
	}
	return float64(hits) / float64(hits+misses) * 100
}
