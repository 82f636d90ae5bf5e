// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sarisagroup/sarisa-web/internal/backend"
	"github.com/sarisagroup/sarisa-web/internal/cache"
	"github.com/sarisagroup/sarisa-web/internal/util"
)

// DefaultCacheTTL is the revalidation window of cached listings.
const DefaultCacheTTL = time.Minute

// ErrNotFound is returned when the backend has no record for a slug.
var ErrNotFound = errors.New("content: not found")

// Backend endpoints, relative to the API root.
const (
	storesPath  = "public/stores"
	videosPath  = "public/videos"
	eventsPath  = "public/events"
	contactPath = "public/contact"
	footerPath  = "public/footer"
)

const cachePrefix = "content:"

// Source performs GET requests against the backend API.
// *backend.Client satisfies it.
type Source interface {
	Get(ctx context.Context, path string, query url.Values, auth bool) ([]byte, error)
}

// Options configures a Service.
type Options struct {
	// Cache holds decoded listings. Nil disables caching.
	Cache    cache.Cacher
	CacheTTL time.Duration
}

// Service reads public directory content from the backend.
type Service struct {
	src     Source
	stores  *cache.TypedCache[[]Store]
	store   *cache.TypedCache[Store]
	videos  *cache.TypedCache[[]Video]
	events  *cache.TypedCache[[]Event]
	contact *cache.TypedCache[Contact]
	footer  *cache.TypedCache[Footer]
}

// NewService creates a Service reading from src.
func NewService(src Source, opts Options) *Service {
	s := &Service{src: src}
	if opts.Cache != nil {
		ttl := opts.CacheTTL
		if ttl <= 0 {
			ttl = DefaultCacheTTL
		}
		s.stores = cache.NewTypedCache[[]Store](opts.Cache, ttl)
		s.store = cache.NewTypedCache[Store](opts.Cache, ttl)
		s.videos = cache.NewTypedCache[[]Video](opts.Cache, ttl)
		s.events = cache.NewTypedCache[[]Event](opts.Cache, ttl)
		s.contact = cache.NewTypedCache[Contact](opts.Cache, ttl)
		s.footer = cache.NewTypedCache[Footer](opts.Cache, ttl)
	}
	return s
}

// Stores returns all listed stores.
func (s *Service) Stores(ctx context.Context) ([]Store, error) {
	return cached(ctx, s.stores, cachePrefix+"stores", func() ([]Store, error) {
		body, err := s.src.Get(ctx, storesPath, nil, false)
		if err != nil {
			return nil, fmt.Errorf("fetching stores: %w", err)
		}
		return decodeList[Store](body, "stores", "data")
	})
}

// Store returns the store with the given slug, or ErrNotFound.
func (s *Service) Store(ctx context.Context, slug string) (Store, error) {
	if !util.IsValidSlug(slug) {
		return Store{}, ErrNotFound
	}
	return cached(ctx, s.store, cachePrefix+"store:"+slug, func() (Store, error) {
		body, err := s.src.Get(ctx, storesPath+"/"+url.PathEscape(slug), nil, false)
		if err != nil {
			var statusErr *backend.StatusError
			if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
				return Store{}, ErrNotFound
			}
			return Store{}, fmt.Errorf("fetching store %q: %w", slug, err)
		}
		st, err := decodeObject[Store](body, "store", "data")
		if err != nil {
			return Store{}, err
		}
		if st.Slug == "" && st.Name == "" {
			return Store{}, ErrNotFound
		}
		return st, nil
	})
}

// Videos returns all listed videos.
func (s *Service) Videos(ctx context.Context) ([]Video, error) {
	return cached(ctx, s.videos, cachePrefix+"videos", func() ([]Video, error) {
		body, err := s.src.Get(ctx, videosPath, nil, false)
		if err != nil {
			return nil, fmt.Errorf("fetching videos: %w", err)
		}
		return decodeList[Video](body, "videos", "data")
	})
}

// Events returns all listed events.
func (s *Service) Events(ctx context.Context) ([]Event, error) {
	return cached(ctx, s.events, cachePrefix+"events", func() ([]Event, error) {
		body, err := s.src.Get(ctx, eventsPath, nil, false)
		if err != nil {
			return nil, fmt.Errorf("fetching events: %w", err)
		}
		return decodeList[Event](body, "events", "data")
	})
}

// Contact returns the contact details.
func (s *Service) Contact(ctx context.Context) (Contact, error) {
	return cached(ctx, s.contact, cachePrefix+"contact", func() (Contact, error) {
		body, err := s.src.Get(ctx, contactPath, nil, false)
		if err != nil {
			return Contact{}, fmt.Errorf("fetching contact: %w", err)
		}
		return decodeObject[Contact](body, "contact", "data")
	})
}

// Footer returns the footer content.
func (s *Service) Footer(ctx context.Context) (Footer, error) {
	return cached(ctx, s.footer, cachePrefix+"footer", func() (Footer, error) {
		body, err := s.src.Get(ctx, footerPath, nil, false)
		if err != nil {
			return Footer{}, fmt.Errorf("fetching footer: %w", err)
		}
		return decodeObject[Footer](body, "footer", "data")
	})
}

// Refresh reloads the shared listings from the backend and overwrites their
// cached copies. A listing that fails to load keeps its cached copy and the
// first failure is returned.
func (s *Service) Refresh(ctx context.Context) error {
	ctx = context.WithValue(ctx, refreshKey{}, true)

	var g errgroup.Group
	g.Go(func() error { _, err := s.Stores(ctx); return err })
	g.Go(func() error { _, err := s.Videos(ctx); return err })
	g.Go(func() error { _, err := s.Events(ctx); return err })
	g.Go(func() error { _, err := s.Contact(ctx); return err })
	g.Go(func() error { _, err := s.Footer(ctx); return err })
	return g.Wait()
}

// refreshKey marks a context whose reads skip the cache.
type refreshKey struct{}

// cached runs load through c when caching is enabled. Errors are not cached.
func cached[T any](ctx context.Context, c *cache.TypedCache[T], key string, load func() (T, error)) (T, error) {
	if c == nil {
		return load()
	}
	if ctx.Value(refreshKey{}) != nil {
		v, err := load()
		if err == nil {
			_ = c.Set(ctx, key, &v)
		}
		return v, err
	}
	v, err := c.GetOrSet(ctx, key, func() (*T, error) {
		v, err := load()
		if err != nil {
			return nil, err
		}
		return &v, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return *v, nil
}
