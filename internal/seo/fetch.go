// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sarisagroup/sarisa-web/internal/cache"
)

// DefaultFetchTimeout bounds each SEO request attempt.
const DefaultFetchTimeout = 1500 * time.Millisecond

// Backend endpoints, relative to the API root.
const (
	publicSitePath = "public/seo/site"
	adminSitePath  = "admin/seo/site"
	publicPagePath = "public/seo/page"
	adminPagePath  = "admin/seo/page"
)

const (
	siteCacheKey    = "seo:site"
	pageCachePrefix = "seo:page:"
)

// Source performs GET requests against the backend API.
// *backend.Client satisfies it.
type Source interface {
	Get(ctx context.Context, path string, query url.Values, auth bool) ([]byte, error)
	HasToken() bool
}

// FetcherOptions configures a Fetcher.
type FetcherOptions struct {
	// Timeout bounds each attempt. Zero uses DefaultFetchTimeout.
	Timeout time.Duration

	// Cache holds successfully fetched records. Nil disables caching.
	Cache cache.Cacher

	// CacheTTL is the revalidation window of cached records.
	CacheTTL time.Duration

	Logger *slog.Logger
}

// Fetcher retrieves the site and page SEO records from the backend.
//
// Each record is requested from the public endpoint first. If that fails and
// the source holds an admin token, the admin endpoint is tried once. When
// both fail the record is empty: fetch errors are logged and never returned.
type Fetcher struct {
	src     Source
	timeout time.Duration
	sites   *cache.TypedCache[SiteSeo]
	pages   *cache.TypedCache[PageSeo]
	logger  *slog.Logger
}

// NewFetcher creates a Fetcher reading from src.
func NewFetcher(src Source, opts FetcherOptions) *Fetcher {
	f := &Fetcher{
		src:     src,
		timeout: opts.Timeout,
		logger:  opts.Logger,
	}
	if f.timeout <= 0 {
		f.timeout = DefaultFetchTimeout
	}
	if f.logger == nil {
		f.logger = slog.Default()
	}
	if opts.Cache != nil {
		f.sites = cache.NewTypedCache[SiteSeo](opts.Cache, opts.CacheTTL)
		f.pages = cache.NewTypedCache[PageSeo](opts.Cache, opts.CacheTTL)
	}
	return f
}

// fetchResult is the outcome of one fetch chain.
type fetchResult struct {
	ok   bool
	data map[string]any
}

// FetchSiteSeo returns the site-wide SEO record, or an empty record when the
// backend cannot provide it.
func (f *Fetcher) FetchSiteSeo(ctx context.Context) SiteSeo {
	if f.sites != nil {
		if cached, ok := f.sites.Get(ctx, siteCacheKey); ok {
			return *cached
		}
	}
	site, _ := f.loadSite(ctx)
	return site
}

// FetchPageSeoByPath returns the SEO record of the page at path, or an empty
// record when the backend cannot provide it. The path is normalized first.
func (f *Fetcher) FetchPageSeoByPath(ctx context.Context, path string) PageSeo {
	path = NormalizePath(path)
	if f.pages != nil {
		if cached, ok := f.pages.Get(ctx, pageCachePrefix+path); ok {
			return *cached
		}
	}
	page, _ := f.loadPage(ctx, path)
	return page
}

// BuildSeoForPath fetches the site and page records concurrently.
func (f *Fetcher) BuildSeoForPath(ctx context.Context, path string) (SiteSeo, PageSeo) {
	var (
		site SiteSeo
		page PageSeo
		wg   sync.WaitGroup
	)
	wg.Go(func() { site = f.FetchSiteSeo(ctx) })
	wg.Go(func() { page = f.FetchPageSeoByPath(ctx, path) })
	wg.Wait()

	return site, page
}

// Refresh re-fetches the site record and the page records of paths without
// reading the cache, and overwrites the cached copies that were fetched
// successfully. Records that fail keep their cached copy until it expires.
// It returns the number of records refreshed.
func (f *Fetcher) Refresh(ctx context.Context, paths ...string) int {
	var (
		wg        sync.WaitGroup
		refreshed atomic.Int32
	)
	wg.Go(func() {
		if _, ok := f.loadSite(ctx); ok {
			refreshed.Add(1)
		}
	})
	for _, path := range paths {
		wg.Go(func() {
			if _, ok := f.loadPage(ctx, NormalizePath(path)); ok {
				refreshed.Add(1)
			}
		})
	}
	wg.Wait()
	return int(refreshed.Load())
}

// loadSite fetches the site record from the backend and caches it on success.
func (f *Fetcher) loadSite(ctx context.Context) (SiteSeo, bool) {
	res := f.fetch(ctx, "site", publicSitePath, adminSitePath, nil)
	if !res.ok {
		return SiteSeo{}, false
	}

	site := SiteSeoFromMap(res.data)
	if f.sites != nil {
		if err := f.sites.Set(ctx, siteCacheKey, &site); err != nil {
			f.logger.Debug("caching site seo failed", "error", err)
		}
	}
	return site, true
}

// loadPage fetches the record of a normalized path and caches it on success.
func (f *Fetcher) loadPage(ctx context.Context, path string) (PageSeo, bool) {
	query := url.Values{"path": {path}}
	res := f.fetch(ctx, "page", publicPagePath, adminPagePath, query)
	if !res.ok {
		return PageSeo{}, false
	}

	page := PageSeoFromMap(res.data)
	if f.pages != nil {
		if err := f.pages.Set(ctx, pageCachePrefix+path, &page); err != nil {
			f.logger.Debug("caching page seo failed", "path", path, "error", err)
		}
	}
	return page, true
}

// fetch runs the public-then-admin chain for one record.
func (f *Fetcher) fetch(ctx context.Context, key, publicPath, adminPath string, query url.Values) fetchResult {
	res, err := f.attempt(ctx, key, publicPath, query, false)
	if err == nil {
		return res
	}

	if !f.src.HasToken() {
		f.logger.Warn("seo fetch failed", "record", key, "query", query.Encode(), "error", err)
		return fetchResult{}
	}
	f.logger.Debug("public seo fetch failed, trying admin endpoint", "record", key, "error", err)

	res, err = f.attempt(ctx, key, adminPath, query, true)
	if err != nil {
		f.logger.Warn("seo fetch failed", "record", key, "query", query.Encode(), "error", err)
		return fetchResult{}
	}
	return res
}

// attempt performs one bounded request and decodes its payload.
func (f *Fetcher) attempt(ctx context.Context, key, path string, query url.Values, auth bool) (res fetchResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			res, err = fetchResult{}, fmt.Errorf("panic fetching %s: %v", path, r)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	body, err := f.src.Get(ctx, path, query, auth)
	if err != nil {
		return fetchResult{}, err
	}

	data, ok := unwrap(body, key)
	if !ok {
		return fetchResult{}, errMalformed
	}
	return fetchResult{ok: true, data: data}, nil
}

var errMalformed = errors.New("seo: response is not a JSON object")
