// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"sync"
)

// SEORefresher re-fetches SEO records past the cache.
// *seo.Fetcher satisfies it.
type SEORefresher interface {
	Refresh(ctx context.Context, paths ...string) int
}

// ContentRefresher re-fetches the shared directory listings past the cache.
// *content.Service satisfies it.
type ContentRefresher interface {
	Refresh(ctx context.Context) error
}

// WarmCache returns a job that reloads the SEO records of the static pages
// and the shared directory listings, overwriting their cache entries before
// they expire. Only listing failures are reported; an SEO record that cannot
// be loaded keeps its cached copy.
func WarmCache(seoSrc SEORefresher, contentSrc ContentRefresher) func(ctx context.Context) error {
	paths := make([]string, len(staticPages))
	for i, p := range staticPages {
		paths[i] = p.path
	}

	return func(ctx context.Context) error {
		var wg sync.WaitGroup
		wg.Go(func() { seoSrc.Refresh(ctx, paths...) })
		err := contentSrc.Refresh(ctx)
		wg.Wait()
		return err
	}
}
