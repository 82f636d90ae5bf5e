// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/sarisagroup/sarisa-web/internal/content"
	"github.com/sarisagroup/sarisa-web/internal/render"
	"github.com/sarisagroup/sarisa-web/internal/seo"
	"github.com/sarisagroup/sarisa-web/internal/testutil"
	"github.com/sarisagroup/sarisa-web/web"
)

var errBackendDown = errors.New("backend down")

// fakeSEO returns fixed records and remembers the requested paths.
type fakeSEO struct {
	site  seo.SiteSeo
	pages map[string]seo.PageSeo

	mu        sync.Mutex
	paths     []string
	refreshed []string
}

func (f *fakeSEO) BuildSeoForPath(_ context.Context, path string) (seo.SiteSeo, seo.PageSeo) {
	f.mu.Lock()
	f.paths = append(f.paths, path)
	f.mu.Unlock()
	return f.site, f.pages[path]
}

func (f *fakeSEO) Refresh(_ context.Context, paths ...string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refreshed = append(f.refreshed, paths...)
	return len(paths) + 1
}

func (f *fakeSEO) requested() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.paths...)
}

// fakeContent serves fixed content; with down set every call fails.
type fakeContent struct {
	stores  []content.Store
	videos  []content.Video
	events  []content.Event
	contact content.Contact
	footer  content.Footer
	down    bool

	refreshes int
}

func (f *fakeContent) err() error {
	if f.down {
		return errBackendDown
	}
	return nil
}

func (f *fakeContent) Refresh(context.Context) error {
	f.refreshes++
	return f.err()
}

func (f *fakeContent) Stores(context.Context) ([]content.Store, error) {
	if f.down {
		return nil, f.err()
	}
	return f.stores, nil
}

func (f *fakeContent) Store(_ context.Context, slug string) (content.Store, error) {
	if f.down {
		return content.Store{}, f.err()
	}
	for _, s := range f.stores {
		if s.Slug == slug {
			return s, nil
		}
	}
	return content.Store{}, content.ErrNotFound
}

func (f *fakeContent) Videos(context.Context) ([]content.Video, error) {
	if f.down {
		return nil, f.err()
	}
	return f.videos, nil
}

func (f *fakeContent) Events(context.Context) ([]content.Event, error) {
	if f.down {
		return nil, f.err()
	}
	return f.events, nil
}

func (f *fakeContent) Contact(context.Context) (content.Contact, error) {
	return f.contact, f.err()
}

func (f *fakeContent) Footer(context.Context) (content.Footer, error) {
	return f.footer, f.err()
}

func testLogger() *slog.Logger {
	return testutil.TestLogger()
}

func testRenderer(t *testing.T) *render.Renderer {
	t.Helper()
	r, err := render.New(render.Config{TemplatesFS: web.Templates})
	if err != nil {
		t.Fatalf("render.New() error = %v", err)
	}
	return r
}

var testSite = seo.SiteConfig{
	SiteName:      "Sarisagroup",
	SiteURL:       "https://sarisa.test",
	TwitterHandle: "@sarisa",
}
