// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarisagroup/sarisa-web/internal/content"
	"github.com/sarisagroup/sarisa-web/internal/seo"
)

func newTestFrontend(t *testing.T, s *fakeSEO, c *fakeContent) http.Handler {
	t.Helper()
	h := NewFrontendHandler(s, c, testRenderer(t), testSite, testLogger())

	r := chi.NewRouter()
	r.Get(RouteRoot, h.Home)
	r.Get(RouteStores, h.Stores)
	r.Get(RouteStoreSlug, h.Store)
	r.Get(RouteVideos, h.Videos)
	r.Get(RouteEvents, h.Events)
	r.Get(RouteContact, h.Contact)
	r.NotFound(h.NotFound)
	return r
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestFrontendPageUsesPageSeo(t *testing.T) {
	s := &fakeSEO{
		site: seo.SiteSeo{MetaTitle: "Sarisagroup Directory", MetaDescription: "Find local stores", Keywords: "stores,local", OGImage: "/img/site.jpg"},
		pages: map[string]seo.PageSeo{
			"/stores": {Title: "All Stores", OGImages: []string{"https://cdn.test/stores.jpg"}},
		},
	}
	c := &fakeContent{stores: []content.Store{{Slug: "bakery", Name: "Bakery"}}}
	h := newTestFrontend(t, s, c)

	rec := get(t, h, "/stores")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "<title>All Stores</title>")
	assert.Contains(t, body, `<meta name="description" content="Find local stores">`)
	assert.Contains(t, body, `<meta name="keywords" content="stores,local">`)
	assert.Contains(t, body, `<link rel="canonical" href="https://sarisa.test/stores">`)
	assert.Contains(t, body, `<meta property="og:image" content="https://cdn.test/stores.jpg">`)
	assert.Contains(t, body, `<meta property="og:image" content="https://sarisa.test/img/site.jpg">`)
	assert.NotContains(t, body, `name="robots"`)
	assert.Equal(t, 1, strings.Count(body, `<script type="application/ld+json">`))
	assert.Contains(t, body, `href="/stores/bakery"`)

	assert.Equal(t, []string{"/stores"}, s.requested())
}

func TestFrontendNoIndex(t *testing.T) {
	s := &fakeSEO{pages: map[string]seo.PageSeo{"/events": {NoIndex: true}}}
	h := newTestFrontend(t, s, &fakeContent{})

	rec := get(t, h, "/events")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `<meta name="robots" content="noindex,nofollow">`)
}

func TestFrontendBackendOutage(t *testing.T) {
	h := newTestFrontend(t, &fakeSEO{}, &fakeContent{down: true})

	for _, path := range []string{"/", "/stores", "/videos", "/events", "/contact"} {
		t.Run(path, func(t *testing.T) {
			rec := get(t, h, path)
			require.Equal(t, http.StatusOK, rec.Code)

			body := rec.Body.String()
			assert.Contains(t, body, "<title>Sarisagroup</title>")
			assert.Contains(t, body, `"@type":"WebPage"`)
		})
	}
}

func TestFrontendHome(t *testing.T) {
	stores := make([]content.Store, 10)
	for i := range stores {
		stores[i] = content.Store{Slug: "s" + string(rune('a'+i)), Name: "Store"}
	}
	c := &fakeContent{
		stores: stores,
		events: []content.Event{{Title: "Night Market", StartsAt: "2026-11-20"}},
		footer: content.Footer{Text: "Sarisagroup Inc."},
	}
	h := newTestFrontend(t, &fakeSEO{}, c)

	rec := get(t, h, "/")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Equal(t, homeStoreLimit, strings.Count(body, `class="store-card"`))
	assert.Contains(t, body, "Night Market")
	assert.Contains(t, body, "Nov 20, 2026")
	assert.Contains(t, body, "Sarisagroup Inc.")
}

func TestFrontendStoreDetail(t *testing.T) {
	c := &fakeContent{stores: []content.Store{{
		Slug:        "bakery",
		Name:        "Kape't Tinapay",
		Description: "**Fresh** pandesal every morning.",
		ImageURL:    "https://cdn.test/bakery.jpg",
	}}}
	s := &fakeSEO{site: seo.SiteSeo{MetaTitle: "Directory"}}
	h := newTestFrontend(t, s, c)

	rec := get(t, h, "/stores/bakery")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "<title>Kape&#39;t Tinapay | Sarisagroup</title>")
	assert.Contains(t, body, `<meta name="description" content="Fresh pandesal every morning.">`)
	assert.Contains(t, body, `<meta property="og:image" content="https://cdn.test/bakery.jpg">`)
	assert.Contains(t, body, "<strong>Fresh</strong>")
}

func TestFrontendStoreDetailPageSeoWins(t *testing.T) {
	c := &fakeContent{stores: []content.Store{{Slug: "bakery", Name: "Bakery"}}}
	s := &fakeSEO{pages: map[string]seo.PageSeo{"/stores/bakery": {Title: "Best Bakery in Town"}}}
	h := newTestFrontend(t, s, c)

	rec := get(t, h, "/stores/bakery")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<title>Best Bakery in Town</title>")
}

func TestFrontendStoreNotFound(t *testing.T) {
	h := newTestFrontend(t, &fakeSEO{}, &fakeContent{})

	rec := get(t, h, "/stores/missing")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `<meta name="robots" content="noindex,nofollow">`)
}

func TestFrontendStoreBackendDown(t *testing.T) {
	h := newTestFrontend(t, &fakeSEO{}, &fakeContent{down: true})

	rec := get(t, h, "/stores/bakery")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "Something went wrong")
}

func TestFrontendNotFound(t *testing.T) {
	h := newTestFrontend(t, &fakeSEO{}, &fakeContent{})

	rec := get(t, h, "/nope")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "<title>Page not found | Sarisagroup</title>")
}

func TestFrontendVideosAndContact(t *testing.T) {
	c := &fakeContent{
		videos:  []content.Video{{Title: "Market tour", URL: "https://youtu.be/abc"}},
		contact: content.Contact{Email: "hello@sarisa.test"},
	}
	h := newTestFrontend(t, &fakeSEO{}, c)

	rec := get(t, h, "/videos")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "https://www.youtube-nocookie.com/embed/abc")

	rec = get(t, h, "/contact")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "mailto:hello@sarisa.test")
}

func TestLimit(t *testing.T) {
	assert.Equal(t, []int{1, 2}, limit([]int{1, 2, 3}, 2))
	assert.Equal(t, []int{1}, limit([]int{1}, 2))
	assert.Nil(t, limit[int](nil, 2))
}

var _ SEOSource = (*seo.Fetcher)(nil)
var _ ContentSource = (*content.Service)(nil)

func TestPageLoadIgnoresCanceledContext(t *testing.T) {
	h := NewFrontendHandler(&fakeSEO{}, &fakeContent{}, testRenderer(t), testSite, testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req := httptest.NewRequest(http.MethodGet, "/stores/", nil).WithContext(ctx)
	p := h.startPage(req)
	p.load("stores", func(ctx context.Context) error { return ctx.Err() })
	meta := p.wait()

	assert.Equal(t, "Sarisagroup", meta.Title)
	assert.Equal(t, "https://sarisa.test/stores", meta.Canonical)
}

func TestFrontendStoreCanonicalSlug(t *testing.T) {
	c := &fakeContent{stores: []content.Store{{Slug: "cafe-luna", Name: "Café Luna"}}}
	h := newTestFrontend(t, &fakeSEO{}, c)

	rec := get(t, h, "/stores/Caf%C3%A9%20Luna?ref=map")
	require.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "/stores/cafe-luna?ref=map", rec.Header().Get("Location"))

	rec = get(t, h, "/stores/%21%21")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
