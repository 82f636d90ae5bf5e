// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarisagroup/sarisa-web/internal/cache"
	"github.com/sarisagroup/sarisa-web/internal/content"
	"github.com/sarisagroup/sarisa-web/internal/handler"
	"github.com/sarisagroup/sarisa-web/internal/middleware"
	"github.com/sarisagroup/sarisa-web/internal/render"
	"github.com/sarisagroup/sarisa-web/internal/seo"
	"github.com/sarisagroup/sarisa-web/internal/testutil"
	"github.com/sarisagroup/sarisa-web/internal/version"
	"github.com/sarisagroup/sarisa-web/web"
)

type emptySEO struct{}

func (emptySEO) BuildSeoForPath(context.Context, string) (seo.SiteSeo, seo.PageSeo) {
	return seo.SiteSeo{}, seo.PageSeo{}
}

type emptyContent struct{}

func (emptyContent) Stores(context.Context) ([]content.Store, error) { return nil, nil }
func (emptyContent) Store(context.Context, string) (content.Store, error) {
	return content.Store{}, content.ErrNotFound
}
func (emptyContent) Videos(context.Context) ([]content.Video, error) { return nil, nil }
func (emptyContent) Events(context.Context) ([]content.Event, error) { return nil, nil }
func (emptyContent) Contact(context.Context) (content.Contact, error) { return content.Contact{}, nil }
func (emptyContent) Footer(context.Context) (content.Footer, error) { return content.Footer{}, nil }

type okPinger struct{}

func (okPinger) Ping(context.Context, string) error { return nil }

func newTestRouter(t *testing.T, burst int) http.Handler {
	t.Helper()
	renderer, err := render.New(render.Config{TemplatesFS: web.Templates})
	require.NoError(t, err)

	logger := testutil.TestLogger()
	site := seo.SiteConfig{SiteName: "Sarisagroup", SiteURL: "https://sarisa.test"}

	return newRouter(routerConfig{
		Frontend:       handler.NewFrontendHandler(emptySEO{}, emptyContent{}, renderer, site, logger),
		SEO:            handler.NewSEOHandler(emptySEO{}, emptyContent{}, site, false, logger),
		Health:         handler.NewHealthHandler(okPinger{}, nil, cache.Info{}, version.Info{}),
		Security:       middleware.DefaultSecurityHeadersConfig(false),
		RateLimitRPS:   0.001,
		RateLimitBurst: burst,
		Logger:         logger,
	})
}

func serve(h http.Handler, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	req.RemoteAddr = "198.51.100.7:4000"
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouterPages(t *testing.T) {
	r := newTestRouter(t, 100)

	for _, path := range []string{"/", "/stores", "/videos", "/events", "/contact", "/robots.txt", "/sitemap.xml", "/seo/preview?path=/", "/health", "/health/live"} {
		t.Run(path, func(t *testing.T) {
			rec := serve(r, http.MethodGet, path)
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
			assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
		})
	}
}

func TestRouterTrailingSlashRedirect(t *testing.T) {
	r := newTestRouter(t, 100)

	rec := serve(r, http.MethodGet, "/stores/?sort=name")
	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "/stores?sort=name", rec.Header().Get("Location"))
}

func TestRouterNotFound(t *testing.T) {
	r := newTestRouter(t, 100)

	assert.Equal(t, http.StatusNotFound, serve(r, http.MethodGet, "/does-not-exist").Code)
	assert.Equal(t, http.StatusNotFound, serve(r, http.MethodGet, "/stores/unknown").Code)
}

func TestRouterHead(t *testing.T) {
	r := newTestRouter(t, 100)

	rec := serve(r, http.MethodHead, "/health/live")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouterRateLimitSparesProbes(t *testing.T) {
	r := newTestRouter(t, 1)

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/stores").Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(r, http.MethodGet, "/stores").Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/health").Code)
}
