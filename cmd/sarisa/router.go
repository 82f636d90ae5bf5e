// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/sarisagroup/sarisa-web/internal/handler"
	"github.com/sarisagroup/sarisa-web/internal/middleware"
)

// requestTimeout bounds every request.
const requestTimeout = 30 * time.Second

// routerConfig holds everything the router mounts.
type routerConfig struct {
	Frontend       *handler.FrontendHandler
	SEO            *handler.SEOHandler
	Health         *handler.HealthHandler
	Security       middleware.SecurityHeadersConfig
	RateLimitRPS   float64
	RateLimitBurst int
	Logger         *slog.Logger
}

// newRouter builds the HTTP router of the public site.
func newRouter(rc routerConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(rc.Logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.StripTrailingSlash)
	r.Use(middleware.SecurityHeaders(rc.Security))

	// Probes are not rate limited.
	r.Get(handler.RouteHealth, rc.Health.Health)
	r.Get(handler.RouteHealthLive, rc.Health.Liveness)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(rc.RateLimitRPS, rc.RateLimitBurst))

		r.Get(handler.RouteRoot, rc.Frontend.Home)
		r.Get(handler.RouteStores, rc.Frontend.Stores)
		r.Get(handler.RouteStoreSlug, rc.Frontend.Store)
		r.Get(handler.RouteVideos, rc.Frontend.Videos)
		r.Get(handler.RouteEvents, rc.Frontend.Events)
		r.Get(handler.RouteContact, rc.Frontend.Contact)

		r.Get(handler.RouteRobots, rc.SEO.Robots)
		r.Get(handler.RouteSitemap, rc.SEO.Sitemap)
		r.Get(handler.RouteSEOPreview, rc.SEO.Preview)
	})

	r.NotFound(rc.Frontend.NotFound)

	return r
}
