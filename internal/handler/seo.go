// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/sarisagroup/sarisa-web/internal/seo"
)

// SEOHandler serves robots.txt, the sitemap and the metadata preview.
type SEOHandler struct {
	seo         SEOSource
	content     ContentSource
	site        seo.SiteConfig
	disallowAll bool
	logger      *slog.Logger
}

// NewSEOHandler creates a new SEOHandler. disallowAll blocks every crawler
// (staging deployments).
func NewSEOHandler(seoSrc SEOSource, contentSrc ContentSource, site seo.SiteConfig, disallowAll bool, logger *slog.Logger) *SEOHandler {
	if site.SiteName == "" {
		site.SiteName = seo.DefaultBrandName
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SEOHandler{
		seo:         seoSrc,
		content:     contentSrc,
		site:        site,
		disallowAll: disallowAll,
		logger:      logger,
	}
}

// Robots handles GET /robots.txt.
func (h *SEOHandler) Robots(w http.ResponseWriter, _ *http.Request) {
	body := seo.BuildRobots(seo.RobotsConfig{
		SiteURL:     h.site.SiteURL,
		DisallowAll: h.disallowAll,
	})
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write([]byte(body))
}

// Sitemap handles GET /sitemap.xml. Store pages are listed when the backend
// is reachable; the static routes are always listed.
func (h *SEOHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	b := seo.NewSitemapBuilder(h.site.SiteURL)
	for _, p := range staticPages {
		b.Add(p.path, p.changeFreq, p.priority, time.Time{})
	}

	stores, err := h.content.Stores(r.Context())
	if err != nil {
		h.logger.Warn("listing stores for sitemap failed", "error", err)
	}
	for _, s := range stores {
		if s.Slug != "" {
			b.Add(RouteStores+"/"+s.Slug, seo.ChangeFreqWeekly, "0.7", time.Time{})
		}
	}

	out, err := b.Build()
	if err != nil {
		h.logger.Error("building sitemap failed", "error", err)
		http.Error(w, "Failed to build sitemap", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write(out)
}

// PreviewResponse is the body of GET /seo/preview.
type PreviewResponse struct {
	Path     string       `json:"path"`
	Site     seo.SiteSeo  `json:"site"`
	Page     seo.PageSeo  `json:"page"`
	Resolved seo.Resolved `json:"resolved"`
	Meta     *seo.Meta    `json:"meta"`
}

// Preview handles GET /seo/preview?path=... and returns what the page at
// path would emit in its head.
func (h *SEOHandler) Preview(w http.ResponseWriter, r *http.Request) {
	path := seo.NormalizePath(r.URL.Query().Get("path"))

	site, page := h.seo.BuildSeoForPath(r.Context(), path)
	resolved := seo.Resolve(site, page, seo.ResolveOptions{
		Path:      path,
		BrandName: h.site.SiteName,
		URL:       seo.AbsoluteURL(path, h.site.SiteURL),
	})

	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, PreviewResponse{
		Path:     path,
		Site:     site,
		Page:     page,
		Resolved: resolved,
		Meta:     seo.BuildMeta(resolved, h.site),
	})
}
