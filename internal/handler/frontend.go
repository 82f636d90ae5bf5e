// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/sarisagroup/sarisa-web/internal/content"
	"github.com/sarisagroup/sarisa-web/internal/render"
	"github.com/sarisagroup/sarisa-web/internal/seo"
	"github.com/sarisagroup/sarisa-web/internal/util"
)

// SEOSource provides the site and page SEO records of a path.
// *seo.Fetcher satisfies it.
type SEOSource interface {
	BuildSeoForPath(ctx context.Context, path string) (seo.SiteSeo, seo.PageSeo)
}

// ContentSource provides the public directory content.
// *content.Service satisfies it.
type ContentSource interface {
	Stores(ctx context.Context) ([]content.Store, error)
	Store(ctx context.Context, slug string) (content.Store, error)
	Videos(ctx context.Context) ([]content.Video, error)
	Events(ctx context.Context) ([]content.Event, error)
	Contact(ctx context.Context) (content.Contact, error)
	Footer(ctx context.Context) (content.Footer, error)
}

// FrontendHandler renders the public pages.
type FrontendHandler struct {
	seo      SEOSource
	content  ContentSource
	renderer *render.Renderer
	site     seo.SiteConfig
	logger   *slog.Logger
}

// NewFrontendHandler creates a new FrontendHandler.
func NewFrontendHandler(seoSrc SEOSource, contentSrc ContentSource, renderer *render.Renderer, site seo.SiteConfig, logger *slog.Logger) *FrontendHandler {
	if site.SiteName == "" {
		site.SiteName = seo.DefaultBrandName
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FrontendHandler{
		seo:      seoSrc,
		content:  contentSrc,
		renderer: renderer,
		site:     site,
		logger:   logger,
	}
}

// HomeData is the data of the home page.
type HomeData struct {
	Stores []content.Store
	Events []content.Event
}

// StoresData is the data of the store listing.
type StoresData struct {
	Stores []content.Store
}

// StoreData is the data of a store page.
type StoreData struct {
	Store content.Store
}

// VideosData is the data of the videos page.
type VideosData struct {
	Videos []content.Video
}

// EventsData is the data of the events page.
type EventsData struct {
	Events []content.Event
}

// ContactData is the data of the contact page.
type ContactData struct {
	Contact content.Contact
}

// pageLoad is one page render in progress: SEO records, footer and page
// content are fetched concurrently. Content errors are logged and leave the
// zero value.
type pageLoad struct {
	h      *FrontendHandler
	ctx    context.Context
	path   string
	wg     sync.WaitGroup
	site   seo.SiteSeo
	page   seo.PageSeo
	footer content.Footer
}

func (h *FrontendHandler) startPage(r *http.Request) *pageLoad {
	p := &pageLoad{h: h, ctx: r.Context(), path: seo.NormalizePath(r.URL.Path)}
	p.wg.Go(func() {
		p.site, p.page = h.seo.BuildSeoForPath(p.ctx, p.path)
	})
	p.wg.Go(func() {
		footer, err := h.content.Footer(p.ctx)
		if err != nil {
			h.logger.Warn("loading footer failed", "error", err)
		}
		p.footer = footer
	})
	return p
}

// load runs fn alongside the SEO and footer requests.
func (p *pageLoad) load(what string, fn func(ctx context.Context) error) {
	p.wg.Go(func() {
		if err := fn(p.ctx); err != nil && !errors.Is(err, context.Canceled) {
			p.h.logger.Warn("loading page content failed", "content", what, "path", p.path, "error", err)
		}
	})
}

// wait blocks until all loaders finished and returns the page's head tags.
func (p *pageLoad) wait() *seo.Meta {
	p.wg.Wait()
	return p.h.buildMeta(p.path, p.site, p.page)
}

// buildMeta resolves the records of path into head tags.
func (h *FrontendHandler) buildMeta(path string, site seo.SiteSeo, page seo.PageSeo) *seo.Meta {
	resolved := seo.Resolve(site, page, seo.ResolveOptions{
		Path:      path,
		BrandName: h.site.SiteName,
		URL:       seo.AbsoluteURL(path, h.site.SiteURL),
	})
	return seo.BuildMeta(resolved, h.site)
}

// Home handles GET /.
func (h *FrontendHandler) Home(w http.ResponseWriter, r *http.Request) {
	p := h.startPage(r)
	var data HomeData
	p.load("stores", func(ctx context.Context) error {
		stores, err := h.content.Stores(ctx)
		data.Stores = limit(stores, homeStoreLimit)
		return err
	})
	p.load("events", func(ctx context.Context) error {
		events, err := h.content.Events(ctx)
		data.Events = limit(events, homeEventLimit)
		return err
	})
	meta := p.wait()
	h.render(w, http.StatusOK, templateHome, render.TemplateData{Meta: meta, Footer: p.footer, Data: data})
}

// Stores handles GET /stores.
func (h *FrontendHandler) Stores(w http.ResponseWriter, r *http.Request) {
	p := h.startPage(r)
	var data StoresData
	p.load("stores", func(ctx context.Context) (err error) {
		data.Stores, err = h.content.Stores(ctx)
		return err
	})
	meta := p.wait()
	h.render(w, http.StatusOK, templateStores, render.TemplateData{Meta: meta, Nav: "stores", Footer: p.footer, Data: data})
}

// Store handles GET /stores/{slug}. Non-canonical slugs redirect to their
// slug form. Head fields the page record leaves empty are filled from the store itself.
func (h *FrontendHandler) Store(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if unescaped, err := url.PathUnescape(slug); err == nil {
		slug = unescaped
	}
	canonical, differs := util.CanonicalSlug(slug)
	switch {
	case canonical == "":
		h.NotFound(w, r)
		return
	case differs:
		target := RouteStores + "/" + canonical
		if r.URL.RawQuery != "" {
			target += "?" + r.URL.RawQuery
		}
		http.Redirect(w, r, target, http.StatusMovedPermanently)
		return
	}

	p := h.startPage(r)
	var (
		store    content.Store
		storeErr error
	)
	p.wg.Go(func() {
		store, storeErr = h.content.Store(p.ctx, slug)
	})
	p.wg.Wait()

	switch {
	case errors.Is(storeErr, content.ErrNotFound):
		h.renderNotFound(w, r, p.footer)
		return
	case storeErr != nil:
		h.logger.Error("loading store failed", "slug", slug, "error", storeErr)
		h.renderError(w, http.StatusServiceUnavailable, p.footer)
		return
	}

	page := p.page
	if page.Title == "" {
		page.Title = store.Name + " | " + h.site.SiteName
	}
	if page.Description == "" {
		page.Description = content.PlainText(store.Description, descriptionLength)
	}
	if page.OGImage == "" {
		page.OGImage = store.Cover()
	}
	meta := h.buildMeta(p.path, p.site, page)
	h.render(w, http.StatusOK, templateStore, render.TemplateData{Meta: meta, Nav: "stores", Footer: p.footer, Data: StoreData{Store: store}})
}

// Videos handles GET /videos.
func (h *FrontendHandler) Videos(w http.ResponseWriter, r *http.Request) {
	p := h.startPage(r)
	var data VideosData
	p.load("videos", func(ctx context.Context) (err error) {
		data.Videos, err = h.content.Videos(ctx)
		return err
	})
	meta := p.wait()
	h.render(w, http.StatusOK, templateVideos, render.TemplateData{Meta: meta, Nav: "videos", Footer: p.footer, Data: data})
}

// Events handles GET /events.
func (h *FrontendHandler) Events(w http.ResponseWriter, r *http.Request) {
	p := h.startPage(r)
	var data EventsData
	p.load("events", func(ctx context.Context) (err error) {
		data.Events, err = h.content.Events(ctx)
		return err
	})
	meta := p.wait()
	h.render(w, http.StatusOK, templateEvents, render.TemplateData{Meta: meta, Nav: "events", Footer: p.footer, Data: data})
}

// Contact handles GET /contact.
func (h *FrontendHandler) Contact(w http.ResponseWriter, r *http.Request) {
	p := h.startPage(r)
	var data ContactData
	p.load("contact", func(ctx context.Context) (err error) {
		data.Contact, err = h.content.Contact(ctx)
		return err
	})
	meta := p.wait()
	h.render(w, http.StatusOK, templateContact, render.TemplateData{Meta: meta, Nav: "contact", Footer: p.footer, Data: data})
}

// NotFound handles unknown routes.
func (h *FrontendHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	footer, err := h.content.Footer(r.Context())
	if err != nil {
		h.logger.Debug("loading footer failed", "error", err)
	}
	h.renderNotFound(w, r, footer)
}

func (h *FrontendHandler) renderNotFound(w http.ResponseWriter, r *http.Request, footer content.Footer) {
	meta := seo.BuildMeta(seo.Resolved{
		Path:   seo.NormalizePath(r.URL.Path),
		Title:  "Page not found | " + h.site.SiteName,
		Robots: &seo.Robots{},
	}, seo.SiteConfig{SiteName: h.site.SiteName, TwitterHandle: h.site.TwitterHandle})
	h.render(w, http.StatusNotFound, templateNotFound, render.TemplateData{Meta: meta, Footer: footer})
}

func (h *FrontendHandler) renderError(w http.ResponseWriter, status int, footer content.Footer) {
	meta := seo.BuildMeta(seo.Resolved{
		Title:  h.site.SiteName,
		Robots: &seo.Robots{},
	}, seo.SiteConfig{SiteName: h.site.SiteName})
	h.render(w, status, templateError, render.TemplateData{Meta: meta, Footer: footer})
}

// render executes a page template, falling back to a plain error on failure.
func (h *FrontendHandler) render(w http.ResponseWriter, status int, name string, data render.TemplateData) {
	data.SiteName = h.site.SiteName
	if err := h.renderer.Render(w, status, name, data); err != nil {
		h.logger.Error("failed to render template", "template", name, "error", err)
		http.Error(w, "Template rendering error", http.StatusInternalServerError)
	}
}

func limit[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
