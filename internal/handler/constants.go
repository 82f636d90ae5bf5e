// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler serves the public pages of the directory site.
package handler

import "github.com/sarisagroup/sarisa-web/internal/seo"

// Public routes.
const (
	RouteRoot       = "/"
	RouteStores     = "/stores"
	RouteStoreSlug  = "/stores/{slug}"
	RouteVideos     = "/videos"
	RouteEvents     = "/events"
	RouteContact    = "/contact"
	RouteRobots     = "/robots.txt"
	RouteSitemap    = "/sitemap.xml"
	RouteSEOPreview = "/seo/preview"
	RouteHealth     = "/health"
	RouteHealthLive = "/health/live"
)

// staticPage is a public route with a fixed path.
type staticPage struct {
	path       string
	changeFreq seo.ChangeFreq
	priority   string
}

// staticPages are listed in the sitemap and prefetched by WarmCache.
var staticPages = []staticPage{
	{RouteRoot, seo.ChangeFreqDaily, "1.0"},
	{RouteStores, seo.ChangeFreqDaily, "0.8"},
	{RouteVideos, seo.ChangeFreqWeekly, "0.6"},
	{RouteEvents, seo.ChangeFreqDaily, "0.6"},
	{RouteContact, seo.ChangeFreqMonthly, "0.4"},
}

// Template names.
const (
	templateHome     = "home"
	templateStores   = "stores"
	templateStore    = "store"
	templateVideos   = "videos"
	templateEvents   = "events"
	templateContact  = "contact"
	templateNotFound = "not_found"
	templateError    = "error"
)

const (
	homeStoreLimit = 6
	homeEventLimit = 3

	// descriptionLength bounds descriptions derived from store content.
	descriptionLength = 160
)
