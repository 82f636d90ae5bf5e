// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package seo resolves page metadata from the site-wide and per-path SEO
// records served by the backend API, and builds the head tags and JSON-LD
// emitted by the public pages.
package seo

import (
	"html/template"
	"strings"
)

// Meta holds all SEO meta tag data for a page.
type Meta struct {
	Title         string      `json:"title"`
	Description   string      `json:"description,omitempty"`
	Keywords      string      `json:"keywords,omitempty"`
	Canonical     string      `json:"canonical,omitempty"`
	OGTitle       string      `json:"og_title"`
	OGDescription string      `json:"og_description,omitempty"`
	OGImages      []string    `json:"og_images,omitempty"` // absolute URLs
	OGType        string      `json:"og_type"`
	OGSiteName    string      `json:"og_site_name,omitempty"`
	OGURL         string      `json:"og_url,omitempty"`
	Robots        string      `json:"robots,omitempty"` // empty means no restriction
	TwitterCard   string      `json:"twitter_card"`
	TwitterSite   string      `json:"twitter_site,omitempty"`
	JSONLD        template.JS `json:"jsonld,omitempty"` // escaped JSON-LD document
}

// SiteConfig contains deployment-wide settings for SEO.
type SiteConfig struct {
	SiteName      string
	SiteURL       string
	TwitterHandle string
}

// BuildMeta creates the head tags of a page from its resolved metadata.
func BuildMeta(r Resolved, site SiteConfig) *Meta {
	meta := &Meta{
		Title:         r.Title,
		Description:   r.Description,
		Keywords:      r.Keywords,
		OGTitle:       r.Title,
		OGDescription: r.Description,
		OGType:        "website",
		OGSiteName:    site.SiteName,
		TwitterCard:   "summary",
		TwitterSite:   site.TwitterHandle,
	}
	if r.JSONLD != nil {
		meta.JSONLD = MarshalJSONLD(r.JSONLD)
	}

	if site.SiteURL != "" {
		meta.Canonical = AbsoluteURL(r.Path, site.SiteURL)
		meta.OGURL = meta.Canonical
	}

	for _, img := range r.Images {
		meta.OGImages = append(meta.OGImages, AbsoluteURL(img, site.SiteURL))
	}
	if len(meta.OGImages) > 0 {
		meta.TwitterCard = "summary_large_image"
	}

	if r.Robots != nil {
		meta.Robots = r.Robots.String()
	}

	return meta
}

// buildRobotsDirective creates the robots meta content from noindex/nofollow flags.
func buildRobotsDirective(noIndex, noFollow bool) string {
	var parts []string

	if noIndex {
		parts = append(parts, "noindex")
	} else {
		parts = append(parts, "index")
	}

	if noFollow {
		parts = append(parts, "nofollow")
	} else {
		parts = append(parts, "follow")
	}

	return strings.Join(parts, ",")
}

// AbsoluteURL ensures a URL is absolute by prepending the site URL if needed.
func AbsoluteURL(url, siteURL string) string {
	if url == "" {
		return ""
	}
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") || strings.HasPrefix(url, "//") {
		return url
	}
	siteURL = strings.TrimSuffix(siteURL, "/")
	if siteURL == "" {
		return url
	}
	if url == "/" {
		return siteURL
	}
	if !strings.HasPrefix(url, "/") {
		url = "/" + url
	}
	return siteURL + url
}
