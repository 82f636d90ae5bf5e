// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

// DefaultBrandName is the title used when neither record supplies one.
const DefaultBrandName = "Sarisagroup"

// Robots is the robots directive of a resolved page.
type Robots struct {
	Index  bool `json:"index"`
	Follow bool `json:"follow"`
}

// String renders the directive as a robots meta content value.
func (r Robots) String() string {
	return buildRobotsDirective(!r.Index, !r.Follow)
}

// Resolved is the metadata of one page render, computed from the site and
// page records. It is never persisted.
type Resolved struct {
	Path        string         `json:"path"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Keywords    string         `json:"keywords,omitempty"`
	Images      []string       `json:"images"`
	Robots      *Robots        `json:"robots,omitempty"` // nil means no restriction
	JSONLD      map[string]any `json:"jsonld"`
}

// ResolveOptions carries the page-independent inputs of Resolve.
type ResolveOptions struct {
	Path      string // requested route; the page record's path when empty
	BrandName string // title fallback; DefaultBrandName when empty
	URL       string // absolute URL of the page, used by the WebPage fallback
}

// Resolve merges the site and page records into the metadata of one page.
// Page values take precedence over site values.
func Resolve(site SiteSeo, page PageSeo, opts ResolveOptions) Resolved {
	brand := opts.BrandName
	if brand == "" {
		brand = DefaultBrandName
	}

	r := Resolved{
		Path:        NormalizePath(firstNonEmpty(opts.Path, page.Path)),
		Title:       firstNonEmpty(page.Title, site.MetaTitle, brand),
		Description: firstNonEmpty(page.Description, site.MetaDescription),
		Keywords:    site.Keywords,
		Images:      CollectImages(page, site),
	}

	if page.NoIndex {
		r.Robots = &Robots{Index: false, Follow: false}
	}

	r.JSONLD = MergeJSONLD(site, page, r.Images)
	if r.JSONLD == nil {
		r.JSONLD = WebPageSchema(r.Title, r.Description, opts.URL, nil)
	}

	return r
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
