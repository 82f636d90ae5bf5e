// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"bytes"
	"encoding/json"
)

// SiteSeo holds the site-wide SEO defaults.
// The zero value is the empty record used when the backend is unavailable.
type SiteSeo struct {
	MetaTitle       string         `json:"meta_title,omitempty"`
	MetaDescription string         `json:"meta_description,omitempty"`
	Keywords        string         `json:"keywords,omitempty"` // comma-separated
	OGImage         string         `json:"og_image,omitempty"`
	OGImages        []string       `json:"og_images,omitempty"`
	JSONLD          map[string]any `json:"jsonld"` // {} and absent are distinct
}

// PageSeo holds the SEO overrides for one normalized route path.
type PageSeo struct {
	Path        string         `json:"path,omitempty"`
	Title       string         `json:"title,omitempty"`
	Description string         `json:"description,omitempty"`
	OGImage     string         `json:"og_image,omitempty"`
	OGImages    []string       `json:"og_images,omitempty"`
	JSONLD      map[string]any `json:"jsonld"`
	NoIndex     bool           `json:"noindex,omitempty"`
}

// IsEmpty reports whether the record carries no data.
func (s SiteSeo) IsEmpty() bool {
	return s.MetaTitle == "" && s.MetaDescription == "" && s.Keywords == "" &&
		s.OGImage == "" && len(s.OGImages) == 0 && len(s.JSONLD) == 0
}

// IsEmpty reports whether the record carries no data.
func (p PageSeo) IsEmpty() bool {
	return p.Path == "" && p.Title == "" && p.Description == "" && p.OGImage == "" &&
		len(p.OGImages) == 0 && len(p.JSONLD) == 0 && !p.NoIndex
}

// Unwrap parses a backend payload and returns the record it carries.
// The backend either wraps the record in an envelope keyed by key
// ({"site": {...}}) or returns it at the top level. Anything that does not
// parse as a JSON object yields an empty, non-nil map.
func Unwrap(payload []byte, key string) map[string]any {
	m, _ := unwrap(payload, key)
	return m
}

// unwrap is Unwrap that also reports whether the payload was a JSON object.
func unwrap(payload []byte, key string) (map[string]any, bool) {
	payload = bytes.TrimSpace(payload)
	if len(payload) == 0 {
		return map[string]any{}, false
	}

	var top map[string]any
	if err := json.Unmarshal(payload, &top); err != nil || top == nil {
		return map[string]any{}, false
	}

	nested, ok := top[key]
	if !ok {
		return top, true
	}
	// An envelope whose value is not an object carries no record.
	if obj, ok := nested.(map[string]any); ok {
		return obj, true
	}
	return map[string]any{}, true
}

// SiteSeoFromMap builds a SiteSeo from a decoded JSON object.
// Fields of an unexpected type are treated as absent.
func SiteSeoFromMap(m map[string]any) SiteSeo {
	return SiteSeo{
		MetaTitle:       stringField(m, "meta_title"),
		MetaDescription: stringField(m, "meta_description"),
		Keywords:        stringField(m, "keywords"),
		OGImage:         stringField(m, "og_image"),
		OGImages:        stringSlice(m["og_images"]),
		JSONLD:          objectField(m, "jsonld"),
	}
}

// PageSeoFromMap builds a PageSeo from a decoded JSON object.
// Fields of an unexpected type are treated as absent.
func PageSeoFromMap(m map[string]any) PageSeo {
	noIndex, _ := m["noindex"].(bool)
	return PageSeo{
		Path:        stringField(m, "path"),
		Title:       stringField(m, "title"),
		Description: stringField(m, "description"),
		OGImage:     stringField(m, "og_image"),
		OGImages:    stringSlice(m["og_images"]),
		JSONLD:      objectField(m, "jsonld"),
		NoIndex:     noIndex,
	}
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func objectField(m map[string]any, key string) map[string]any {
	obj, _ := m[key].(map[string]any)
	return obj
}

// stringSlice returns the string entries of v when v is a JSON array.
// Non-string and empty entries are dropped.
func stringSlice(v any) []string {
	arr, ok := v.([]any)
	if !ok {
		if ss, ok := v.([]string); ok {
			arr = make([]any, len(ss))
			for i, s := range ss {
				arr[i] = s
			}
		} else {
			return nil
		}
	}

	var out []string
	for _, item := range arr {
		if s, ok := item.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}
