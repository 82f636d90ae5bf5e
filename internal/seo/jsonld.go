// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"bytes"
	"encoding/json"
	"html/template"
	"maps"
	"slices"
	"strings"
)

const (
	schemaContext = "https://schema.org"
	graphKey      = "@graph"
	imageKey      = "image"
)

// MergeJSONLD combines the site and page structured data for a page.
//
// When the page data is a @graph document, the graph is emitted as is and
// images are filled only into nodes that declare no image of their own.
// Otherwise the two objects are shallow-merged (page keys win) and the
// merged object's image is replaced by images.
//
// It returns nil when neither record carries JSON-LD. Inputs are not modified.
func MergeJSONLD(site SiteSeo, page PageSeo, images []string) map[string]any {
	if graph, ok := page.JSONLD[graphKey].([]any); ok {
		return mergeGraph(graph, images)
	}

	if site.JSONLD == nil && page.JSONLD == nil {
		return nil
	}

	merged := make(map[string]any, len(site.JSONLD)+len(page.JSONLD)+1)
	maps.Copy(merged, site.JSONLD)
	maps.Copy(merged, page.JSONLD)
	if len(images) > 0 {
		merged[imageKey] = slices.Clone(images)
	}
	return merged
}

func mergeGraph(graph []any, images []string) map[string]any {
	nodes := make([]any, len(graph))
	for i, n := range graph {
		node, ok := n.(map[string]any)
		if !ok || len(images) == 0 {
			nodes[i] = n
			continue
		}
		if _, has := node[imageKey]; has {
			nodes[i] = node
			continue
		}
		filled := maps.Clone(node)
		filled[imageKey] = slices.Clone(images)
		nodes[i] = filled
	}

	return map[string]any{
		"@context": schemaContext,
		graphKey:   nodes,
	}
}

// WebPageSchema builds the minimal WebPage object used when neither the site
// nor the page supplies structured data.
func WebPageSchema(name, description, url string, images []string) map[string]any {
	m := map[string]any{
		"@context": schemaContext,
		"@type":    "WebPage",
		"name":     name,
	}
	if description != "" {
		m["description"] = description
	}
	if url != "" {
		m["url"] = url
	}
	if len(images) > 0 {
		m[imageKey] = slices.Clone(images)
	}
	return m
}

// MarshalJSONLD encodes structured data for a <script type="application/ld+json">
// block. Every "<" is escaped so field values cannot close the script element.
func MarshalJSONLD(v any) template.JS {
	if v == nil {
		return ""
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return ""
	}

	out := strings.TrimSuffix(buf.String(), "\n")
	return template.JS(strings.ReplaceAll(out, "<", `\u003c`))
}
