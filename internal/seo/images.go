// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

// MaxImages is the maximum number of share images emitted for a page.
const MaxImages = 4

// CollectImages gathers share image URLs for a page in priority order:
// page JSON-LD images, site JSON-LD images, page og_images, site og_images,
// page og_image, site og_image. Empty entries are dropped, duplicates keep
// their first position and the result holds at most MaxImages URLs.
func CollectImages(page PageSeo, site SiteSeo) []string {
	sources := [][]string{
		stringSlice(page.JSONLD["image"]),
		stringSlice(site.JSONLD["image"]),
		page.OGImages,
		site.OGImages,
		single(page.OGImage),
		single(site.OGImage),
	}

	seen := make(map[string]struct{})
	images := make([]string, 0, MaxImages)
	for _, src := range sources {
		for _, url := range src {
			if url == "" {
				continue
			}
			if _, dup := seen[url]; dup {
				continue
			}
			seen[url] = struct{}{}
			images = append(images, url)
			if len(images) == MaxImages {
				return images
			}
		}
	}
	return images
}

func single(s string) []string {
	if s == "" {
		return nil
	}
	return []string{s}
}
