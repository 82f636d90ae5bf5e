// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package content reads the public directory listings (stores, videos,
// events, contact details and footer) from the backend API.
package content

import (
	"strings"
	"time"
)

// Store is a business listed in the directory.
type Store struct {
	ID          string   `json:"id,omitempty"`
	Slug        string   `json:"slug"`
	Name        string   `json:"name"`
	Category    string   `json:"category,omitempty"`
	Description string   `json:"description,omitempty"` // markdown
	Address     string   `json:"address,omitempty"`
	Phone       string   `json:"phone,omitempty"`
	Email       string   `json:"email,omitempty"`
	Website     string   `json:"website,omitempty"`
	ImageURL    string   `json:"image_url,omitempty"`
	Images      []string `json:"images,omitempty"`
}

// Cover returns the first image of the store, or "".
func (s Store) Cover() string {
	if s.ImageURL != "" {
		return s.ImageURL
	}
	if len(s.Images) > 0 {
		return s.Images[0]
	}
	return ""
}

// Video is an embedded video shown on the videos page.
type Video struct {
	ID           string `json:"id,omitempty"`
	Title        string `json:"title"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	Description  string `json:"description,omitempty"`
}

// EmbedURL returns an iframe URL for YouTube and Vimeo links. Other URLs
// are returned unchanged.
func (v Video) EmbedURL() string {
	u := v.URL
	switch {
	case strings.Contains(u, "youtube.com/watch?v="):
		id := u[strings.Index(u, "v=")+2:]
		if i := strings.IndexAny(id, "&#"); i >= 0 {
			id = id[:i]
		}
		return "https://www.youtube-nocookie.com/embed/" + id
	case strings.Contains(u, "youtu.be/"):
		id := u[strings.Index(u, "youtu.be/")+len("youtu.be/"):]
		if i := strings.IndexAny(id, "?&#"); i >= 0 {
			id = id[:i]
		}
		return "https://www.youtube-nocookie.com/embed/" + id
	case strings.Contains(u, "vimeo.com/") && !strings.Contains(u, "player.vimeo.com"):
		id := u[strings.LastIndex(u, "/")+1:]
		return "https://player.vimeo.com/video/" + id
	}
	return u
}

// Event is a dated happening listed on the events page.
type Event struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"` // markdown
	Location    string `json:"location,omitempty"`
	StartsAt    string `json:"starts_at,omitempty"`
	EndsAt      string `json:"ends_at,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
}

// Start parses StartsAt as RFC 3339 or a plain date.
func (e Event) Start() (time.Time, bool) {
	return parseTime(e.StartsAt)
}

// End parses EndsAt as RFC 3339 or a plain date.
func (e Event) End() (time.Time, bool) {
	return parseTime(e.EndsAt)
}

func parseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Contact holds the directory operator's contact details.
type Contact struct {
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	Hours   string `json:"hours,omitempty"`
	MapURL  string `json:"map_url,omitempty"`
}

// IsEmpty reports whether no contact detail is set.
func (c Contact) IsEmpty() bool {
	return c == Contact{}
}

// Link is a labelled footer link.
type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Footer is the site footer content.
type Footer struct {
	Text    string `json:"text,omitempty"`
	Links   []Link `json:"links,omitempty"`
	Socials []Link `json:"socials,omitempty"`
}
