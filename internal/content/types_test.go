// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"testing"
	"time"
)

func TestVideoEmbedURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.youtube.com/watch?v=abc123&t=10", "https://www.youtube-nocookie.com/embed/abc123"},
		{"https://youtu.be/xyz?si=1", "https://www.youtube-nocookie.com/embed/xyz"},
		{"https://vimeo.com/76979871", "https://player.vimeo.com/video/76979871"},
		{"https://player.vimeo.com/video/1", "https://player.vimeo.com/video/1"},
		{"https://cdn.example.com/v.mp4", "https://cdn.example.com/v.mp4"},
	}

	for _, tt := range tests {
		if got := (Video{URL: tt.url}).EmbedURL(); got != tt.want {
			t.Errorf("EmbedURL(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestEventStart(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{"2026-03-01T18:00:00Z", time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC), true},
		{"2026-03-01T18:00:00", time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC), true},
		{"2026-03-01", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), true},
		{"next week", time.Time{}, false},
		{"", time.Time{}, false},
	}

	for _, tt := range tests {
		got, ok := Event{StartsAt: tt.in}.Start()
		if ok != tt.ok || !got.Equal(tt.want) {
			t.Errorf("Start(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestStoreCover(t *testing.T) {
	if got := (Store{}).Cover(); got != "" {
		t.Errorf("Cover() = %q, want empty", got)
	}
	if got := (Store{ImageURL: "a", Images: []string{"b"}}).Cover(); got != "a" {
		t.Errorf("Cover() = %q, want a", got)
	}
}
