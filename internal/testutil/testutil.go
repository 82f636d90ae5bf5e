// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package testutil provides shared test helpers: silent loggers and a fake
// backend API.
package testutil

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

// TestLogger creates a silent test logger.
func TestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Response is a canned backend reply.
type Response struct {
	Status int    // defaults to 200
	Body   string // JSON body
	Delay  time.Duration

	// Token, when set, is required as the bearer token; other requests get 401.
	Token string
}

// Backend is a fake backend API. Unregistered paths answer 404.
type Backend struct {
	*httptest.Server

	mu     sync.Mutex
	routes map[string]Response
	hits   map[string]int
	auth   map[string]string
}

// NewBackend starts a fake backend that is closed when the test ends.
func NewBackend(t *testing.T) *Backend {
	t.Helper()
	b := &Backend{
		routes: make(map[string]Response),
		hits:   make(map[string]int),
		auth:   make(map[string]string),
	}
	b.Server = httptest.NewServer(http.HandlerFunc(b.serve))
	t.Cleanup(b.Close)
	return b
}

// APIBase returns the API root of the backend.
func (b *Backend) APIBase() string {
	return b.URL + "/api"
}

// Handle registers the reply for path, relative to the API root ("public/stores").
func (b *Backend) Handle(path string, resp Response) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.routes["/api/"+path] = resp
}

// Hits returns how many requests path received.
func (b *Backend) Hits(path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hits["/api/"+path]
}

// Authorization returns the Authorization header of the last request to path.
func (b *Backend) Authorization(path string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.auth["/api/"+path]
}

func (b *Backend) serve(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	b.hits[r.URL.Path]++
	b.auth[r.URL.Path] = r.Header.Get("Authorization")
	resp, ok := b.routes[r.URL.Path]
	b.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	if resp.Delay > 0 {
		select {
		case <-time.After(resp.Delay):
		case <-r.Context().Done():
			return
		}
	}
	if resp.Token != "" && r.Header.Get("Authorization") != "Bearer "+resp.Token {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	status := resp.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, resp.Body)
}
