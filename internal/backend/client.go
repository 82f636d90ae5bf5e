// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package backend provides the HTTP client for the directory backend API.
package backend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// maxBodySize caps the number of bytes read from a backend response.
const maxBodySize = 1 << 20

// DefaultTimeout is the request timeout used when none is configured.
const DefaultTimeout = 5 * time.Second

// ErrNoToken is returned when an authenticated request is made without a token.
var ErrNoToken = errors.New("backend: no admin token configured")

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend: %s %s: unexpected status %d", e.Method, e.URL, e.StatusCode)
}

// Options configures a Client.
type Options struct {
	// BaseURL is the API root, already ending in /api.
	BaseURL string

	// Token is the admin bearer token. Empty disables authenticated requests.
	Token string

	// Timeout bounds each request. Zero uses DefaultTimeout.
	Timeout time.Duration

	// HTTPClient overrides the underlying client (tests).
	HTTPClient *http.Client
}

// Client issues JSON requests against the backend API.
type Client struct {
	baseURL string
	token   string
	timeout time.Duration
	http    *http.Client
}

// New creates a backend client.
func New(opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		token:   opts.Token,
		timeout: timeout,
		http:    hc,
	}
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// HasToken reports whether authenticated requests are possible.
func (c *Client) HasToken() bool {
	return c.token != ""
}

// Get performs a GET request for path (relative to the API root) and returns
// the response body. When auth is true the admin bearer token is attached.
// Non-2xx responses are returned as *StatusError.
func (c *Client) Get(ctx context.Context, path string, query url.Values, auth bool) ([]byte, error) {
	if auth && c.token == "" {
		return nil, ErrNoToken
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	target := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if auth {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting %s: %w", target, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
		return nil, &StatusError{Method: http.MethodGet, URL: target, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", target, err)
	}
	return body, nil
}

// Ping reports whether the backend answers HTTP requests. Any HTTP
// response, including an error status, counts as reachable.
func (c *Client) Ping(ctx context.Context, path string) error {
	_, err := c.Get(ctx, path, nil, false)
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return nil
	}
	return err
}
