// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarisagroup/sarisa-web/internal/backend"
	"github.com/sarisagroup/sarisa-web/internal/cache"
	"github.com/sarisagroup/sarisa-web/internal/testutil"
)

// newTestService returns a Service reading from a fake backend serving
// routes (path relative to the API root → JSON body).
func newTestService(t *testing.T, routes map[string]string, c cache.Cacher) (*Service, *testutil.Backend) {
	t.Helper()
	b := testutil.NewBackend(t)
	for path, body := range routes {
		b.Handle(path, testutil.Response{Body: body})
	}

	client := backend.New(backend.Options{BaseURL: b.APIBase(), Timeout: time.Second})
	return NewService(client, Options{Cache: c, CacheTTL: time.Minute}), b
}

func TestServiceStoresEnvelopes(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bare array", `[{"slug":"bakery","name":"Bakery"},{"slug":"cafe","name":"Cafe"}]`},
		{"stores envelope", `{"stores":[{"slug":"bakery","name":"Bakery"},{"slug":"cafe","name":"Cafe"}]}`},
		{"data envelope", `{"data":[{"slug":"bakery","name":"Bakery"},{"slug":"cafe","name":"Cafe"}]}`},
		{"bad entry skipped", `[{"slug":"bakery","name":"Bakery"},42,{"slug":"cafe","name":"Cafe"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService(t, map[string]string{"public/stores": tt.body}, nil)

			stores, err := svc.Stores(context.Background())
			require.NoError(t, err)
			require.Len(t, stores, 2)
			assert.Equal(t, "bakery", stores[0].Slug)
			assert.Equal(t, "Cafe", stores[1].Name)
		})
	}
}

func TestServiceStoresBackendDown(t *testing.T) {
	svc, _ := newTestService(t, map[string]string{}, nil)

	_, err := svc.Stores(context.Background())
	require.Error(t, err)
}

func TestServiceStore(t *testing.T) {
	svc, _ := newTestService(t, map[string]string{
		"public/stores/bakery": `{"store":{"slug":"bakery","name":"Bakery","images":["https://cdn/a.jpg"]}}`,
	}, nil)

	st, err := svc.Store(context.Background(), "bakery")
	require.NoError(t, err)
	assert.Equal(t, "Bakery", st.Name)
	assert.Equal(t, "https://cdn/a.jpg", st.Cover())

	_, err = svc.Store(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Store(context.Background(), "../etc")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestServiceContactAndFooter(t *testing.T) {
	svc, _ := newTestService(t, map[string]string{
		"public/contact": `{"contact":{"email":"hi@sarisa.test","phone":"+63 2 555"}}`,
		"public/footer":  `{"text":"© Sarisagroup","links":[{"label":"About","url":"/about"}]}`,
	}, nil)

	c, err := svc.Contact(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "hi@sarisa.test", c.Email)
	assert.False(t, c.IsEmpty())

	f, err := svc.Footer(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "© Sarisagroup", f.Text)
	require.Len(t, f.Links, 1)
	assert.Equal(t, "/about", f.Links[0].URL)
}

func TestServiceContactNotObject(t *testing.T) {
	svc, _ := newTestService(t, map[string]string{"public/contact": `[1,2]`}, nil)

	_, err := svc.Contact(context.Background())
	assert.Error(t, err)
}

func TestServiceCachesListings(t *testing.T) {
	mem := cache.NewSimpleMemoryCache(time.Minute)
	defer mem.Close()

	svc, b := newTestService(t, map[string]string{
		"public/videos": `{"videos":[{"title":"Tour","url":"https://youtu.be/abc"}]}`,
	}, mem)

	for range 3 {
		videos, err := svc.Videos(context.Background())
		require.NoError(t, err)
		require.Len(t, videos, 1)
	}
	assert.Equal(t, 1, b.Hits("public/videos"))
}

func TestServiceDoesNotCacheErrors(t *testing.T) {
	mem := cache.NewSimpleMemoryCache(time.Minute)
	defer mem.Close()

	svc, b := newTestService(t, map[string]string{}, mem)

	for range 2 {
		_, err := svc.Events(context.Background())
		require.Error(t, err)
	}
	assert.Equal(t, 2, b.Hits("public/events"))
}

func TestServiceRefreshOverwritesCachedListings(t *testing.T) {
	mem := cache.NewSimpleMemoryCache(time.Minute)
	defer mem.Close()

	svc, b := newTestService(t, map[string]string{
		"public/stores":  `[{"slug":"bakery","name":"Bakery"}]`,
		"public/videos":  `[]`,
		"public/events":  `[]`,
		"public/contact": `{"email":"hello@sarisa.example"}`,
		"public/footer":  `{}`,
	}, mem)
	ctx := context.Background()

	stores, err := svc.Stores(ctx)
	require.NoError(t, err)
	require.Len(t, stores, 1)

	b.Handle("public/stores", testutil.Response{Body: `[{"slug":"bakery","name":"Bakery"},{"slug":"cafe","name":"Cafe"}]`})
	require.NoError(t, svc.Refresh(ctx))

	for _, path := range []string{"public/videos", "public/events", "public/contact", "public/footer"} {
		assert.Equal(t, 1, b.Hits(path), path)
	}
	assert.Equal(t, 2, b.Hits("public/stores"))

	stores, err = svc.Stores(ctx)
	require.NoError(t, err)
	assert.Len(t, stores, 2, "refreshed listing should be served from the cache")
	assert.Equal(t, 2, b.Hits("public/stores"))
}

func TestServiceRefreshKeepsCachedCopyOnFailure(t *testing.T) {
	mem := cache.NewSimpleMemoryCache(time.Minute)
	defer mem.Close()

	svc, b := newTestService(t, map[string]string{
		"public/stores": `[{"slug":"bakery","name":"Bakery"}]`,
	}, mem)
	ctx := context.Background()

	_, err := svc.Stores(ctx)
	require.NoError(t, err)

	b.Handle("public/stores", testutil.Response{Status: 503, Body: `{}`})
	assert.Error(t, svc.Refresh(ctx), "videos, events, contact and footer are missing")

	stores, err := svc.Stores(ctx)
	require.NoError(t, err)
	assert.Len(t, stores, 1)
	assert.Equal(t, 2, b.Hits("public/stores"))
}
