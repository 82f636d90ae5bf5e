// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSitemapBuilder(t *testing.T) {
	b := NewSitemapBuilder("https://sarisa.test")
	b.Add("/", ChangeFreqDaily, "1.0", time.Time{})
	b.Add("/stores/", ChangeFreqDaily, "0.8", time.Time{})
	b.Add("stores", ChangeFreqDaily, "0.8", time.Time{}) // duplicate after normalizing
	b.Add("/stores/bakery", ChangeFreqWeekly, "0.6", time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC))

	require.Equal(t, 3, b.Len())

	out, err := b.Build()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), xml.Header))
	assert.Contains(t, string(out), `<urlset xmlns="`+XMLNamespace+`">`)

	var sm Sitemap
	require.NoError(t, xml.Unmarshal(out, &sm))
	require.Len(t, sm.URLs, 3)
	assert.Equal(t, "https://sarisa.test", sm.URLs[0].Loc)
	assert.Equal(t, "https://sarisa.test/stores", sm.URLs[1].Loc)
	assert.Equal(t, "https://sarisa.test/stores/bakery", sm.URLs[2].Loc)
	assert.Equal(t, "2026-02-01T08:00:00Z", sm.URLs[2].LastMod)
	assert.Empty(t, sm.URLs[0].LastMod)
}
