// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"

	"github.com/sarisagroup/sarisa-web/internal/seo"
)

// StripTrailingSlash redirects (301) any path that differs from its
// normalized form, so /stores/ and /stores// both land on /stores.
// The query string is preserved.
func StripTrailingSlash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		if normalized := seo.NormalizePath(path); normalized != path {
			target := normalized
			if r.URL.RawQuery != "" {
				target += "?" + r.URL.RawQuery
			}
			http.Redirect(w, r, target, http.StatusMovedPermanently)
			return
		}
		next.ServeHTTP(w, r)
	})
}
