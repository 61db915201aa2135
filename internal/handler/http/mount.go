package http

import (
	"net/http"
	"net/url"
	"strings"
)

// mountPrefix hands requests to h with prefix removed from the path, so the
// mounted router sees "/version" for "/api/version" and "/" for "/api".
func mountPrefix(prefix string, h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u := new(url.URL)
		*u = *r.URL
		u.Path = ensureLeadingSlash(strings.TrimPrefix(r.URL.Path, prefix))
		if r.URL.RawPath != "" {
			u.RawPath = ensureLeadingSlash(strings.TrimPrefix(r.URL.RawPath, prefix))
		}

		r2 := new(http.Request)
		*r2 = *r
		r2.URL = u
		h.ServeHTTP(w, r2)
	})
}

func ensureLeadingSlash(p string) string {
	if !strings.HasPrefix(p, "/") {
		return "/" + p
	}
	return p
}
