package http

import (
	"net/http"
	"net/url"
	"path"
	"strings"
)

const staticCacheControl = "public, max-age=0"

// staticFiles serves GET and HEAD requests from the directory root.
//
// Anything it cannot serve falls through to the next stage: other methods,
// missing files, dotfiles and directories without index.html. A directory
// requested without a trailing slash is redirected to the slash form.
func staticFiles(root string) func(http.Handler) http.Handler {
	dir := http.Dir(root)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet && r.Method != http.MethodHead {
				next.ServeHTTP(w, r)
				return
			}

			name := path.Clean("/" + r.URL.Path)
			if hasDotSegment(name) {
				next.ServeHTTP(w, r)
				return
			}

			if served := serveStatic(w, r, dir, name); !served {
				next.ServeHTTP(w, r)
			}
		})
	}
}

func serveStatic(w http.ResponseWriter, r *http.Request, dir http.Dir, name string) bool {
	f, err := dir.Open(name)
	if err != nil {
		return false
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return false
	}

	if !info.IsDir() {
		w.Header().Set("Cache-Control", staticCacheControl)
		http.ServeContent(w, r, info.Name(), info.ModTime(), f)
		return true
	}

	if !strings.HasSuffix(r.URL.Path, "/") {
		// The cleaned name collapses leading slashes, so the target can never
		// be read as a protocol-relative URL.
		target := (&url.URL{Path: strings.TrimSuffix(name, "/") + "/"}).EscapedPath()
		if r.URL.RawQuery != "" {
			target += "?" + r.URL.RawQuery
		}
		http.Redirect(w, r, target, http.StatusMovedPermanently)
		return true
	}

	index, err := dir.Open(path.Join(name, "index.html"))
	if err != nil {
		return false
	}
	defer index.Close()

	indexInfo, err := index.Stat()
	if err != nil || indexInfo.IsDir() {
		return false
	}

	w.Header().Set("Cache-Control", staticCacheControl)
	http.ServeContent(w, r, indexInfo.Name(), indexInfo.ModTime(), index)
	return true
}

// hasDotSegment reports whether any element of the cleaned path starts with
// a dot.
func hasDotSegment(name string) bool {
	for _, segment := range strings.Split(name, "/") {
		if strings.HasPrefix(segment, ".") {
			return true
		}
	}
	return false
}
