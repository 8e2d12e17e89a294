package api

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
)

// getPathID extracts the task ID from the URL path.
// chi routes on the escaped path when the request carries one (an encoded
// slash, for instance), so the segment is unescaped only in that case.
// Task IDs are opaque, so no format check is applied.
func getPathID(r *http.Request) string {
	id := chi.URLParam(r, "id")
	if r.URL.RawPath == "" {
		return id
	}
	if unescaped, err := url.PathUnescape(id); err == nil {
		return unescaped
	}
	return id
}
