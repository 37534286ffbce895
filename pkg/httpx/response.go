// Package httpx holds the transport-level plumbing shared by all
// handlers: JSON responses, middleware composition, session cookies and
// rate limiting.
package httpx

import (
	"encoding/json"
	"net/http"
)

// WriteJSON encodes v as the response body with the given status. Every
// response carries no-store cache headers since all endpoints return
// per-user data.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// The status line is already out; an encode failure here is not
	// reportable to the client.
	_ = json.NewEncoder(w).Encode(v)
}

// NoCache marks the response as uncacheable.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}
