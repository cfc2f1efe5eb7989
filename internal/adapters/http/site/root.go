// Package site serves the entry points that sit outside the business API.
package site

import (
	"context"
	"net/http"
)

// DashboardPath is where the root of the service sends browsers.
const DashboardPath = "/dashboard"

// Register attaches the root routes to mux.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	root := NewRootHandler(DashboardPath)
	mux.HandleFunc("GET /{$}", root.HandleRoot)
	mux.HandleFunc("GET /favicon.ico", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

// RootHandler redirects the bare root to the dashboard.
type RootHandler struct {
	target string
}

// NewRootHandler creates a root handler redirecting to target.
func NewRootHandler(target string) *RootHandler {
	if target == "" {
		target = DashboardPath
	}
	return &RootHandler{target: target}
}

// HandleRoot handles GET / requests.
func (h *RootHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.target, http.StatusFound)
}
