// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter builds the chi router: standard middleware, unauthenticated
// health checks, and the API routes under /api.
func NewRouter(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health/live", healthOK)
	r.Get("/health/ready", healthOK)

	r.Route("/api", func(r chi.Router) {
		r.Post("/documents", h.UploadDocument)
		r.Get("/patents/{number}", h.GetPatent)
		r.Post("/translate", h.Translate)
		r.Get("/submissions", h.ListSubmissions)
		r.Get("/submissions/{id}", h.GetSubmission)
	})

	return r
}

func healthOK(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
