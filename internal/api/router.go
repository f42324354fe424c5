package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/halmos/ponens/internal/verifyservice"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(svc *verifyservice.Service, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Verdicts.
	r.Get("/verdicts", h.ListVerdicts)
	r.Get("/summary", h.Summary)

	// Proof documents.
	r.Get("/documents/*", h.GetDocument)
	r.Put("/documents/*", h.PutDocument)
	r.Delete("/documents/*", h.DeleteDocument)

	// Ad-hoc verification.
	r.Post("/verify", h.Verify)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
