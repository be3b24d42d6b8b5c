// Package adapthttp is the driving HTTP adapter that routes requests to
// application services.
package adapthttp

import (
	"net/http"

	"bodylog/internal/app"
	"bodylog/internal/clerk"
	"bodylog/internal/logging"
)

// Server routes HTTP requests to the application services.
type Server struct {
	accounts *app.AccountService
	weights  *app.WeightService
	queries  *app.WeightQueryService
	webhooks *clerk.Verifier
	tokens   TokenVerifier
	log      logging.Logger
}

// New creates a Server wired to the given application services.
func New(
	accounts *app.AccountService,
	weights *app.WeightService,
	queries *app.WeightQueryService,
	webhooks *clerk.Verifier,
	tokens TokenVerifier,
	log logging.Logger,
) *Server {
	return &Server{
		accounts: accounts,
		weights:  weights,
		queries:  queries,
		webhooks: webhooks,
		tokens:   tokens,
		log:      log,
	}
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	// Webhook authenticity comes from signature verification, not bearer auth.
	mux.HandleFunc("POST /webhooks/clerk", s.handleClerkWebhook)

	protected := func(h http.HandlerFunc) http.Handler { return s.authMiddleware(h) }
	mux.Handle("POST /weights", protected(s.handleWeightCreate))
	mux.Handle("GET /weights", protected(s.handleWeightList))
	mux.Handle("GET /weights/graph", protected(s.handleWeightGraph))
	mux.Handle("GET /weights/stats", protected(s.handleWeightStats))
	mux.Handle("GET /weights/{id}", protected(s.handleWeightGet))
	mux.Handle("PUT /weights/{id}", protected(s.handleWeightUpdate))
	mux.Handle("DELETE /weights/{id}", protected(s.handleWeightDelete))

	return s.loggingMiddleware(withNoCache(mux))
}
