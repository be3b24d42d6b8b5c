package adapthttp

import (
	"net/http"

	"bodylog/internal/clerk"
)

// handleClerkWebhook verifies and registers an identity-provider webhook
// delivery. Rejections never reach the registration service.
func (s *Server) handleClerkWebhook(w http.ResponseWriter, r *http.Request) {
	req, err := clerk.ParseRegistration(r, s.webhooks)
	if err != nil {
		s.log.Warn(r.Context(), "webhook rejected", "error", err)
		writeError(w, statusFromErr(err), err)
		return
	}

	account, err := s.accounts.Register(r.Context(), req)
	if err != nil {
		s.log.Error(r.Context(), "webhook registration failed", "providerId", req.ProviderID, "error", err)
		writeError(w, statusFromErr(err), err)
		return
	}

	s.log.Info(r.Context(), "account registered", "accountId", account.ID, "providerId", account.ProviderID)
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
