package adapthttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"bodylog/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]any{"error": err.Error()})
}

func parseJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	return nil
}

// statusFromErr translates domain errors into HTTP status codes. Everything
// unrecognised is a 500.
func statusFromErr(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAccessDenied):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrInvalidPeriod),
		errors.Is(err, domain.ErrMissingHeader),
		errors.Is(err, domain.ErrInvalidPayload):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidSignature),
		errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrMissingAccountClaim),
		errors.Is(err, domain.ErrInvalidAuthHeader):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
