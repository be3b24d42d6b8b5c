package adapthttp

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"bodylog/internal/domain"
)

type weightRequest struct {
	Value      *decimal.Decimal `json:"value"`
	RecordedAt domain.Date      `json:"recordedAt"`
	Memo       *string          `json:"memo"`
}

func (b *weightRequest) validate() error {
	if b.Value == nil {
		return errors.New("value is required")
	}
	if b.RecordedAt.IsZero() {
		return errors.New("recordedAt is required")
	}
	return nil
}

type weightResponse struct {
	ID         int64           `json:"id"`
	Value      decimal.Decimal `json:"value"`
	RecordedAt domain.Date     `json:"recordedAt"`
	Memo       *string         `json:"memo"`
}

func weightResponseFrom(e *domain.WeightEntry) weightResponse {
	return weightResponse{ID: e.ID, Value: e.Value, RecordedAt: e.RecordedAt, Memo: e.Memo}
}

func weightResponsesFrom(entries []domain.WeightEntry) []weightResponse {
	out := make([]weightResponse, 0, len(entries))
	for i := range entries {
		out = append(out, weightResponseFrom(&entries[i]))
	}
	return out
}

func (s *Server) handleWeightCreate(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var body weightRequest
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := body.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	entry, err := s.weights.Record(r.Context(), p.AccountID, *body.Value, body.RecordedAt, body.Memo)
	if err != nil {
		writeError(w, statusFromErr(err), err)
		return
	}
	writeJSON(w, http.StatusCreated, weightResponseFrom(entry))
}

func (s *Server) handleWeightList(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	entries, err := s.queries.FindAll(r.Context(), p.AccountID)
	if err != nil {
		writeError(w, statusFromErr(err), err)
		return
	}
	writeJSON(w, http.StatusOK, weightResponsesFrom(entries))
}

func (s *Server) handleWeightGet(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	entry, err := s.queries.FindByID(r.Context(), p.AccountID, id)
	if err != nil {
		writeError(w, statusFromErr(err), err)
		return
	}
	writeJSON(w, http.StatusOK, weightResponseFrom(entry))
}

func (s *Server) handleWeightUpdate(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var body weightRequest
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := body.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	entry, err := s.weights.Update(r.Context(), p.AccountID, id, *body.Value, body.RecordedAt, body.Memo)
	if err != nil {
		writeError(w, statusFromErr(err), err)
		return
	}
	writeJSON(w, http.StatusOK, weightResponseFrom(entry))
}

func (s *Server) handleWeightDelete(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := s.weights.Delete(r.Context(), p.AccountID, id); err != nil {
		writeError(w, statusFromErr(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleWeightGraph(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	entries, err := s.queries.Graph(r.Context(), p.AccountID, r.URL.Query().Get("period"))
	if err != nil {
		writeError(w, statusFromErr(err), err)
		return
	}
	writeJSON(w, http.StatusOK, weightResponsesFrom(entries))
}

func (s *Server) handleWeightStats(w http.ResponseWriter, r *http.Request) {
	p, ok := principalFrom(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	stat, err := s.queries.Stats(r.Context(), p.AccountID)
	if err != nil {
		writeError(w, statusFromErr(err), err)
		return
	}
	writeJSON(w, http.StatusOK, stat)
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, errors.New("invalid id")
	}
	return id, nil
}
