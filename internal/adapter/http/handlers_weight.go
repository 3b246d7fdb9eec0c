package adapthttp

import (
	"net/http"
	"strconv"

	"lightweight/internal/domain"
)

func (s *Server) handleWeight(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	u := currentUser(r)

	switch r.Method {
	case http.MethodGet:
		res := s.repo.GetWeightLogs(ctx, u.ID)
		if !res.IsOK() {
			writeFailure(w, res.Err())
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": res.Value()})

	case http.MethodPost:
		var body struct {
			Weight string `json:"weight"`
			Date   string `json:"date"`
		}
		if err := parseJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		if err := domain.ValidateWeight(body.Weight); err != nil {
			writeValidation(w, err)
			return
		}
		date, err := domain.ParseDate(body.Date)
		if err != nil {
			writeValidation(w, &domain.ValidationError{Field: "date", Reason: "Date must be in the format MM/DD/YYYY."})
			return
		}

		res := s.repo.InsertWeightLog(ctx, u.ID, body.Weight, date)
		if !res.IsOK() {
			writeFailure(w, res.Err())
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"entry": res.Value()})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleWeightItem deletes one of the caller's logs. Ids that are unknown or
// belong to someone else get the same 204 as a successful delete.
func (s *Server) handleWeightItem(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	ctx := r.Context()
	u := currentUser(r)

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeMessage(w, http.StatusBadRequest, "invalid id")
		return
	}

	owned := s.repo.GetWeightLogs(ctx, u.ID)
	if !owned.IsOK() {
		writeFailure(w, owned.Err())
		return
	}
	for _, l := range owned.Value() {
		if l.ID != id {
			continue
		}
		if res := s.repo.DeleteWeightLog(ctx, id); !res.IsOK() {
			writeFailure(w, res.Err())
			return
		}
		break
	}
	w.WriteHeader(http.StatusNoContent)
}
