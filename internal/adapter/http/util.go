package adapthttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"lightweight/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]any{"error": err.Error()})
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"error": msg})
}

// writeValidation reports a rejected field as 400.
func writeValidation(w http.ResponseWriter, err error) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": ve.Reason, "field": ve.Field})
		return
	}
	writeError(w, http.StatusBadRequest, err)
}

// writeFailure maps a repository failure to a status and a message fit for
// end users. Storage details stay in the logs.
func writeFailure(w http.ResponseWriter, err error) {
	switch domain.KindOf(err) {
	case domain.KindDuplicateEmail:
		writeMessage(w, http.StatusConflict, "An account with this email already exists.")
	case domain.KindInvalidCredentials:
		writeMessage(w, http.StatusUnauthorized, "Invalid username or password.")
	case domain.KindNotFound:
		writeMessage(w, http.StatusNotFound, "not found")
	default:
		writeMessage(w, http.StatusInternalServerError, "Something went wrong. Please try again.")
	}
}

func parseJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	return nil
}

func withNoCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}
