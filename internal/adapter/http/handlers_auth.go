package adapthttp

import (
	"net/http"

	"go.uber.org/zap"

	"lightweight/internal/domain"
)

const sessionCookie = "session"

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req domain.Registration
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeValidation(w, err)
		return
	}

	digest := s.hasher.Hash(req.Password)
	if digest == "" {
		s.log.Error("password hasher returned an empty digest")
		writeFailure(w, domain.ErrStorageFailure)
		return
	}

	res := s.repo.Register(r.Context(), domain.User{
		Email:       req.Email,
		Username:    req.Username,
		Password:    digest,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DateOfBirth: req.DateOfBirth,
	})
	if !res.IsOK() {
		writeFailure(w, res.Err())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"user": res.Value()})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	res := s.repo.Login(r.Context(), req.Username, req.Password)
	if !res.IsOK() {
		writeFailure(w, res.Err())
		return
	}

	u := res.Value()
	if !s.startSession(w, u.ID) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": u})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secureCookie,
		MaxAge:   -1,
	})
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// startSession issues a token for userID and sets the session cookie. It
// reports false after writing an error response.
func (s *Server) startSession(w http.ResponseWriter, userID int64) bool {
	token, err := s.tokens.Issue(userID)
	if err != nil {
		s.log.Error("issue session token", zap.Int64("user_id", userID), zap.Error(err))
		writeFailure(w, domain.ErrStorageFailure)
		return false
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secureCookie,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(s.tokens.TTL().Seconds()),
	})
	return true
}
