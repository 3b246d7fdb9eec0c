// Package adapthttp implements the HTTP adapter for the application.
package adapthttp

import (
	"net/http"

	"go.uber.org/zap"

	"lightweight/internal/app"
	"lightweight/internal/auth"
)

// DefaultPictureURL is shown for users that never set a profile image.
const DefaultPictureURL = "https://example.com/default_profile_picture.png"

// Server is the driving HTTP adapter that routes requests to the user
// repository.
type Server struct {
	repo         *app.UserRepository
	hasher       app.PasswordHasher
	tokens       *auth.Tokens
	sso          *SSO
	secureCookie bool
	log          *zap.Logger
}

// New creates a Server wired to the repository. Passwords arriving over the
// API are hashed with hasher before they reach the repository.
func New(repo *app.UserRepository, hasher app.PasswordHasher, tokens *auth.Tokens, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{repo: repo, hasher: hasher, tokens: tokens, log: log.Named("http")}
}

// WithSSO enables the OIDC login endpoints.
func (s *Server) WithSSO(sso *SSO) *Server {
	s.sso = sso
	return s
}

// WithSecureCookie marks session cookies Secure.
func (s *Server) WithSecureCookie(secure bool) *Server {
	s.secureCookie = secure
	return s
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	api.HandleFunc("/register", s.handleRegister)
	api.HandleFunc("/login", s.handleLogin)
	api.HandleFunc("/logout", s.handleLogout)
	api.HandleFunc("/sso/login", s.handleSSOLogin)
	api.HandleFunc("/sso/callback", s.handleSSOCallback)

	api.Handle("/me", s.requireUser(http.HandlerFunc(s.handleMe)))
	api.Handle("/weight", s.requireUser(http.HandlerFunc(s.handleWeight)))
	api.Handle("/weight/{id}", s.requireUser(http.HandlerFunc(s.handleWeightItem)))
	api.Handle("/profile-image", s.requireUser(http.HandlerFunc(s.handleProfileImage)))

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))

	return s.loggingMiddleware(withNoCache(root))
}
