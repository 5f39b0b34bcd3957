package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/siteback/internal/common"
)

type registerRequest struct {
	FIO   string `json:"FIO"`
	Email string `json:"email"`
	Pass  string `json:"pass"`
}

type loginRequest struct {
	Login string `json:"login"`
	Pass  string `json:"pass"`
}

func (s *HTTPServer) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	token, _, err := s.accounts.Register(r.Context(), req.FIO, req.Email, req.Pass)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.metrics.authEvent("register")

	s.setSessionCookie(w, token)
	writeJSON(w, http.StatusOK, ok)
}

func (s *HTTPServer) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	token, err := s.accounts.Login(r.Context(), req.Login, req.Pass)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			s.metrics.authEvent("login_failed")
		}
		s.writeServiceError(w, r, err)
		return
	}

	s.metrics.authEvent("login")
	s.setSessionCookie(w, token)
	writeJSON(w, http.StatusOK, ok)
}

// logout always succeeds from the client's point of view.
func (s *HTTPServer) logout(w http.ResponseWriter, r *http.Request) {
	if err := s.accounts.Logout(r.Context(), sessionToken(r)); err != nil {
		s.logger.Error(r.Context(), "logout failed", "error", err)
	}

	s.metrics.authEvent("logout")
	s.clearSessionCookie(w)
	writeJSON(w, http.StatusOK, ok)
}
