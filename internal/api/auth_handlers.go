package api

import (
	"net/http"

	"github.com/palmsoff/binderd/internal/http/response"
)

// LoginRequest is the request body for login.
type LoginRequest struct {
	Password string `json:"password" validate:"required,max=1024"`
}

// LoginResponse carries the session token.
type LoginResponse struct {
	Token string `json:"token"`
}

// handleLogin checks the app password and issues a session token.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := s.decodeBody(r, &req); err != nil {
		response.DomainError(w, err, s.logger)
		return
	}

	token, err := s.authService.Login(r.Context(), req.Password)
	if err != nil {
		response.DomainError(w, err, s.logger)
		return
	}

	response.Success(w, LoginResponse{Token: token}, s.logger)
}
