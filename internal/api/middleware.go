package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	apperrors "github.com/palmsoff/binderd/internal/errors"
	"github.com/palmsoff/binderd/internal/http/response"
)

// requireAuth validates the bearer session token. There is a single owner,
// so nothing beyond validity needs checking.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := bearerToken(r.Header.Get("Authorization"))
		if err != nil {
			response.Unauthorized(w, err.Error(), s.logger)
			return
		}

		if _, err := s.authService.VerifyToken(token); err != nil {
			if errors.Is(err, apperrors.ErrTokenExpired) {
				response.Unauthorized(w, "Session expired", s.logger)
				return
			}
			response.Unauthorized(w, "Invalid token", s.logger)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// authenticateRequest is the huma-side counterpart of requireAuth.
func (s *Server) authenticateRequest(_ context.Context, authHeader string) error {
	token, err := bearerToken(authHeader)
	if err != nil {
		return huma.Error401Unauthorized(err.Error())
	}
	if _, err := s.authService.VerifyToken(token); err != nil {
		return huma.Error401Unauthorized("Invalid or expired token")
	}
	return nil
}

func bearerToken(authHeader string) (string, error) {
	if authHeader == "" {
		return "", errors.New("Missing authorization header")
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", errors.New("Invalid authorization header format")
	}
	return parts[1], nil
}
