// Package service provides the business logic layer for collections, the
// wishlist, the binder, and imports.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/palmsoff/binderd/internal/auth"
	apperrors "github.com/palmsoff/binderd/internal/errors"
)

// AuthService gates the app behind a single password and issues session
// tokens. There are no user accounts.
type AuthService struct {
	passwordHash string
	tokens       *auth.TokenService
	logger       *slog.Logger
}

// NewAuthService creates a new authentication service. The configured
// password is hashed once at startup; the plaintext is not retained.
func NewAuthService(password string, tokens *auth.TokenService, logger *slog.Logger) (*AuthService, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash app password: %w", err)
	}

	return &AuthService{
		passwordHash: hash,
		tokens:       tokens,
		logger:       logger,
	}, nil
}

// Login verifies the password and issues a session token.
func (s *AuthService) Login(ctx context.Context, password string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ok, err := auth.VerifyPassword(s.passwordHash, password)
	if err != nil {
		return "", apperrors.Internal("password verification failed").WithCause(err)
	}
	if !ok {
		s.logger.Warn("login rejected")
		return "", apperrors.InvalidCredentials("incorrect password")
	}

	token, err := s.tokens.GenerateSessionToken()
	if err != nil {
		return "", apperrors.Internal("issue session token").WithCause(err)
	}

	s.logger.Info("login succeeded")
	return token, nil
}

// VerifyToken validates a session token.
func (s *AuthService) VerifyToken(token string) (*auth.SessionClaims, error) {
	return s.tokens.VerifySessionToken(token)
}
