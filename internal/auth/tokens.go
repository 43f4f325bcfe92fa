package auth

import (
	"encoding/json/v2"
	"fmt"
	"strings"
	"time"

	"aidanwoods.dev/go-paseto"

	apperrors "github.com/palmsoff/binderd/internal/errors"
	"github.com/palmsoff/binderd/internal/id"
)

const (
	tokenIssuer   = "binderd"
	tokenAudience = "binderd-client"

	// SubjectOwner is the fixed token subject. One password, one owner.
	SubjectOwner = "owner"
)

// TokenService handles PASETO token generation and verification.
type TokenService struct {
	symmetricKey    paseto.V4SymmetricKey
	sessionDuration time.Duration
}

// NewTokenService creates a new token service. key must be the 32-byte
// symmetric key from LoadOrGenerateKey.
func NewTokenService(key []byte, sessionDuration time.Duration) (*TokenService, error) {
	symmetricKey, err := paseto.V4SymmetricKeyFromBytes(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create PASETO symmetric key: %w", err)
	}

	return &TokenService{
		symmetricKey:    symmetricKey,
		sessionDuration: sessionDuration,
	}, nil
}

// GenerateSessionToken creates a new PASETO v4.local session token.
func (s *TokenService) GenerateSessionToken() (string, error) {
	now := time.Now()

	token := paseto.NewToken()
	token.SetIssuer(tokenIssuer)
	token.SetSubject(SubjectOwner)
	token.SetAudience(tokenAudience)
	token.SetIssuedAt(now)
	token.SetNotBefore(now)
	token.SetExpiration(now.Add(s.sessionDuration))

	tokenID, err := id.Generate("token")
	if err != nil {
		return "", fmt.Errorf("generate token ID: %w", err)
	}
	token.SetJti(tokenID)

	return token.V4Encrypt(s.symmetricKey, nil), nil
}

// VerifySessionToken verifies and parses a PASETO session token.
// Returns the claims if valid; expired tokens surface a distinct error so
// the client can prompt for the password again instead of showing a failure.
func (s *TokenService) VerifySessionToken(tokenString string) (*SessionClaims, error) {
	parser := paseto.NewParser()
	parser.AddRule(paseto.ForAudience(tokenAudience))
	parser.AddRule(paseto.IssuedBy(tokenIssuer))
	parser.AddRule(paseto.NotExpired())
	parser.AddRule(paseto.ValidAt(time.Now()))

	token, err := parser.ParseV4Local(s.symmetricKey, tokenString, nil)
	if err != nil {
		if strings.Contains(err.Error(), "expired") {
			return nil, apperrors.TokenExpired("session expired")
		}
		return nil, apperrors.Unauthorized("invalid token").WithCause(err)
	}

	var claims SessionClaims
	if err := json.Unmarshal(token.ClaimsJSON(), &claims); err != nil {
		return nil, apperrors.Unauthorized("invalid token claims").WithCause(err)
	}

	return &claims, nil
}

// SessionDuration returns the configured session lifetime.
func (s *TokenService) SessionDuration() time.Duration {
	return s.sessionDuration
}
