package auth

import (
	"time"
)

// SessionClaims represents the claims stored in a PASETO session token.
// These are encrypted in v4.local tokens, so they're not readable without the key.
// The app has a single owner, so the subject is fixed; the interesting
// claims are the time bounds.
type SessionClaims struct {
	Issuer     string    `json:"iss"`
	Subject    string    `json:"sub"`
	Audience   string    `json:"aud"`
	Expiration time.Time `json:"exp"`
	NotBefore  time.Time `json:"nbf"`
	IssuedAt   time.Time `json:"iat"`
	TokenID    string    `json:"jti"`
}
