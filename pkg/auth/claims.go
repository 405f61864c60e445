package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// IdentityClaim captures the data available when issuing a token.
type IdentityClaim struct {
	Email string
	Name  string
}

// AccessTokenClaims is the typed JWT handed to clients. Role is deliberately
// absent: authorization re-reads the user record per request so revocation
// is immediate rather than bounded by token expiry.
type AccessTokenClaims struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}
