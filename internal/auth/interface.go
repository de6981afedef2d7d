package auth

import "prism/internal/domain/models"

// JWTVerifier validates bearer tokens from the identity provider and
// extracts the claims this core cares about.
type JWTVerifier interface {
	VerifyToken(tokenString string) (*models.IdentityClaims, error)
	Close() error
}
