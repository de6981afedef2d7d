package models

import "github.com/golang-jwt/jwt/v5"

// IdentityClaims represents the JWT claims issued by the identity provider.
// The subject claim carries the person id used as photo owner.
type IdentityClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"` // "authenticated" or "anon"
}

// PersonID returns the person id from the JWT subject claim.
func (c *IdentityClaims) PersonID() string {
	return c.Subject
}
