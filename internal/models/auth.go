package models

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// UserContextKey is the gin context key under which the auth middleware
// stores the authenticated account UUID.
const UserContextKey = "userID"

// Claims is the JWT payload issued by the external auth collaborator.
// The pipeline trusts the identity and performs no credential checks.
type Claims struct {
	UserID uuid.UUID `json:"id"`
	jwt.RegisteredClaims
}
