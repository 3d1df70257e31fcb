package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"babystory-server/internal/models"
)

// AuthMiddleware verifies the Bearer token and stores the account UUID in
// the gin context. Identity comes from the external auth service; only the
// HMAC signature and expiry are checked here.
func AuthMiddleware(jwtSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			handleServiceError(c, models.ErrTokenInvalid)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			handleServiceError(c, models.ErrTokenInvalid)
			return
		}

		claims := &models.Claims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return jwtSecret, nil
		})
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				handleServiceError(c, models.ErrTokenExpired)
				return
			}
			log.Debug().Err(err).Msg("Token validation failed")
			handleServiceError(c, models.ErrTokenInvalid)
			return
		}
		if !token.Valid || claims.UserID == uuid.Nil {
			handleServiceError(c, models.ErrTokenInvalid)
			return
		}

		c.Set(models.UserContextKey, claims.UserID)
		c.Next()
	}
}

// userIDFromContext extracts the UUID placed by AuthMiddleware.
func userIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(models.UserContextKey)
	if !exists {
		return uuid.Nil, false
	}
	userID, ok := value.(uuid.UUID)
	return userID, ok
}
