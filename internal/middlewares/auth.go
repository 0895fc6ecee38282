package middlewares

import (
	"context"
	"net/http"
	"strings"

	"raffle-api/internal/lib/jwt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const UserIDKey = "user_id"

// Authenticator verifies Basic credentials and that a token's subject still exists.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (uuid.UUID, error)
	UserExists(ctx context.Context, userID string) (bool, error)
}

type AuthMiddleware struct {
	jwtGen *jwt.Generator
	auth   Authenticator
}

// NewAuthMiddleware accepts Bearer access tokens and, when auth is not nil,
// HTTP Basic credentials. With auth set, a Bearer token whose user has been
// deleted is rejected.
func NewAuthMiddleware(jwtGen *jwt.Generator, auth Authenticator) *AuthMiddleware {
	return &AuthMiddleware{jwtGen: jwtGen, auth: auth}
}

func (m *AuthMiddleware) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			unauthorized(c)
			return
		}

		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			userID, err := m.jwtGen.Parse(strings.TrimSpace(token), jwt.TypeAccess)
			if err != nil {
				unauthorized(c)
				return
			}
			if m.auth != nil {
				exists, err := m.auth.UserExists(c.Request.Context(), userID)
				if err != nil {
					c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
					return
				}
				if !exists {
					unauthorized(c)
					return
				}
			}
			c.Set(UserIDKey, userID)
			c.Next()
			return
		}

		if email, password, ok := c.Request.BasicAuth(); ok && m.auth != nil {
			userID, err := m.auth.Authenticate(c.Request.Context(), email, password)
			if err != nil {
				unauthorized(c)
				return
			}
			c.Set(UserIDKey, userID.String())
			c.Next()
			return
		}

		unauthorized(c)
	}
}

func unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized access"})
}
