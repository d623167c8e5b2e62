package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/peoplehq/orgdir/services"
)

// AuthMiddleware validates bearer tokens and stores the caller's
// identity in the gin context.
type AuthMiddleware struct {
	JWTService *services.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *services.JWTService) *AuthMiddleware {
	return &AuthMiddleware{JWTService: jwtService}
}

// RequireAuth rejects requests without a valid access token.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			respondError(c, http.StatusUnauthorized, "Unauthorized", "Authorization header is required")
			c.Abort()
			return
		}

		token, err := m.JWTService.ExtractTokenFromHeader(authHeader)
		if err != nil {
			respondError(c, http.StatusUnauthorized, "Unauthorized", err.Error())
			c.Abort()
			return
		}

		claims, err := m.JWTService.Validate(token)
		if err != nil {
			respondError(c, http.StatusUnauthorized, "Unauthorized", "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)
		c.Next()
	}
}
