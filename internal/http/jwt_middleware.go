package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"user-auth/internal/service"
)

const (
	msgNoToken      = "Access denied. No token provided."
	msgInvalidToken = "Invalid token"
)

// JWTAuthMiddleware valida el token Bearer y deja los claims en el contexto del request.
func JWTAuthMiddleware(tokens *service.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokens == nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "jwt not configured"})
			return
		}

		parts := strings.Fields(c.GetHeader("Authorization"))
		if len(parts) < 2 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msgNoToken})
			return
		}

		claims, err := tokens.Verify(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": msgInvalidToken})
			return
		}

		c.Request = c.Request.WithContext(service.WithClaims(c.Request.Context(), claims))
		c.Next()
	}
}

// GetAuthClaims obtiene claims de JWT desde el contexto del request.
func GetAuthClaims(c *gin.Context) (service.Claims, bool) {
	return service.ClaimsFromContext(c.Request.Context())
}
