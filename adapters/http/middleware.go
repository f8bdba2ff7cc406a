package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/techfolio/backend/pkg/auth"
)

const (
	GinContextKeyOwnerID    = "ownerID"
	GinContextKeyOwnerEmail = "ownerEmail"
)

// AuthMiddleware gates the editing surfaces: requests without a valid
// bearer token never reach a handler.
func AuthMiddleware(jwtSvc *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format"})
			return
		}

		claims, err := jwtSvc.ValidateToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(GinContextKeyOwnerID, claims.AccountID)
		c.Set(GinContextKeyOwnerEmail, claims.Email)

		c.Next()
	}
}

// OptionalAuthMiddleware decodes viewer identity when a token is
// present but lets anonymous requests through. The public preview uses
// it for the owner check and the contact email fallback.
func OptionalAuthMiddleware(jwtSvc *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.Next()
			return
		}
		if claims, err := jwtSvc.ValidateToken(tokenString); err == nil {
			c.Set(GinContextKeyOwnerID, claims.AccountID)
			c.Set(GinContextKeyOwnerEmail, claims.Email)
		}
		c.Next()
	}
}

func GetOwnerIDFromGinContext(c *gin.Context) (uuid.UUID, bool) {
	ownerID, ok := c.Get(GinContextKeyOwnerID)
	if !ok {
		return uuid.Nil, false
	}
	ownerIDUUID, ok := ownerID.(uuid.UUID)
	if !ok {
		return uuid.Nil, false
	}
	return ownerIDUUID, true
}

func GetOwnerEmailFromGinContext(c *gin.Context) string {
	email, ok := c.Get(GinContextKeyOwnerEmail)
	if !ok {
		return ""
	}
	s, _ := email.(string)
	return s
}
