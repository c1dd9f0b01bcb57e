package rest

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/wemurs1/RoyalVilla/internal/server/auth"
	"github.com/wemurs1/RoyalVilla/internal/server/models"
)

const (
	ctxKeyUserID = "user_id"
	ctxKeyClaims = "claims"

	adminRole = models.RoleAdmin
)

// authMiddleware verifies the Bearer access token and stores the caller's
// identity on the request context. Verification is stateless; a revoked
// session's access token stays usable until it expires.
func (s *Server) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing access token"})
			return
		}

		claims, err := s.signer.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(ctxKeyUserID, claims.Subject)
		c.Set(ctxKeyClaims, claims)
		c.Next()
	}
}

// requireRole runs after authMiddleware and rejects callers whose role
// set lacks the named role.
func (s *Server) requireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := claimsFromContext(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing access token"})
			return
		}
		for _, r := range claims.Roles {
			if r == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
	}
}

func claimsFromContext(c *gin.Context) *auth.Claims {
	v, ok := c.Get(ctxKeyClaims)
	if !ok {
		return nil
	}
	claims, ok := v.(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}

func userIDFromContext(c *gin.Context) string {
	return c.GetString(ctxKeyUserID)
}

func extractBearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
