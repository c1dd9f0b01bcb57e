package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wemurs1/RoyalVilla/internal/common"
)

// genericAuthError is the single message returned for every refresh or
// login rejection. Unknown, expired, and reused tokens must be
// indistinguishable to the caller.
const genericAuthError = "invalid or expired credentials"

// writeError maps service errors onto HTTP statuses. Anything not in the
// sentinel taxonomy becomes an opaque 500.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrInvalidCredentials),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrRefreshTokenExpired),
		errors.Is(err, common.ErrRefreshTokenNotFound),
		errors.Is(err, common.ErrTokenReused),
		errors.Is(err, common.ErrorUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": genericAuthError})
	case errors.Is(err, common.ErrorForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
	case errors.Is(err, common.ErrorNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, common.ErrorAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": "already exists"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
