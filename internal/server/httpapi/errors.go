package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shelfkeeper/shelfkeeper/internal/common"
	"github.com/shelfkeeper/shelfkeeper/internal/validation"
)

// respondWithError maps service errors to HTTP responses. Validation
// failures carry the per-field breakdown; everything else is a code and a
// short message.
func respondWithError(c *gin.Context, err error) {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    "INVALID_INPUT",
			"message": "one or more fields are invalid",
			"fields":  verrs,
		})
		return
	}

	switch {
	case errors.Is(err, common.ErrorAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{
			"code":    "ALREADY_EXISTS",
			"message": "username or email is already taken",
		})
	case errors.Is(err, common.ErrCodeMismatch):
		c.JSON(http.StatusUnauthorized, gin.H{
			"code":    "CODE_MISMATCH",
			"message": "verification code is invalid",
		})
	case errors.Is(err, common.ErrorUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{
			"code":    "UNAUTHORIZED",
			"message": "invalid username or password",
		})
	case errors.Is(err, common.ErrNotAuthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{
			"code":    "NOT_AUTHENTICATED",
			"message": "log in to access this resource",
		})
	case errors.Is(err, common.ErrorNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"code":    "NOT_FOUND",
			"message": "resource not found",
		})
	case errors.Is(err, common.ErrDeliveryFailed):
		c.JSON(http.StatusBadGateway, gin.H{
			"code":    "DELIVERY_FAILED",
			"message": "verification email could not be sent, registration was not completed",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    "INTERNAL",
			"message": "internal error",
		})
	}
}
