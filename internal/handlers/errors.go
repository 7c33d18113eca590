package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sello-market/sello-backend/internal/apperrors"
)

// handleError maps service errors onto the HTTP taxonomy. Input and
// auth failures are 4xx; everything else is a 500 with a generic body,
// details stay in the logs.
func handleError(c *gin.Context, err error) {
	var validationErr *apperrors.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Message})
		return
	}

	var configErr *apperrors.ConfigurationError
	if errors.As(err, &configErr) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": configErr.Error()})
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrNotFound), errors.Is(err, apperrors.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	case errors.Is(err, apperrors.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty or invalid"})
	case errors.Is(err, apperrors.ErrNoValidItems):
		c.JSON(http.StatusBadRequest, gin.H{"error": "cart items were not found on the server"})
	case errors.Is(err, apperrors.ErrCodeNotRequested):
		c.JSON(http.StatusBadRequest, gin.H{"error": "no verification code was requested"})
	case errors.Is(err, apperrors.ErrCodeExpired):
		c.JSON(http.StatusBadRequest, gin.H{"error": "verification code expired"})
	case errors.Is(err, apperrors.ErrCodeMismatch):
		c.JSON(http.StatusBadRequest, gin.H{"error": "verification code mismatch"})
	case errors.Is(err, apperrors.ErrPaymentLinkMissing):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to obtain payment link"})
	default:
		var upstreamErr *apperrors.UpstreamError
		if errors.As(err, &upstreamErr) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "payment provider unavailable"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
