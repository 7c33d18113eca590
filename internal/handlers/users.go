package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sello-market/sello-backend/internal/models"
)

// RequestCode handles POST /api/users/request-code
func (h *Handlers) RequestCode(c *gin.Context) {
	var req models.RequestCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := h.userService.RequestCode(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":     true,
		"userId": user.ID,
		"role":   user.Role,
	})
}

// VerifyCode handles POST /api/users/verify-code
func (h *Handlers) VerifyCode(c *gin.Context) {
	var req models.VerifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := h.userService.VerifyCode(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":   true,
		"user": user,
	})
}

// Me handles GET /api/users/me
func (h *Handlers) Me(c *gin.Context) {
	user, err := h.userService.GetByIdentity(c.Request.Context(), c.Query("email"), c.Query("phone"))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
