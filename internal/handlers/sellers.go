package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sello-market/sello-backend/internal/models"
)

// RegisterSeller handles POST /api/sellers/register
func (h *Handlers) RegisterSeller(c *gin.Context) {
	var req models.RegisterSellerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	seller, err := h.sellerService.Register(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":     true,
		"seller": seller,
	})
}

// MySeller handles GET /api/sellers/my
func (h *Handlers) MySeller(c *gin.Context) {
	seller, err := h.sellerService.MyRegistration(c.Request.Context(), c.Query("email"))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, seller)
}
