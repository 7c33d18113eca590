package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Products handles GET /api/products
func (h *Handlers) Products(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"products": h.catalog.Products(),
		"sellers":  h.catalog.Sellers(),
	})
}
