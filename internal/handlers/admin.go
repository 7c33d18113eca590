package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sello-market/sello-backend/internal/models"
)

// AdminListOrders handles GET /api/admin/orders
func (h *Handlers) AdminListOrders(c *gin.Context) {
	orders, err := h.orderService.ListOrders(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}

// AdminUpdateOrderStatus handles PATCH /api/admin/orders/:id
func (h *Handlers) AdminUpdateOrderStatus(c *gin.Context) {
	var req models.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	order, err := h.orderService.UpdateOrderStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// AdminListUsers handles GET /api/admin/users
func (h *Handlers) AdminListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": users,
		"count": len(users),
	})
}

// AdminListSellers handles GET /api/admin/sellers
func (h *Handlers) AdminListSellers(c *gin.Context) {
	sellers, err := h.sellerService.ListSellers(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sellers": sellers,
		"count":   len(sellers),
	})
}

// AdminUpdateSellerStatus handles PATCH /api/admin/sellers/:id
func (h *Handlers) AdminUpdateSellerStatus(c *gin.Context) {
	var req models.UpdateSellerStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	seller, err := h.sellerService.UpdateSellerStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, seller)
}
