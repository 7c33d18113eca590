package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sello-market/sello-backend/internal/clients"
	"github.com/sello-market/sello-backend/internal/service"
)

// YooKassaWebhook handles POST /api/yookassa/webhook
//
// The provider redelivers events until it sees a success status, so
// this endpoint always acknowledges with 200. Processing outcome is
// reported in the plain-text body only; internal failures are logged,
// never surfaced, to avoid retry storms.
func (h *Handlers) YooKassaWebhook(c *gin.Context) {
	var event clients.WebhookEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		h.logger.Error("unparseable webhook payload", "error", err)
		c.String(http.StatusOK, string(service.WebhookError))
		return
	}

	result := h.orderService.ReconcilePayment(c.Request.Context(), &event)
	c.String(http.StatusOK, string(result))
}
