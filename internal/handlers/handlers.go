package handlers

import (
	"log/slog"

	"github.com/sello-market/sello-backend/internal/catalog"
	"github.com/sello-market/sello-backend/internal/config"
	"github.com/sello-market/sello-backend/internal/service"
)

// Handlers holds all HTTP handlers for the service.
type Handlers struct {
	orderService  *service.OrderService
	userService   *service.UserService
	sellerService *service.SellerService
	catalog       catalog.Provider
	config        *config.Config
	logger        *slog.Logger
}

// NewHandlers creates a new handlers instance.
func NewHandlers(
	orderService *service.OrderService,
	userService *service.UserService,
	sellerService *service.SellerService,
	cat catalog.Provider,
	cfg *config.Config,
	logger *slog.Logger,
) *Handlers {
	return &Handlers{
		orderService:  orderService,
		userService:   userService,
		sellerService: sellerService,
		catalog:       cat,
		config:        cfg,
		logger:        logger,
	}
}
