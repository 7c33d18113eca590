package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sello-market/sello-backend/internal/config"
	"github.com/sello-market/sello-backend/internal/handlers"
)

// Server wraps the gin engine and the underlying http.Server.
type Server struct {
	config   *config.Config
	router   *gin.Engine
	handlers *handlers.Handlers
	httpSrv  *http.Server
}

// New builds the router and wires all routes.
func New(h *handlers.Handlers, cfg *config.Config, logger *slog.Logger) *Server {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(logger), Metrics())

	s := &Server{
		config:   cfg,
		router:   router,
		handlers: h,
	}

	s.setupRoutes(logger)

	s.httpSrv = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return s
}

func (s *Server) setupRoutes(logger *slog.Logger) {
	s.router.GET("/ready", s.handlers.Ready)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := s.router.Group("/api")
	{
		api.GET("/health", s.handlers.Health)
		api.GET("/products", s.handlers.Products)

		api.POST("/orders", s.handlers.CreateOrder)
		api.GET("/orders/:orderId", s.handlers.GetOrder)

		api.POST("/yookassa/webhook", s.handlers.YooKassaWebhook)

		api.POST("/users/request-code", s.handlers.RequestCode)
		api.POST("/users/verify-code", s.handlers.VerifyCode)
		api.GET("/users/me", s.handlers.Me)

		api.POST("/sellers/register", s.handlers.RegisterSeller)
		api.GET("/sellers/my", s.handlers.MySeller)
	}

	admin := s.router.Group("/api/admin", AdminAuth(s.config.Admin.Token, logger))
	{
		admin.GET("/orders", s.handlers.AdminListOrders)
		admin.PATCH("/orders/:id", s.handlers.AdminUpdateOrderStatus)
		admin.GET("/users", s.handlers.AdminListUsers)
		admin.GET("/sellers", s.handlers.AdminListSellers)
		admin.PATCH("/sellers/:id", s.handlers.AdminUpdateSellerStatus)
	}
}

// Start begins serving requests. Blocks until the server stops.
func (s *Server) Start() error {
	return s.httpSrv.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}
