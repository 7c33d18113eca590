package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/sello-market/sello-backend/internal/catalog"
	"github.com/sello-market/sello-backend/internal/clients"
	"github.com/sello-market/sello-backend/internal/config"
	"github.com/sello-market/sello-backend/internal/events"
	"github.com/sello-market/sello-backend/internal/handlers"
	"github.com/sello-market/sello-backend/internal/logging"
	"github.com/sello-market/sello-backend/internal/repository"
	"github.com/sello-market/sello-backend/internal/server"
	"github.com/sello-market/sello-backend/internal/service"
)

func main() {
	cfg := config.Load()

	logger := logging.Init("sello-backend", cfg.LogFile)
	logger.Info("starting sello-backend", "port", cfg.Server.Port)

	db, err := initDatabase(cfg)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := repository.EnsureSchema(context.Background(), db); err != nil {
		logger.Error("failed to ensure schema", "error", err)
		os.Exit(1)
	}

	orderRepo := repository.NewPostgresOrderRepository(db, logging.Component("order-repo"))
	userRepo := repository.NewPostgresUserRepository(db, logging.Component("user-repo"))
	sellerRepo := repository.NewPostgresSellerRepository(db, logging.Component("seller-repo"))

	var orderCache repository.OrderCache = repository.NoopOrderCache{}
	if cfg.Features.EnableOrderCaching {
		orderCache = repository.NewRedisOrderCache(cfg.Redis, logging.Component("order-cache"))
	}

	var publisher events.OrderEventPublisher = events.NoopPublisher{}
	if cfg.Features.EnableOrderEvents {
		kafkaPublisher := events.NewKafkaPublisher(cfg.Kafka, logging.Component("order-events"))
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	}

	gateway := clients.NewYooKassaClient(cfg.YooKassa, logging.Component("yookassa"))

	var sender clients.CodeSender
	if cfg.Mail.Host != "" {
		sender = clients.NewSMTPSender(cfg.Mail, logging.Component("mailer"))
	} else {
		logger.Warn("no smtp host configured, verification codes are logged only")
		sender = clients.NewLogSender(logging.Component("mailer"))
	}

	cat := catalog.NewSeedCatalog()

	orderService := service.NewOrderService(
		orderRepo, orderCache, cat, gateway, publisher, cfg,
		logging.Component("order-service"),
	)
	userService := service.NewUserService(userRepo, sender, logging.Component("user-service"))
	sellerService := service.NewSellerService(sellerRepo, logging.Component("seller-service"))

	h := handlers.NewHandlers(orderService, userService, sellerService, cat, cfg,
		logging.Component("handlers"))

	srv := server.New(h, cfg, logging.Component("http"))

	go func() {
		logger.Info("server starting",
			"port", cfg.Server.Port,
			"enable_order_events", cfg.Features.EnableOrderEvents,
			"enable_order_caching", cfg.Features.EnableOrderCaching,
		)
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}

func initDatabase(cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.Database.ConnectionString())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.MaxLifetime)

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}
