package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/sello-market/sello-backend/internal/apperrors"
	"github.com/sello-market/sello-backend/internal/catalog"
	"github.com/sello-market/sello-backend/internal/clients"
	"github.com/sello-market/sello-backend/internal/config"
	"github.com/sello-market/sello-backend/internal/events"
	"github.com/sello-market/sello-backend/internal/models"
	"github.com/sello-market/sello-backend/internal/repository"
)

// How many fresh ids to try when an insert hits the primary key.
const maxOrderIDAttempts = 5

// Placeholder for the fiscal receipt when the buyer left no email.
const fallbackReceiptEmail = "test@example.com"

// VAT code sent with every receipt line.
const receiptVATCode = 1

// OrderService owns the order/payment lifecycle: checkout, gateway
// redirect, webhook reconciliation and admin status transitions.
type OrderService struct {
	orderRepo  repository.OrderRepository
	orderCache repository.OrderCache
	catalog    catalog.Provider
	gateway    clients.PaymentGateway
	publisher  events.OrderEventPublisher
	config     *config.Config
	logger     *slog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	orderCache repository.OrderCache,
	cat catalog.Provider,
	gateway clients.PaymentGateway,
	publisher events.OrderEventPublisher,
	cfg *config.Config,
	logger *slog.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:  orderRepo,
		orderCache: orderCache,
		catalog:    cat,
		gateway:    gateway,
		publisher:  publisher,
		config:     cfg,
		logger:     logger,
	}
}

// CreateOrder summarizes the cart, persists the order as pending and
// asks the provider for a hosted payment page.
//
// The order row is written before the gateway call. If the provider
// fails or returns no redirect URL the order deliberately stays in
// pending rather than being rolled back: the customer may already have
// been shown the order id, and an admin can follow up.
func (s *OrderService) CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.CreateOrderResponse, error) {
	summary, err := SummarizeCart(s.catalog, req.Cart)
	if err != nil {
		return nil, err
	}

	customer := req.Customer
	if len(customer) == 0 {
		customer = json.RawMessage(`{"type":"guest"}`)
	}

	order := &models.Order{
		Items:         summary.Items,
		Total:         summary.Total,
		Status:        models.OrderStatusPending,
		PaymentStatus: "pending",
		Customer:      customer,
		CreatedAt:     time.Now(),
	}

	// Random ids can collide; the orders primary key surfaces that as a
	// retryable conflict.
	for attempt := 0; ; attempt++ {
		order.ID = generateOrderID()
		err = s.orderRepo.Create(ctx, order)
		if err == nil {
			break
		}
		if err == repository.ErrDuplicateOrderID && attempt < maxOrderIDAttempts-1 {
			s.logger.Warn("order id collision, retrying", "order_id", order.ID)
			continue
		}
		s.logger.Error("failed to persist order", "error", err)
		return nil, err
	}

	s.logger.Info("order created",
		"order_id", order.ID, "total", order.Total, "items", len(order.Items))

	if s.config.Features.EnableOrderEvents {
		if err := s.publisher.PublishOrderCreated(ctx, order); err != nil {
			s.logger.Error("failed to publish order created event",
				"order_id", order.ID, "error", err)
		}
	}

	payment, err := s.gateway.CreatePayment(ctx, s.buildPaymentRequest(order))
	if err != nil {
		// Order stays pending for administrative follow-up.
		s.logger.Error("payment creation failed", "order_id", order.ID, "error", err)
		return nil, err
	}

	if payment.Confirmation == nil || payment.Confirmation.ConfirmationURL == "" {
		s.logger.Error("no confirmation url in provider response",
			"order_id", order.ID, "payment_id", payment.ID)
		return nil, apperrors.ErrPaymentLinkMissing
	}

	if err := s.orderRepo.SetPaymentID(ctx, order.ID, payment.ID); err != nil {
		s.logger.Error("failed to store payment id",
			"order_id", order.ID, "payment_id", payment.ID, "error", err)
	}
	order.PaymentID = payment.ID

	if s.config.Features.EnableOrderCaching {
		if err := s.orderCache.Set(ctx, order); err != nil {
			s.logger.Error("failed to cache order", "order_id", order.ID, "error", err)
		}
	}

	return &models.CreateOrderResponse{
		OrderID:       order.ID,
		Total:         order.Total,
		Items:         order.Items,
		Status:        order.Status,
		PaymentStatus: order.PaymentStatus,
		PaymentURL:    payment.Confirmation.ConfirmationURL,
	}, nil
}

func (s *OrderService) buildPaymentRequest(order *models.Order) *clients.CreatePaymentRequest {
	items := make([]clients.ReceiptItem, 0, len(order.Items))
	for _, item := range order.Items {
		description := item.Title
		if description == "" {
			description = "Товар"
		}
		items = append(items, clients.ReceiptItem{
			Description: description,
			Quantity:    item.Qty,
			Amount:      clients.RubAmount(item.Price),
			VATCode:     receiptVATCode,
		})
	}

	return &clients.CreatePaymentRequest{
		Amount:  clients.RubAmount(order.Total),
		Capture: true,
		Confirmation: clients.Confirmation{
			Type:      "redirect",
			ReturnURL: s.config.YooKassa.ReturnURL,
		},
		Description: fmt.Sprintf("Sello: заказ %s", order.ID),
		Metadata:    map[string]string{"orderId": order.ID},
		Receipt: &clients.Receipt{
			Customer: clients.ReceiptCustomer{Email: customerEmail(order.Customer)},
			Items:    items,
		},
	}
}

// customerEmail extracts the buyer email from the free-form contact
// blob, falling back to the receipt placeholder.
func customerEmail(customer json.RawMessage) string {
	var contact struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(customer, &contact); err == nil && contact.Email != "" {
		return contact.Email
	}
	return fallbackReceiptEmail
}

// GetOrder retrieves an order by id.
func (s *OrderService) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	if s.config.Features.EnableOrderCaching {
		if order, err := s.orderCache.Get(ctx, id); err == nil && order != nil {
			return order, nil
		}
	}

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.config.Features.EnableOrderCaching {
		if err := s.orderCache.Set(ctx, order); err != nil {
			s.logger.Error("failed to cache order", "order_id", id, "error", err)
		}
	}

	return order, nil
}

// WebhookResult is the plain-text acknowledgment for the provider.
type WebhookResult string

const (
	WebhookOK      WebhookResult = "ok"
	WebhookIgnored WebhookResult = "ignored"
	WebhookError   WebhookResult = "error"
)

// ReconcilePayment applies a provider event to the referenced order.
// The provider delivers events at least once, unordered; this is a pure
// overwrite keyed by metadata.orderId, safe to replay. Irrelevant or
// stale events are acknowledged and discarded so the provider never
// retries them.
func (s *OrderService) ReconcilePayment(ctx context.Context, event *clients.WebhookEvent) WebhookResult {
	orderID := event.Object.Metadata["orderId"]
	if orderID == "" {
		s.logger.Info("webhook without order id, discarding",
			"event", event.Event, "payment_id", event.Object.ID)
		return WebhookIgnored
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err == apperrors.ErrNotFound {
		s.logger.Info("webhook for unknown order, discarding", "order_id", orderID)
		return WebhookIgnored
	}
	if err != nil {
		s.logger.Error("webhook order lookup failed", "order_id", orderID, "error", err)
		return WebhookError
	}

	// Only succeeded and canceled move the lifecycle status. Any other
	// provider status leaves the current status untouched, not reset to
	// pending: a late waiting_for_capture after succeeded must not
	// un-pay the order.
	status := order.Status
	switch event.Object.Status {
	case "succeeded":
		status = models.OrderStatusPaid
	case "canceled":
		status = models.OrderStatusCanceled
	}

	// Raw provider status is recorded verbatim even when it maps to no
	// known transition.
	if err := s.orderRepo.ApplyPaymentStatus(ctx, orderID, status, event.Object.Status); err != nil {
		s.logger.Error("webhook reconcile failed", "order_id", orderID, "error", err)
		return WebhookError
	}

	if s.config.Features.EnableOrderCaching {
		if err := s.orderCache.Delete(ctx, orderID); err != nil {
			s.logger.Error("failed to invalidate order cache", "order_id", orderID, "error", err)
		}
	}

	if s.config.Features.EnableOrderEvents && status == models.OrderStatusPaid && order.Status != models.OrderStatusPaid {
		order.Status = status
		order.PaymentStatus = event.Object.Status
		if err := s.publisher.PublishOrderPaid(ctx, order); err != nil {
			s.logger.Error("failed to publish order paid event", "order_id", orderID, "error", err)
		}
	}

	s.logger.Info("payment reconciled",
		"order_id", orderID, "status", status, "provider_status", event.Object.Status)
	return WebhookOK
}

// ListOrders returns all orders for the admin console, newest first.
func (s *OrderService) ListOrders(ctx context.Context) ([]*models.Order, error) {
	return s.orderRepo.List(ctx)
}

// UpdateOrderStatus applies an admin status transition. Any value in
// the allowed set is accepted regardless of the current state, backward
// moves included.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, orderID string, status models.OrderStatus) (*models.Order, error) {
	if !models.IsAllowedOrderStatus(status) {
		return nil, apperrors.NewValidationError("status",
			fmt.Sprintf("status must be one of %v", models.AllowedOrderStatuses))
	}

	current, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	previous := current.Status

	order, err := s.orderRepo.UpdateStatus(ctx, orderID, status)
	if err != nil {
		return nil, err
	}

	if s.config.Features.EnableOrderCaching {
		if err := s.orderCache.Delete(ctx, orderID); err != nil {
			s.logger.Error("failed to invalidate order cache", "order_id", orderID, "error", err)
		}
	}

	if s.config.Features.EnableOrderEvents {
		if err := s.publisher.PublishOrderStatusChanged(ctx, order, previous); err != nil {
			s.logger.Error("failed to publish status change event",
				"order_id", orderID, "error", err)
		}
	}

	return order, nil
}

func generateOrderID() string {
	return fmt.Sprintf("SO-%d", 100000+rand.Intn(900000))
}
