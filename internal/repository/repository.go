package repository

import (
	"context"
	"errors"

	"github.com/sello-market/sello-backend/internal/models"
)

// ErrDuplicateOrderID is returned when an order insert hits the primary
// key. Callers regenerate the id and retry a bounded number of times.
var ErrDuplicateOrderID = errors.New("order id already exists")

// OrderRepository is the system of record for orders and their items.
type OrderRepository interface {
	// Create persists the order row and its line items in one
	// transaction. Returns ErrDuplicateOrderID on a primary key clash.
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
	SetPaymentID(ctx context.Context, orderID, paymentID string) error
	// ApplyPaymentStatus overwrites both statuses for the order. It is
	// the webhook reconciliation write: idempotent, last writer wins.
	ApplyPaymentStatus(ctx context.Context, orderID string, status models.OrderStatus, paymentStatus string) error
	UpdateStatus(ctx context.Context, orderID string, status models.OrderStatus) (*models.Order, error)
	// List returns all orders, newest first.
	List(ctx context.Context) ([]*models.Order, error)
}

// UserRepository stores onboarding users. The upsert used by the
// verification flow lives in the service as an explicit
// find-then-insert-or-update so the one-record-per-identity invariant
// stays visible.
type UserRepository interface {
	FindByIdentity(ctx context.Context, email, phone string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	// UpdateForReissue overwrites profile fields and resets the
	// verification state; latest request wins.
	UpdateForReissue(ctx context.Context, user *models.User) error
	MarkVerified(ctx context.Context, id string) error
	List(ctx context.Context) ([]*models.User, error)
}

// SellerRepository stores seller registrations and moderation state.
type SellerRepository interface {
	Create(ctx context.Context, seller *models.Seller) error
	GetByID(ctx context.Context, id string) (*models.Seller, error)
	FindByEmail(ctx context.Context, email string) (*models.Seller, error)
	UpdateStatus(ctx context.Context, id string, status models.SellerStatus) (*models.Seller, error)
	List(ctx context.Context) ([]*models.Seller, error)
}

// OrderCache fronts order reads. Misses and failures are never fatal.
type OrderCache interface {
	Get(ctx context.Context, id string) (*models.Order, error)
	Set(ctx context.Context, order *models.Order) error
	Delete(ctx context.Context, id string) error
}
