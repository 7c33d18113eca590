package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/lib/pq"

	"github.com/sello-market/sello-backend/internal/apperrors"
	"github.com/sello-market/sello-backend/internal/models"
)

// PostgresOrderRepository implements OrderRepository using PostgreSQL.
type PostgresOrderRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

var _ OrderRepository = (*PostgresOrderRepository)(nil)

// NewPostgresOrderRepository creates a new PostgreSQL order repository.
func NewPostgresOrderRepository(db *sql.DB, logger *slog.Logger) *PostgresOrderRepository {
	return &PostgresOrderRepository{db: db, logger: logger}
}

// Create persists the order row and its line items in one transaction.
// If the generated id collides with an existing order the whole write is
// rolled back and ErrDuplicateOrderID is returned so the caller can
// retry with a fresh id.
func (r *PostgresOrderRepository) Create(ctx context.Context, order *models.Order) error {
	r.logger.Debug("creating order", "order_id", order.ID, "items", len(order.Items))

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, total, status, payment_status, customer, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, order.ID, order.Total, order.Status, order.PaymentStatus, []byte(order.Customer), order.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrDuplicateOrderID
		}
		r.logger.Error("failed to insert order", "order_id", order.ID, "error", err)
		return err
	}

	for _, item := range order.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id, title, price, qty, seller_id)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, order.ID, item.ProductID, item.Title, item.Price, item.Qty, item.SellerID)
		if err != nil {
			r.logger.Error("failed to insert order item",
				"order_id", order.ID, "product_id", item.ProductID, "error", err)
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	r.logger.Info("order created", "order_id", order.ID, "total", order.Total)
	return nil
}

// GetByID retrieves an order and its line items.
func (r *PostgresOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	var customer []byte
	var paymentID sql.NullString

	err := r.db.QueryRowContext(ctx, `
		SELECT id, total, status, payment_status, customer, payment_id, created_at
		FROM orders
		WHERE id = $1
	`, id).Scan(&order.ID, &order.Total, &order.Status, &order.PaymentStatus,
		&customer, &paymentID, &order.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		r.logger.Error("failed to fetch order", "order_id", id, "error", err)
		return nil, err
	}

	order.Customer = customer
	if paymentID.Valid {
		order.PaymentID = paymentID.String
	}

	items, err := r.loadItems(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return &order, nil
}

// SetPaymentID associates a provider payment reference with an order.
func (r *PostgresOrderRepository) SetPaymentID(ctx context.Context, orderID, paymentID string) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE orders SET payment_id = $2 WHERE id = $1
	`, orderID, paymentID)
	if err != nil {
		r.logger.Error("failed to set payment id",
			"order_id", orderID, "payment_id", paymentID, "error", err)
		return err
	}

	if n, _ := result.RowsAffected(); n == 0 {
		return apperrors.ErrNotFound
	}

	r.logger.Info("payment id set", "order_id", orderID, "payment_id", paymentID)
	return nil
}

// ApplyPaymentStatus overwrites both statuses for the order. Replaying
// the same provider event lands on the same final state.
func (r *PostgresOrderRepository) ApplyPaymentStatus(ctx context.Context, orderID string, status models.OrderStatus, paymentStatus string) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE orders SET status = $2, payment_status = $3 WHERE id = $1
	`, orderID, status, paymentStatus)
	if err != nil {
		r.logger.Error("failed to apply payment status",
			"order_id", orderID, "status", status, "error", err)
		return err
	}

	if n, _ := result.RowsAffected(); n == 0 {
		return apperrors.ErrNotFound
	}

	r.logger.Info("payment status applied",
		"order_id", orderID, "status", status, "payment_status", paymentStatus)
	return nil
}

// UpdateStatus sets the order status and returns the updated record.
func (r *PostgresOrderRepository) UpdateStatus(ctx context.Context, orderID string, status models.OrderStatus) (*models.Order, error) {
	var returnedID string
	err := r.db.QueryRowContext(ctx, `
		UPDATE orders SET status = $2 WHERE id = $1 RETURNING id
	`, orderID, status).Scan(&returnedID)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		r.logger.Error("failed to update order status",
			"order_id", orderID, "status", status, "error", err)
		return nil, err
	}

	r.logger.Info("order status updated", "order_id", orderID, "status", status)
	return r.GetByID(ctx, orderID)
}

// List returns all orders, newest first.
func (r *PostgresOrderRepository) List(ctx context.Context) ([]*models.Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, total, status, payment_status, customer, payment_id, created_at
		FROM orders
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]*models.Order, 0)
	for rows.Next() {
		var order models.Order
		var customer []byte
		var paymentID sql.NullString
		if err := rows.Scan(&order.ID, &order.Total, &order.Status, &order.PaymentStatus,
			&customer, &paymentID, &order.CreatedAt); err != nil {
			return nil, err
		}
		order.Customer = customer
		if paymentID.Valid {
			order.PaymentID = paymentID.String
		}
		orders = append(orders, &order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, order := range orders {
		items, err := r.loadItems(ctx, order.ID)
		if err != nil {
			return nil, err
		}
		order.Items = items
	}

	return orders, nil
}

func (r *PostgresOrderRepository) loadItems(ctx context.Context, orderID string) ([]models.OrderItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT product_id, title, price, qty, seller_id
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]models.OrderItem, 0)
	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ProductID, &item.Title, &item.Price, &item.Qty, &item.SellerID); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
