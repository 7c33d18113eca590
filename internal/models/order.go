package models

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusCanceled  OrderStatus = "canceled"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusCompleted OrderStatus = "completed"
)

// AllowedOrderStatuses is the fixed set accepted on admin transitions.
// Any-to-any movement inside the set is permitted.
var AllowedOrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusPaid,
	OrderStatusCanceled,
	OrderStatusShipped,
	OrderStatusCompleted,
}

// IsAllowedOrderStatus reports whether s is in the admin-transition set.
func IsAllowedOrderStatus(s OrderStatus) bool {
	for _, allowed := range AllowedOrderStatuses {
		if s == allowed {
			return true
		}
	}
	return false
}

// Order is a customer's checkout request with snapshotted line items.
// Total is whole rubles and always equals the sum of qty*price captured at
// creation time; it is never recomputed against the live catalog.
type Order struct {
	ID            string          `json:"id"`
	Items         []OrderItem     `json:"items"`
	Total         int64           `json:"total"`
	Status        OrderStatus     `json:"status"`
	PaymentStatus string          `json:"paymentStatus"`
	Customer      json.RawMessage `json:"customer"`
	PaymentID     string          `json:"paymentId,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// OrderItem is one catalog product quantity captured at order time.
// Title, price and seller are denormalized so the catalog is never
// consulted again for this order.
type OrderItem struct {
	ProductID string `json:"productId"`
	Title     string `json:"title"`
	Price     int64  `json:"price"`
	Qty       int    `json:"qty"`
	SellerID  string `json:"sellerId"`
}

// CartEntry is one raw client-submitted cart line.
type CartEntry struct {
	ID  string `json:"id"`
	Qty int    `json:"qty"`
}

// UnmarshalJSON tolerates clients sending qty as a string or other
// garbage. A qty that cannot be read as a number comes out as 0 and
// defaults to 1 during cart summarization, instead of failing the
// whole request.
func (e *CartEntry) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID  string          `json:"id"`
		Qty json.RawMessage `json:"qty"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	e.ID = raw.ID
	e.Qty = coerceQty(raw.Qty)
	return nil
}

func coerceQty(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return n
		}
	}
	return 0
}

// CreateOrderRequest is the POST /api/orders payload.
type CreateOrderRequest struct {
	Cart     []CartEntry     `json:"cart"`
	Customer json.RawMessage `json:"customer"`
}

// CreateOrderResponse is the successful checkout response.
type CreateOrderResponse struct {
	OrderID       string      `json:"orderId"`
	Total         int64       `json:"total"`
	Items         []OrderItem `json:"items"`
	Status        OrderStatus `json:"status"`
	PaymentStatus string      `json:"paymentStatus"`
	PaymentURL    string      `json:"paymentUrl"`
}

// UpdateOrderStatusRequest is the admin PATCH payload.
type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status"`
}
