package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/sello-market/sello-backend/internal/config"
	"github.com/sello-market/sello-backend/internal/models"
)

// EventType represents the type of order event.
type EventType string

const (
	EventTypeOrderCreated       EventType = "order.created"
	EventTypeOrderPaid          EventType = "order.paid"
	EventTypeOrderStatusChanged EventType = "order.status_changed"
)

// OrderEvent is the envelope published for every order state change.
type OrderEvent struct {
	ID             string          `json:"id"`
	Type           EventType       `json:"type"`
	OrderID        string          `json:"order_id"`
	Status         string          `json:"status"`
	PaymentStatus  string          `json:"payment_status,omitempty"`
	PreviousStatus string          `json:"previous_status,omitempty"`
	Data           json.RawMessage `json:"data,omitempty"`
	Timestamp      time.Time       `json:"timestamp"`
}

// OrderEventPublisher publishes order lifecycle events. Publishing is
// best effort; callers log failures and move on.
type OrderEventPublisher interface {
	PublishOrderCreated(ctx context.Context, order *models.Order) error
	PublishOrderPaid(ctx context.Context, order *models.Order) error
	PublishOrderStatusChanged(ctx context.Context, order *models.Order, previous models.OrderStatus) error
	Close() error
}

// KafkaPublisher publishes order events to Kafka.
type KafkaPublisher struct {
	writer *kafka.Writer
	topic  string
	logger *slog.Logger
}

var _ OrderEventPublisher = (*KafkaPublisher)(nil)

// NewKafkaPublisher creates a new Kafka-based event publisher.
func NewKafkaPublisher(cfg config.KafkaConfig, logger *slog.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.OrdersTopic,
		Balancer:     &kafka.LeastBytes{},
		WriteTimeout: 10 * time.Second,
		RequiredAcks: kafka.RequireOne,
	}

	return &KafkaPublisher{writer: writer, topic: cfg.OrdersTopic, logger: logger}
}

// PublishOrderCreated publishes an order created event.
func (p *KafkaPublisher) PublishOrderCreated(ctx context.Context, order *models.Order) error {
	return p.publish(ctx, OrderEvent{
		ID:            uuid.NewString(),
		Type:          EventTypeOrderCreated,
		OrderID:       order.ID,
		Status:        string(order.Status),
		PaymentStatus: order.PaymentStatus,
		Timestamp:     time.Now(),
	}, order)
}

// PublishOrderPaid publishes an event after webhook reconciliation
// marked the order paid.
func (p *KafkaPublisher) PublishOrderPaid(ctx context.Context, order *models.Order) error {
	return p.publish(ctx, OrderEvent{
		ID:            uuid.NewString(),
		Type:          EventTypeOrderPaid,
		OrderID:       order.ID,
		Status:        string(order.Status),
		PaymentStatus: order.PaymentStatus,
		Timestamp:     time.Now(),
	}, order)
}

// PublishOrderStatusChanged publishes an admin-driven status change.
func (p *KafkaPublisher) PublishOrderStatusChanged(ctx context.Context, order *models.Order, previous models.OrderStatus) error {
	return p.publish(ctx, OrderEvent{
		ID:             uuid.NewString(),
		Type:           EventTypeOrderStatusChanged,
		OrderID:        order.ID,
		Status:         string(order.Status),
		PaymentStatus:  order.PaymentStatus,
		PreviousStatus: string(previous),
		Timestamp:      time.Now(),
	}, order)
}

func (p *KafkaPublisher) publish(ctx context.Context, event OrderEvent, order *models.Order) error {
	data, err := json.Marshal(order)
	if err != nil {
		return err
	}
	event.Data = data

	value, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(event.OrderID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("failed to publish order event",
			"event_type", event.Type, "order_id", event.OrderID, "error", err)
		return err
	}

	p.logger.Debug("order event published",
		"event_type", event.Type, "order_id", event.OrderID, "topic", p.topic)
	return nil
}

// Close flushes and closes the underlying writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher satisfies OrderEventPublisher when events are disabled.
type NoopPublisher struct{}

var _ OrderEventPublisher = (*NoopPublisher)(nil)

func (NoopPublisher) PublishOrderCreated(ctx context.Context, order *models.Order) error { return nil }
func (NoopPublisher) PublishOrderPaid(ctx context.Context, order *models.Order) error    { return nil }
func (NoopPublisher) PublishOrderStatusChanged(ctx context.Context, order *models.Order, previous models.OrderStatus) error {
	return nil
}
func (NoopPublisher) Close() error { return nil }
