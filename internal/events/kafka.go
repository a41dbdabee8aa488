// Package events publishes order lifecycle notifications to Kafka.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/SergeyBogomolovv/shop-order-service/internal/config"
	"github.com/SergeyBogomolovv/shop-order-service/internal/entities"
	"github.com/segmentio/kafka-go"
)

type Type string

const (
	OrderCreated       Type = "order.created"
	OrderPaid          Type = "order.paid"
	OrderStatusChanged Type = "order.status_changed"
)

type Event struct {
	Type          Type      `json:"type"`
	OrderID       string    `json:"order_id"`
	UserID        string    `json:"user_id"`
	Status        string    `json:"status"`
	IsPaid        bool      `json:"is_paid"`
	TotalPrice    string    `json:"total_price"`
	TransactionID string    `json:"transaction_id,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func NewEvent(t Type, o entities.Order, at time.Time) Event {
	return Event{
		Type:          t,
		OrderID:       o.ID,
		UserID:        o.UserID,
		Status:        string(o.Status),
		IsPaid:        o.IsPaid,
		TotalPrice:    o.TotalPrice.StringFixed(2),
		TransactionID: o.TransactionID,
		OccurredAt:    at,
	}
}

func (e Event) Message() (kafka.Message, error) {
	value, err := json.Marshal(e)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal event: %w", err)
	}
	return kafka.Message{
		Key:   []byte(e.OrderID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(e.Type)},
		},
	}, nil
}

type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(cfg config.Kafka) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        cfg.EventsTopic,
			Balancer:     &kafka.Hash{},
			BatchTimeout: cfg.BatchTimeout,
		},
	}
}

// Publish пишет событие; ключ сообщения - id заказа, чтобы события одного заказа шли по порядку.
func (p *KafkaPublisher) Publish(ctx context.Context, e Event) error {
	m, err := e.Message()
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, m)
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
