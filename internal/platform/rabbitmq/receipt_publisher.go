package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/YeswanthC7/keepkind/internal/model"
)

// ReceiptEventPublisher sends receipt audit events to a durable queue.
type ReceiptEventPublisher struct {
	conn      *amqp.Connection
	queueName string
}

func NewReceiptEventPublisher(conn *amqp.Connection, queueName string) *ReceiptEventPublisher {
	return &ReceiptEventPublisher{
		conn:      conn,
		queueName: queueName,
	}
}

func (p *ReceiptEventPublisher) Publish(ctx context.Context, event model.ReceiptEvent) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("open rabbitmq channel failed: %w", err)
	}
	defer ch.Close()

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal receipt event failed: %w", err)
	}

	if err := ch.PublishWithContext(
		ctx,
		"",
		p.queueName,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Type:         event.Type,
			Timestamp:    event.OccurredAt,
			Body:         payload,
			DeliveryMode: amqp.Persistent,
		},
	); err != nil {
		return fmt.Errorf("publish receipt event failed: %w", err)
	}
	return nil
}
