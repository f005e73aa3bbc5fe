package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher emits booking events to RabbitMQ.
type Publisher struct {
	ch *amqp.Channel
}

// NewPublisher opens a channel and declares the queues it publishes to,
// so a publish never fails due to missing infra.
func NewPublisher(conn *amqp.Connection) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if _, err := ch.QueueDeclare(BookingCompletedQueue, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare %s: %w", BookingCompletedQueue, err)
	}

	return &Publisher{ch: ch}, nil
}

func (p *Publisher) Close() error {
	return p.ch.Close()
}

// PublishBookingCompleted emits a BookingCompleted event. The event id
// and timestamp are stamped here.
func (p *Publisher) PublishBookingCompleted(ctx context.Context, ev BookingCompleted) error {
	ev.EventType = "BookingCompleted"
	ev.EventID = uuid.NewString()
	ev.Timestamp = time.Now().UTC()

	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal BookingCompleted: %w", err)
	}

	return p.ch.PublishWithContext(ctx, "", BookingCompletedQueue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    ev.EventID,
		Timestamp:    ev.Timestamp,
		Body:         body,
	})
}

// NopPublisher discards events. Used when AMQP is not configured.
type NopPublisher struct{}

func (NopPublisher) PublishBookingCompleted(ctx context.Context, ev BookingCompleted) error {
	return nil
}
