package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

type Publisher struct {
	ch       *amqp.Channel
	producer string
}

func NewPublisher(conn *amqp.Connection, producer string) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := declareEventsExchange(ch); err != nil {
		return nil, fmt.Errorf("declare events exchange: %w", err)
	}

	if producer == "" {
		producer = ServiceName
	}
	return &Publisher{ch: ch, producer: producer}, nil
}

func (p *Publisher) Close() error {
	return p.ch.Close()
}

func (p *Publisher) PublishTrackingUpdated(ctx context.Context, meta EventMeta, seq int64, payload TrackingUpdatedPayload) error {
	env := newEnvelope(EventTypeOrderTrackingUpdated, 1, uuid.NewString(), meta, seq, p.producer, payload, time.Now().UTC())
	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal OrderTrackingUpdated envelope: %w", err)
	}
	return p.publishJSON(ctx, OrderTrackingUpdatedRoutingKey, body)
}

func (p *Publisher) PublishOrderDelivered(ctx context.Context, meta EventMeta, seq int64, payload OrderDeliveredPayload) error {
	env := newEnvelope(EventTypeOrderDelivered, 1, uuid.NewString(), meta, seq, p.producer, payload, time.Now().UTC())
	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal OrderDelivered envelope: %w", err)
	}
	return p.publishJSON(ctx, OrderDeliveredRoutingKey, body)
}

func (p *Publisher) publishJSON(ctx context.Context, routingKey string, body []byte) error {
	pubCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return p.ch.PublishWithContext(
		pubCtx,
		EventsExchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}
