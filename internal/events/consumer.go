package events

import (
	"context"
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// HandlerFunc processes one message body. A returned error Nacks the message without requeue.
type HandlerFunc func(ctx context.Context, body []byte) error

func StartOrderCreatedConsumer(ctx context.Context, conn *amqp.Connection, handler HandlerFunc, logger *log.Logger) error {
	return startConsumer(ctx, conn, OrderCreatedRoutingKey, handler, logger)
}

func startConsumer(ctx context.Context, conn *amqp.Connection, routingKey string, handler HandlerFunc, logger *log.Logger) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}

	if err := declareEventsExchange(ch); err != nil {
		return fmt.Errorf("declare events exchange: %w", err)
	}

	queue := gatewayQueueName(routingKey)
	_, err = ch.QueueDeclare(
		queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		return fmt.Errorf("queue declare %s: %w", queue, err)
	}

	if err := ch.QueueBind(queue, routingKey, EventsExchange, false, nil); err != nil {
		return fmt.Errorf("queue bind %s: %w", queue, err)
	}

	msgs, err := ch.Consume(
		queue,
		ServiceName, // consumer tag
		false,       // autoAck
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("consume %s: %w", queue, err)
	}

	go func() {
		defer func() { _ = ch.Close() }()
		for {
			select {
			case <-ctx.Done():
				logger.Printf("stopping %s consumer", routingKey)
				return
			case msg, ok := <-msgs:
				if !ok {
					logger.Printf("%s messages channel closed", routingKey)
					return
				}

				if err := handler(ctx, msg.Body); err != nil {
					logger.Printf("handle %s error: %v", routingKey, err)
					_ = msg.Nack(false, false)
					continue
				}
				_ = msg.Ack(false)
			}
		}
	}()

	return nil
}
