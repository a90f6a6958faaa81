package events

import (
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	EventsExchange                 = "delivery.events"
	OrderCreatedRoutingKey         = "order.created.v1"
	OrderTrackingUpdatedRoutingKey = "order.tracking.updated.v1"
	OrderDeliveredRoutingKey       = "order.delivered.v1"
	ServiceName                    = "storefront-gateway"
)

func serviceQueue(serviceName, routingKey string) string {
	return serviceName + "." + routingKey
}

func gatewayQueueName(routingKey string) string {
	return serviceQueue(ServiceName, routingKey)
}

func declareEventsExchange(ch *amqp.Channel) error {
	return ch.ExchangeDeclare(
		EventsExchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
}

func MustDial(url string, logger *log.Logger) *amqp.Connection {
	conn, err := amqp.Dial(url)
	if err != nil {
		logger.Fatalf("connect to RabbitMQ: %v", err)
	}
	return conn
}
