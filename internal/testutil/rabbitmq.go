package testutil

import (
	"fmt"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	mqUser  = "gateway"
	mqPass  = "gateway"
	mqVhost = "storefront"
)

// StartRabbitMQ runs a broker with a dedicated vhost for the order events exchange and
// returns an open connection. The returned func closes the connection and stops the
// broker; it is also registered with t.Cleanup.
func StartRabbitMQ(t *testing.T) (*amqp.Connection, func()) {
	t.Helper()

	addr, terminate := startContainer(t, testcontainers.ContainerRequest{
		Image:        "rabbitmq:3.13-alpine",
		ExposedPorts: []string{"5672/tcp"},
		Env: map[string]string{
			"RABBITMQ_DEFAULT_USER":  mqUser,
			"RABBITMQ_DEFAULT_PASS":  mqPass,
			"RABBITMQ_DEFAULT_VHOST": mqVhost,
		},
		WaitingFor: wait.ForLog("Server startup complete").WithStartupTimeout(90 * time.Second),
	}, "5672/tcp")

	url := fmt.Sprintf("amqp://%s:%s@%s/%s", mqUser, mqPass, addr, mqVhost)

	var conn *amqp.Connection
	retry(t, "dial rabbitmq", 30*time.Second, func() error {
		c, err := amqp.DialConfig(url, amqp.Config{Dial: amqp.DefaultDial(5 * time.Second)})
		if err != nil {
			return err
		}
		conn = c
		return nil
	})

	cleanup := func() {
		if !conn.IsClosed() {
			_ = conn.Close()
		}
		terminate()
	}
	t.Cleanup(cleanup)
	return conn, cleanup
}
