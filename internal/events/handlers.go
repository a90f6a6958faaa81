package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
)

const OrderCreatedConsumerName = "storefront-gateway-order-created"

// Checkpoints is the consumer-side dedup store.
type Checkpoints interface {
	Last(ctx context.Context, consumer, partitionKey string) (int64, bool, error)
	Advance(ctx context.Context, consumer, partitionKey string, seq int64) (bool, error)
}

type OrderWatcher interface {
	Watch(ctx context.Context, orderID string) error
}

// OrderCreatedHandler starts watching every newly created order exactly once per sequence.
func OrderCreatedHandler(checkpoints Checkpoints, watcher OrderWatcher, logger *log.Logger, consumerName string) HandlerFunc {
	return func(ctx context.Context, body []byte) error {
		var env OrderCreatedEvent
		if err := json.Unmarshal(body, &env); err != nil {
			return fmt.Errorf("unmarshal OrderCreated: %w", err)
		}
		if err := env.Validate(EventTypeOrderCreated, 1); err != nil {
			return fmt.Errorf("invalid OrderCreated: %w", err)
		}
		orderID := env.Payload.OrderID
		if orderID == "" {
			return fmt.Errorf("missing orderId")
		}

		if env.Sequence != 0 {
			lastSeq, ok, err := checkpoints.Last(ctx, consumerName, env.PartitionKey)
			if err != nil {
				return err
			}
			if ok {
				if env.Sequence <= lastSeq {
					logger.Printf("skip duplicate orderId=%s partition=%s seq=%d last=%d", orderID, env.PartitionKey, env.Sequence, lastSeq)
					return nil
				}
				if env.Sequence > lastSeq+1 {
					logger.Printf("warning: sequence gap for partition=%s seq=%d last=%d", env.PartitionKey, env.Sequence, lastSeq)
				}
			}
		}

		if err := watcher.Watch(ctx, orderID); err != nil {
			return fmt.Errorf("watch order %s: %w", orderID, err)
		}

		if env.Sequence != 0 {
			advanced, err := checkpoints.Advance(ctx, consumerName, env.PartitionKey, env.Sequence)
			if err != nil {
				return err
			}
			if !advanced {
				// A concurrent redelivery got there first; Watch is idempotent.
				logger.Printf("checkpoint partition=%s already at or past seq=%d", env.PartitionKey, env.Sequence)
			}
		}

		logger.Printf("watching order %s (event %s)", orderID, env.EventID)
		return nil
	}
}
