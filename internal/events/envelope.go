package events

import (
	"fmt"
	"time"
)

// EventEnvelope is the common envelope of every event on the bus.
type EventEnvelope[T any] struct {
	EventName     string    `json:"eventName"`
	EventVersion  int       `json:"eventVersion"`
	EventID       string    `json:"eventId"`
	CorrelationID string    `json:"correlationId,omitempty"`
	CausationID   string    `json:"causationId,omitempty"`
	Producer      string    `json:"producer"`
	PartitionKey  string    `json:"partitionKey"`
	Sequence      int64     `json:"sequence,omitempty"`
	OccurredAt    time.Time `json:"occurredAt"`
	Schema        string    `json:"schema"`
	Payload       T         `json:"payload"`
}

// EventMeta carries correlation context and the partition of an emitted event.
type EventMeta struct {
	CorrelationID string
	CausationID   string
	PartitionKey  string
}

func (e EventEnvelope[T]) Validate(expectedName string, expectedVersion int) error {
	if e.EventName != expectedName {
		return fmt.Errorf("unexpected eventName: %s", e.EventName)
	}
	if e.EventVersion != expectedVersion {
		return fmt.Errorf("unexpected eventVersion: %d", e.EventVersion)
	}
	if e.PartitionKey == "" {
		return fmt.Errorf("missing partitionKey")
	}
	return nil
}

func schemaName(name string, version int) string {
	return fmt.Sprintf("%s.v%d", name, version)
}

func newEnvelope[T any](name string, version int, eventID string, meta EventMeta, seq int64, producer string, payload T, occurredAt time.Time) EventEnvelope[T] {
	return EventEnvelope[T]{
		EventName:     name,
		EventVersion:  version,
		EventID:       eventID,
		CorrelationID: meta.CorrelationID,
		CausationID:   meta.CausationID,
		Producer:      producer,
		PartitionKey:  meta.PartitionKey,
		Sequence:      seq,
		OccurredAt:    occurredAt,
		Schema:        schemaName(name, version),
		Payload:       payload,
	}
}
