package events

import "time"

const (
	EventTypeOrderCreated         = "OrderCreated"
	EventTypeOrderTrackingUpdated = "OrderTrackingUpdated"
	EventTypeOrderDelivered       = "OrderDelivered"
)

// OrderCreatedPayload is published by the order backend when checkout succeeds.
type OrderCreatedPayload struct {
	OrderID    string    `json:"orderId"`
	CustomerID string    `json:"customerId,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

type OrderCreatedEvent = EventEnvelope[OrderCreatedPayload]

type TrackingUpdatedPayload struct {
	OrderID     string    `json:"orderId"`
	TrackingID  string    `json:"trackingId"`
	Latitude    *float64  `json:"latitude,omitempty"`
	Longitude   *float64  `json:"longitude,omitempty"`
	Address     string    `json:"address,omitempty"`
	City        string    `json:"city,omitempty"`
	State       string    `json:"state,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	IsCompleted bool      `json:"isCompleted"`
	RecordedAt  time.Time `json:"recordedAt"`
}

type TrackingUpdatedEvent = EventEnvelope[TrackingUpdatedPayload]

type OrderDeliveredPayload struct {
	OrderID     string    `json:"orderId"`
	TrackingID  string    `json:"trackingId"`
	DeliveredAt time.Time `json:"deliveredAt"`
}

type OrderDeliveredEvent = EventEnvelope[OrderDeliveredPayload]
