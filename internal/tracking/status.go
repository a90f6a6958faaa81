// Package tracking presents order progress and watches orders for new tracking updates.
package tracking

import (
	"time"

	"github.com/acrsolucoedig-spec/cellparts/internal/model"
)

var labels = map[model.OrderStatus]string{
	model.OrderStatusPending:   "Aguardando Confirmação",
	model.OrderStatusConfirmed: "Confirmado",
	model.OrderStatusPreparing: "Preparando Pedido",
	model.OrderStatusReady:     "Pronto para Entrega",
	model.OrderStatusInTransit: "Em Trânsito",
	model.OrderStatusDelivered: "Entregue",
	model.OrderStatusCancelled: "Cancelado",
}

var descriptions = map[model.OrderStatus]string{
	model.OrderStatusPending:   "Seu pedido foi recebido e está aguardando confirmação do restaurante.",
	model.OrderStatusConfirmed: "Seu pedido foi confirmado e será preparado em breve.",
	model.OrderStatusPreparing: "Estamos preparando seu pedido com muito cuidado.",
	model.OrderStatusReady:     "Seu pedido está pronto e aguardando o entregador.",
	model.OrderStatusInTransit: "Seu pedido está a caminho! Acompanhe a localização em tempo real.",
	model.OrderStatusDelivered: "Pedido entregue com sucesso! Aproveite sua refeição.",
	model.OrderStatusCancelled: "Este pedido foi cancelado.",
}

// Label falls back to the raw status.
func Label(s model.OrderStatus) string {
	if l, ok := labels[s]; ok {
		return l
	}
	return string(s)
}

func Description(s model.OrderStatus) string {
	return descriptions[s]
}

type Step struct {
	Status    model.OrderStatus `json:"status"`
	Label     string            `json:"label"`
	Completed bool              `json:"completed"`
	Current   bool              `json:"current"`
}

var stepOrder = []Step{
	{Status: model.OrderStatusPending, Label: "Recebido"},
	{Status: model.OrderStatusConfirmed, Label: "Confirmado"},
	{Status: model.OrderStatusPreparing, Label: "Preparando"},
	{Status: model.OrderStatusReady, Label: "Pronto"},
	{Status: model.OrderStatusInTransit, Label: "A Caminho"},
	{Status: model.OrderStatusDelivered, Label: "Entregue"},
}

// CurrentStepIndex is -1 for cancelled, problem and unknown statuses.
func CurrentStepIndex(s model.OrderStatus) int {
	for i, st := range stepOrder {
		if st.Status == s {
			return i
		}
	}
	return -1
}

func Steps(s model.OrderStatus) []Step {
	current := CurrentStepIndex(s)
	out := make([]Step, len(stepOrder))
	for i, st := range stepOrder {
		st.Completed = i <= current
		st.Current = i == current
		out[i] = st
	}
	return out
}

// ShowMap reports whether a live position is worth drawing.
func ShowMap(status model.OrderStatus, latest *model.OrderTracking) bool {
	if status != model.OrderStatusReady && status != model.OrderStatusInTransit {
		return false
	}
	return latest.HasLocation()
}

type Timeline struct {
	OrderID     string               `json:"orderId"`
	Status      model.OrderStatus    `json:"status"`
	Label       string               `json:"label"`
	Description string               `json:"description"`
	Steps       []Step               `json:"steps"`
	ShowMap     bool                 `json:"showMap"`
	Latest      *model.OrderTracking `json:"latest"`
	DeliveredAt *time.Time           `json:"deliveredAt,omitempty"`
}

func BuildTimeline(o model.Order, latest *model.OrderTracking) Timeline {
	t := Timeline{
		OrderID:     o.ID,
		Status:      o.Status,
		Label:       Label(o.Status),
		Description: Description(o.Status),
		Steps:       Steps(o.Status),
		ShowMap:     ShowMap(o.Status, latest),
		Latest:      latest,
	}
	if o.Status == model.OrderStatusDelivered {
		t.DeliveredAt = o.ActualDeliveryTime
		if t.DeliveredAt == nil && latest != nil && latest.IsCompleted {
			at := latest.CreatedAt
			t.DeliveredAt = &at
		}
	}
	return t
}
