package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/acrsolucoedig-spec/cellparts/internal/clients"
	"github.com/acrsolucoedig-spec/cellparts/internal/middleware"
	"github.com/acrsolucoedig-spec/cellparts/internal/model"
	"github.com/acrsolucoedig-spec/cellparts/internal/orders"
	"github.com/acrsolucoedig-spec/cellparts/internal/tracking"
)

const (
	msgListOrders    = "Erro ao carregar pedidos"
	msgCreateOrder   = "Erro ao criar pedido"
	msgCancelOrder   = "Erro ao cancelar pedido"
	msgOrderStats    = "Erro ao carregar estatísticas de pedidos"
	msgOrderNotFound = "Pedido não encontrado"
)

// OrderWatcher starts tracking a new order in the background.
type OrderWatcher interface {
	Watch(ctx context.Context, orderID string) error
}

type OrderHandler struct {
	orders   *clients.OrderClient
	tracking *clients.TrackingClient
	watcher  OrderWatcher
	logger   *log.Logger
}

// NewOrderHandler accepts a nil watcher when tracking events are disabled.
func NewOrderHandler(oc *clients.OrderClient, tc *clients.TrackingClient, watcher OrderWatcher, logger *log.Logger) *OrderHandler {
	return &OrderHandler{orders: oc, tracking: tc, watcher: watcher, logger: logger}
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.orders.List(r.Context())
	if err != nil {
		writeClientError(w, r, err, msgListOrders)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *OrderHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.orders.Stats(r.Context())
	if err != nil {
		writeClientError(w, r, err, msgOrderStats)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *OrderHandler) History(w http.ResponseWriter, r *http.Request) {
	q, err := orders.ParseHistoryQuery(r.URL.Query())
	if err != nil {
		middleware.WriteError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	list, err := h.orders.List(r.Context())
	if err != nil {
		writeClientError(w, r, err, msgListOrders)
		return
	}
	writeJSON(w, http.StatusOK, orders.BuildHistory(list, q))
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	o, ok := h.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateOrderRequest
	if !readRequest(w, r, &req) {
		return
	}
	o, err := h.orders.Create(r.Context(), req)
	if err != nil {
		writeClientError(w, r, err, msgCreateOrder)
		return
	}
	// A final status (the backend may cancel at checkout) has nothing left to track.
	if h.watcher != nil && o.ID != "" && !o.Status.Final() {
		if err := h.watcher.Watch(r.Context(), o.ID); err != nil {
			h.logger.Printf("watch order %s: %v cid=%s", o.ID, err, middleware.GetCorrelationID(r.Context()))
		}
	}
	writeJSON(w, http.StatusCreated, o)
}

func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	if err := h.orders.Cancel(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeClientError(w, r, err, msgCancelOrder)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"cancelled": true})
}

func (h *OrderHandler) Timeline(w http.ResponseWriter, r *http.Request) {
	o, ok := h.load(w, r)
	if !ok {
		return
	}
	latest, err := h.tracking.Latest(r.Context(), o.ID)
	if err != nil {
		writeClientError(w, r, err, msgTrackingHistory)
		return
	}
	writeJSON(w, http.StatusOK, tracking.BuildTimeline(*o, latest))
}

func (h *OrderHandler) load(w http.ResponseWriter, r *http.Request) (*model.Order, bool) {
	o, err := h.orders.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeClientError(w, r, err, msgOrderNotFound)
		return nil, false
	}
	if o == nil {
		middleware.WriteError(w, r, http.StatusNotFound, msgOrderNotFound)
		return nil, false
	}
	return o, true
}
