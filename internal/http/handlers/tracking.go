package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/acrsolucoedig-spec/cellparts/internal/clients"
	"github.com/acrsolucoedig-spec/cellparts/internal/model"
)

const (
	msgTrackingHistory = "Erro ao carregar histórico de rastreamento"
	msgAddTracking     = "Erro ao adicionar atualização de rastreamento"
	msgMarkDelivered   = "Erro ao marcar pedido como entregue"
)

type TrackingHandler struct{ c *clients.TrackingClient }

func NewTrackingHandler(c *clients.TrackingClient) *TrackingHandler { return &TrackingHandler{c: c} }

func (h *TrackingHandler) History(w http.ResponseWriter, r *http.Request) {
	history, err := h.c.History(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeClientError(w, r, err, msgTrackingHistory)
		return
	}
	writeJSON(w, http.StatusOK, history)
}

// Latest answers null while the order has no tracking yet.
func (h *TrackingHandler) Latest(w http.ResponseWriter, r *http.Request) {
	latest, err := h.c.Latest(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeClientError(w, r, err, msgTrackingHistory)
		return
	}
	writeJSON(w, http.StatusOK, latest)
}

func (h *TrackingHandler) AddUpdate(w http.ResponseWriter, r *http.Request) {
	var req model.TrackingUpdateRequest
	if !readRequest(w, r, &req) {
		return
	}
	t, err := h.c.AddUpdate(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeClientError(w, r, err, msgAddTracking)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (h *TrackingHandler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	var req model.LocationUpdateRequest
	if !readRequest(w, r, &req) {
		return
	}
	t, err := h.c.UpdateLocation(r.Context(), chi.URLParam(r, "id"), req.Latitude, req.Longitude)
	if err != nil {
		writeClientError(w, r, err, msgAddTracking)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (h *TrackingHandler) MarkDelivered(w http.ResponseWriter, r *http.Request) {
	if err := h.c.MarkDelivered(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeClientError(w, r, err, msgMarkDelivered)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
