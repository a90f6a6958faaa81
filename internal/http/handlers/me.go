package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/acrsolucoedig-spec/cellparts/internal/clients"
	"github.com/acrsolucoedig-spec/cellparts/internal/dashboard"
	"github.com/acrsolucoedig-spec/cellparts/internal/middleware"
	"github.com/acrsolucoedig-spec/cellparts/internal/model"
)

const (
	msgForbidden   = "Acesso negado"
	msgUnknownRole = "Perfil desconhecido"
)

func Me(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.GetIdentity(r.Context())
	if !ok {
		middleware.WriteError(w, r, http.StatusUnauthorized, middleware.MsgUnauthenticated)
		return
	}
	writeJSON(w, http.StatusOK, id)
}

type DashboardHandler struct{ orders *clients.OrderClient }

func NewDashboardHandler(oc *clients.OrderClient) *DashboardHandler {
	return &DashboardHandler{orders: oc}
}

// Get serves /dashboards/{role}. The client dashboard is filled from order stats when
// they load; any failure there leaves the placeholder values.
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.GetIdentity(r.Context())
	if !ok {
		middleware.WriteError(w, r, http.StatusUnauthorized, middleware.MsgUnauthenticated)
		return
	}
	role := model.UserRole(chi.URLParam(r, "role"))
	if !role.Valid() {
		middleware.WriteError(w, r, http.StatusNotFound, msgUnknownRole)
		return
	}
	if !dashboard.CanView(id.Role, role) {
		middleware.WriteError(w, r, http.StatusForbidden, msgForbidden)
		return
	}

	var stats *model.OrderStats
	if role == model.RoleClient {
		if s, err := h.orders.Stats(r.Context()); err == nil {
			stats = s
		}
	}

	d, err := dashboard.For(role, stats)
	if errors.Is(err, dashboard.ErrUnknownRole) {
		middleware.WriteError(w, r, http.StatusNotFound, msgUnknownRole)
		return
	}
	writeJSON(w, http.StatusOK, d)
}
