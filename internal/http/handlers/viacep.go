package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/acrsolucoedig-spec/cellparts/internal/clients"
)

const msgLookupCEP = "Erro ao consultar CEP. Verifique sua conexão."

type ViaCepHandler struct{ c *clients.ViaCepClient }

func NewViaCepHandler(c *clients.ViaCepClient) *ViaCepHandler { return &ViaCepHandler{c: c} }

func (h *ViaCepHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	addr, err := h.c.Lookup(r.Context(), chi.URLParam(r, "cep"))
	if err != nil {
		writeClientError(w, r, err, msgLookupCEP)
		return
	}
	writeJSON(w, http.StatusOK, addr)
}
