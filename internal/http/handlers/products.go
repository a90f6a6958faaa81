package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/acrsolucoedig-spec/cellparts/internal/clients"
	"github.com/acrsolucoedig-spec/cellparts/internal/middleware"
	"github.com/acrsolucoedig-spec/cellparts/internal/model"
)

const (
	msgListProducts    = "Erro ao carregar produtos. Tente novamente."
	msgProductNotFound = "Produto não encontrado"
	msgInvalidCategory = "categoria inválida"
	msgInvalidLimit    = "limit deve ser um número positivo"
)

type ProductHandler struct{ c *clients.ProductClient }

func NewProductHandler(c *clients.ProductClient) *ProductHandler { return &ProductHandler{c: c} }

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	f, err := model.ParseProductFilters(r.URL.Query())
	if err != nil {
		writeClientError(w, r, err, msgListProducts)
		return
	}
	page, err := h.c.List(r.Context(), f)
	if err != nil {
		writeClientError(w, r, err, msgListProducts)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.c.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeClientError(w, r, err, msgProductNotFound)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProductHandler) Popular(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryLimit(w, r)
	if !ok {
		return
	}
	products, err := h.c.Popular(r.Context(), limit)
	if err != nil {
		writeClientError(w, r, err, msgListProducts)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) Promotional(w http.ResponseWriter, r *http.Request) {
	products, err := h.c.Promotional(r.Context())
	if err != nil {
		writeClientError(w, r, err, msgListProducts)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) ByCategory(w http.ResponseWriter, r *http.Request) {
	category := model.ProductCategory(chi.URLParam(r, "category"))
	if !category.Valid() {
		middleware.WriteError(w, r, http.StatusBadRequest, msgInvalidCategory)
		return
	}
	limit, ok := queryLimit(w, r)
	if !ok {
		return
	}
	products, err := h.c.ByCategory(r.Context(), category, limit)
	if err != nil {
		writeClientError(w, r, err, msgListProducts)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// queryLimit returns 0 when absent so the client applies its default.
func queryLimit(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		middleware.WriteError(w, r, http.StatusBadRequest, msgInvalidLimit)
		return 0, false
	}
	return n, true
}
