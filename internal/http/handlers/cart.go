package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/acrsolucoedig-spec/cellparts/internal/clients"
	"github.com/acrsolucoedig-spec/cellparts/internal/model"
)

const (
	msgLoadCart       = "Erro ao carregar carrinho"
	msgAddToCart      = "Erro ao adicionar produto ao carrinho"
	msgUpdateCartItem = "Erro ao atualizar item do carrinho"
	msgRemoveCartItem = "Erro ao remover item do carrinho"
	msgClearCart      = "Erro ao limpar carrinho"
)

// cartBody adds the item quantity total shown by the mini cart.
type cartBody struct {
	*model.Cart
	ItemCount int `json:"itemCount"`
}

func newCartBody(c *model.Cart) cartBody {
	return cartBody{Cart: c, ItemCount: c.ItemCount()}
}

type CartHandler struct{ c *clients.CartClient }

func NewCartHandler(c *clients.CartClient) *CartHandler { return &CartHandler{c: c} }

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	cart, err := h.c.GetCart(r.Context())
	if err != nil {
		writeClientError(w, r, err, msgLoadCart)
		return
	}
	writeJSON(w, http.StatusOK, newCartBody(cart))
}

// Count never fails: the badge shows 0 when the cart cannot be loaded.
func (h *CartHandler) Count(w http.ResponseWriter, r *http.Request) {
	n, err := h.c.Count(r.Context())
	if err != nil {
		n = 0
	}
	writeJSON(w, http.StatusOK, model.CartCount{Count: n})
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req model.AddToCartRequest
	if !readRequest(w, r, &req) {
		return
	}
	cart, err := h.c.AddItem(r.Context(), req)
	if err != nil {
		writeClientError(w, r, err, msgAddToCart)
		return
	}
	writeJSON(w, http.StatusOK, newCartBody(cart))
}

func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateCartItemRequest
	if !readRequest(w, r, &req) {
		return
	}
	cart, err := h.c.UpdateItem(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeClientError(w, r, err, msgUpdateCartItem)
		return
	}
	writeJSON(w, http.StatusOK, newCartBody(cart))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	cart, err := h.c.RemoveItem(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeClientError(w, r, err, msgRemoveCartItem)
		return
	}
	writeJSON(w, http.StatusOK, newCartBody(cart))
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.c.Clear(r.Context()); err != nil {
		writeClientError(w, r, err, msgClearCart)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
