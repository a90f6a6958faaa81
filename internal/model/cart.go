package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type CartItem struct {
	ID                      string           `json:"id"`
	CartID                  string           `json:"cartId"`
	ProductID               string           `json:"productId"`
	ProductName             string           `json:"productName"`
	ProductPrice            decimal.Decimal  `json:"productPrice"`
	ProductPromotionalPrice *decimal.Decimal `json:"productPromotionalPrice,omitempty"`
	ProductImageURL         string           `json:"productImageUrl,omitempty"`
	Quantity                int              `json:"quantity"`
	TotalPrice              decimal.Decimal  `json:"totalPrice"`
	CreatedAt               time.Time        `json:"createdAt"`
	UpdatedAt               time.Time        `json:"updatedAt"`
}

type Cart struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId"`
	Items     []CartItem      `json:"items"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Shipping  decimal.Decimal `json:"shipping"`
	Total     decimal.Decimal `json:"total"`
	IsActive  bool            `json:"isActive"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// ItemCount sums item quantities.
func (c *Cart) ItemCount() int {
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

type CartCount struct {
	Count int `json:"count"`
}

type AddToCartRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// Normalize applies the default quantity of one.
func (r *AddToCartRequest) Normalize() {
	r.ProductID = strings.TrimSpace(r.ProductID)
	if r.Quantity == 0 {
		r.Quantity = 1
	}
}

func (r AddToCartRequest) Validate() error {
	if strings.TrimSpace(r.ProductID) == "" {
		return invalid("productId", "productId é obrigatório")
	}
	if r.Quantity < 1 {
		return invalid("quantity", "quantidade deve ser maior que zero")
	}
	return nil
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

func (r UpdateCartItemRequest) Validate() error {
	if r.Quantity < 1 {
		return invalid("quantity", "quantidade deve ser maior que zero")
	}
	return nil
}
