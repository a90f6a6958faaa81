package clients

import (
	"context"
	"net/http"

	"github.com/acrsolucoedig-spec/cellparts/internal/model"
)

type CartClient struct{ c *Client }

func NewCartClient(c *Client) *CartClient { return &CartClient{c: c} }

func (cc *CartClient) GetCart(ctx context.Context) (*model.Cart, error) {
	var cart model.Cart
	if err := cc.c.doJSON(ctx, http.MethodGet, "/cart", nil, nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (cc *CartClient) AddItem(ctx context.Context, req model.AddToCartRequest) (*model.Cart, error) {
	req.Normalize()
	var cart model.Cart
	if err := cc.c.doJSON(ctx, http.MethodPost, "/cart/items", nil, req, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (cc *CartClient) UpdateItem(ctx context.Context, itemID string, req model.UpdateCartItemRequest) (*model.Cart, error) {
	var cart model.Cart
	if err := cc.c.doJSON(ctx, http.MethodPut, "/cart/items/"+escape(itemID), nil, req, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (cc *CartClient) RemoveItem(ctx context.Context, itemID string) (*model.Cart, error) {
	var cart model.Cart
	if err := cc.c.doJSON(ctx, http.MethodDelete, "/cart/items/"+escape(itemID), nil, nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (cc *CartClient) Clear(ctx context.Context) error {
	return cc.c.doJSON(ctx, http.MethodDelete, "/cart", nil, nil, nil)
}

func (cc *CartClient) Count(ctx context.Context) (int, error) {
	var out model.CartCount
	if err := cc.c.doJSON(ctx, http.MethodGet, "/cart/count", nil, nil, &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}
