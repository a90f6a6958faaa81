package clients

import (
	"context"
	"net/http"

	"github.com/acrsolucoedig-spec/cellparts/internal/model"
)

type OrderClient struct{ c *Client }

func NewOrderClient(c *Client) *OrderClient { return &OrderClient{c: c} }

func (oc *OrderClient) List(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	if err := oc.c.doJSON(ctx, http.MethodGet, "/orders", nil, nil, &orders); err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []model.Order{}
	}
	return orders, nil
}

// Get returns nil, nil when the backend does not know the order.
func (oc *OrderClient) Get(ctx context.Context, id string) (*model.Order, error) {
	var o model.Order
	if err := oc.c.doJSON(ctx, http.MethodGet, "/orders/"+escape(id), nil, nil, &o); err != nil {
		if StatusOf(err) == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (oc *OrderClient) Create(ctx context.Context, req model.CreateOrderRequest) (*model.Order, error) {
	var o model.Order
	if err := oc.c.doJSON(ctx, http.MethodPost, "/orders", nil, req, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (oc *OrderClient) Cancel(ctx context.Context, id string) error {
	return oc.c.doJSON(ctx, http.MethodDelete, "/orders/"+escape(id), nil, nil, nil)
}

func (oc *OrderClient) Stats(ctx context.Context) (*model.OrderStats, error) {
	var s model.OrderStats
	if err := oc.c.doJSON(ctx, http.MethodGet, "/orders/stats", nil, nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
