package clients

import (
	"context"
	"net/http"

	"github.com/acrsolucoedig-spec/cellparts/internal/model"
)

type TrackingClient struct{ c *Client }

func NewTrackingClient(c *Client) *TrackingClient { return &TrackingClient{c: c} }

func trackingPath(orderID string) string {
	return "/orders/" + escape(orderID) + "/tracking"
}

func (tc *TrackingClient) History(ctx context.Context, orderID string) ([]model.OrderTracking, error) {
	var history []model.OrderTracking
	if err := tc.c.doJSON(ctx, http.MethodGet, trackingPath(orderID), nil, nil, &history); err != nil {
		return nil, err
	}
	if history == nil {
		history = []model.OrderTracking{}
	}
	return history, nil
}

// Latest returns nil, nil while the order has no tracking yet.
func (tc *TrackingClient) Latest(ctx context.Context, orderID string) (*model.OrderTracking, error) {
	var latest *model.OrderTracking
	if err := tc.c.doJSON(ctx, http.MethodGet, trackingPath(orderID)+"/latest", nil, nil, &latest); err != nil {
		if StatusOf(err) == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	return latest, nil
}

func (tc *TrackingClient) AddUpdate(ctx context.Context, orderID string, req model.TrackingUpdateRequest) (*model.OrderTracking, error) {
	var t model.OrderTracking
	if err := tc.c.doJSON(ctx, http.MethodPost, trackingPath(orderID), nil, req, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// UpdateLocation posts a coordinates-only tracking update.
func (tc *TrackingClient) UpdateLocation(ctx context.Context, orderID string, lat, lng float64) (*model.OrderTracking, error) {
	return tc.AddUpdate(ctx, orderID, model.LocationUpdateRequest{Latitude: lat, Longitude: lng}.TrackingUpdate())
}

func (tc *TrackingClient) MarkDelivered(ctx context.Context, orderID string) error {
	return tc.c.doJSON(ctx, http.MethodPost, "/orders/"+escape(orderID)+"/deliver", nil, nil, nil)
}
