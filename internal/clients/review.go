package clients

import (
	"context"
	"net/http"
	"net/url"

	"github.com/acrsolucoedig-spec/cellparts/internal/model"
)

type ReviewClient struct{ c *Client }

func NewReviewClient(c *Client) *ReviewClient { return &ReviewClient{c: c} }

func (rc *ReviewClient) List(ctx context.Context, f model.ReviewFilters) (*model.ReviewPage, error) {
	var page model.ReviewPage
	if err := rc.c.doJSON(ctx, http.MethodGet, "/reviews", f.Values(), nil, &page); err != nil {
		return nil, err
	}
	if page.Reviews == nil {
		page.Reviews = []model.Review{}
	}
	return &page, nil
}

func (rc *ReviewClient) Create(ctx context.Context, req model.CreateReviewRequest) (*model.Review, error) {
	var r model.Review
	if err := rc.c.doJSON(ctx, http.MethodPost, "/reviews", nil, req, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (rc *ReviewClient) Update(ctx context.Context, id string, req model.UpdateReviewRequest) (*model.Review, error) {
	var r model.Review
	if err := rc.c.doJSON(ctx, http.MethodPatch, "/reviews/"+escape(id), nil, req, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (rc *ReviewClient) Delete(ctx context.Context, id string) error {
	return rc.c.doJSON(ctx, http.MethodDelete, "/reviews/"+escape(id), nil, nil, nil)
}

func (rc *ReviewClient) MarkHelpful(ctx context.Context, id string) (*model.Review, error) {
	var r model.Review
	if err := rc.c.doJSON(ctx, http.MethodPost, "/reviews/"+escape(id)+"/helpful", nil, nil, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (rc *ReviewClient) Stats(ctx context.Context, productID, userID string) (*model.ReviewStats, error) {
	q := url.Values{}
	if productID != "" {
		q.Set("productId", productID)
	}
	if userID != "" {
		q.Set("userId", userID)
	}
	var s model.ReviewStats
	if err := rc.c.doJSON(ctx, http.MethodGet, "/reviews/stats", q, nil, &s); err != nil {
		return nil, err
	}
	if s.StarDistribution == nil {
		s.StarDistribution = map[int]int{}
	}
	return &s, nil
}
