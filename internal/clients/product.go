package clients

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/acrsolucoedig-spec/cellparts/internal/model"
)

const (
	DefaultPopularLimit  = 10
	DefaultCategoryLimit = 20
)

type ProductClient struct{ c *Client }

func NewProductClient(c *Client) *ProductClient { return &ProductClient{c: c} }

func (pc *ProductClient) List(ctx context.Context, f model.ProductFilters) (*model.ProductPage, error) {
	var page model.ProductPage
	if err := pc.c.doJSON(ctx, http.MethodGet, "/products", f.Values(), nil, &page); err != nil {
		return nil, err
	}
	if page.Products == nil {
		page.Products = []model.Product{}
	}
	return &page, nil
}

func (pc *ProductClient) Get(ctx context.Context, id string) (*model.Product, error) {
	var p model.Product
	if err := pc.c.doJSON(ctx, http.MethodGet, "/products/"+escape(id), nil, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (pc *ProductClient) Popular(ctx context.Context, limit int) ([]model.Product, error) {
	if limit <= 0 {
		limit = DefaultPopularLimit
	}
	return pc.list(ctx, "/products/popular", url.Values{"limit": {strconv.Itoa(limit)}})
}

func (pc *ProductClient) Promotional(ctx context.Context) ([]model.Product, error) {
	return pc.list(ctx, "/products/promotional", nil)
}

func (pc *ProductClient) ByCategory(ctx context.Context, category model.ProductCategory, limit int) ([]model.Product, error) {
	if limit <= 0 {
		limit = DefaultCategoryLimit
	}
	return pc.list(ctx, "/products/category/"+escape(string(category)), url.Values{"limit": {strconv.Itoa(limit)}})
}

func (pc *ProductClient) list(ctx context.Context, path string, q url.Values) ([]model.Product, error) {
	var products []model.Product
	if err := pc.c.doJSON(ctx, http.MethodGet, path, q, nil, &products); err != nil {
		return nil, err
	}
	if products == nil {
		products = []model.Product{}
	}
	return products, nil
}
