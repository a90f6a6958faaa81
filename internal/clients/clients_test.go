package clients

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acrsolucoedig-spec/cellparts/internal/cep"
	"github.com/acrsolucoedig-spec/cellparts/internal/middleware"
	"github.com/acrsolucoedig-spec/cellparts/internal/model"
)

type recordedRequest struct {
	Method   string
	Path     string
	RawPath  string
	RawQuery string
	Header   http.Header
	Body     string
}

type stubReply struct {
	status int
	body   string
}

// newStubServer answers every request with reply and records it on the returned channel.
func newStubServer(t *testing.T, reply stubReply) (*httptest.Server, <-chan recordedRequest) {
	t.Helper()
	ch := make(chan recordedRequest, 10)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		ch <- recordedRequest{
			Method:   r.Method,
			Path:     r.URL.Path,
			RawPath:  r.URL.EscapedPath(),
			RawQuery: r.URL.RawQuery,
			Header:   r.Header.Clone(),
			Body:     string(body),
		}
		w.Header().Set("Content-Type", "application/json")
		status := reply.status
		if status == 0 {
			status = http.StatusOK
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(reply.body))
	}))
	t.Cleanup(srv.Close)
	return srv, ch
}

func newBase(url string) *Client {
	return NewClient("backend", url, &http.Client{Timeout: 5 * time.Second})
}

func recv(t *testing.T, ch <-chan recordedRequest) recordedRequest {
	t.Helper()
	select {
	case rec := <-ch:
		return rec
	case <-time.After(time.Second):
		t.Fatal("did not receive upstream request")
		return recordedRequest{}
	}
}

func authedCtx() context.Context {
	ctx := middleware.WithBearerToken(context.Background(), "tok-1")
	return middleware.WithCorrelationID(ctx, "cid-1")
}

func TestNewClientPanicsOnBadURL(t *testing.T) {
	assert.Panics(t, func() { NewClient("x", "://bad", http.DefaultClient) })
	assert.Panics(t, func() { NewClient("x", "localhost", http.DefaultClient) })
}

func TestDoPropagatesTokenAndCorrelationID(t *testing.T) {
	srv, ch := newStubServer(t, stubReply{body: `{"id":"c1","items":[],"subtotal":10.5,"shipping":0,"total":10.5}`})
	cart := NewCartClient(newBase(srv.URL + "/api/"))

	got, err := cart.GetCart(authedCtx())
	require.NoError(t, err)
	assert.Equal(t, "c1", got.ID)
	assert.True(t, got.Total.Equal(decimal.RequireFromString("10.5")))

	rec := recv(t, ch)
	assert.Equal(t, http.MethodGet, rec.Method)
	assert.Equal(t, "/api/cart", rec.Path)
	assert.Equal(t, "Bearer tok-1", rec.Header.Get("Authorization"))
	assert.Equal(t, "cid-1", rec.Header.Get(middleware.HeaderCorrelationID))
}

func TestAnonymousRequestHasNoAuthorization(t *testing.T) {
	srv, ch := newStubServer(t, stubReply{body: `[]`})
	products := NewProductClient(newBase(srv.URL))

	list, err := products.Promotional(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NotNil(t, list)

	rec := recv(t, ch)
	assert.Empty(t, rec.Header.Get("Authorization"))
}

func TestAddItemDefaultsQuantity(t *testing.T) {
	srv, ch := newStubServer(t, stubReply{body: `{"id":"c1","items":[{"productId":"p1","quantity":1}]}`})
	cart := NewCartClient(newBase(srv.URL))

	_, err := cart.AddItem(authedCtx(), model.AddToCartRequest{ProductID: "p1"})
	require.NoError(t, err)

	rec := recv(t, ch)
	assert.Equal(t, http.MethodPost, rec.Method)
	assert.Equal(t, "/cart/items", rec.Path)
	assert.JSONEq(t, `{"productId":"p1","quantity":1}`, rec.Body)
	assert.Equal(t, "application/json", rec.Header.Get("Content-Type"))
}

func TestPathSegmentsAreEscaped(t *testing.T) {
	srv, ch := newStubServer(t, stubReply{body: `{}`})
	cart := NewCartClient(newBase(srv.URL))

	_, err := cart.RemoveItem(authedCtx(), "a/b c")
	require.NoError(t, err)

	rec := recv(t, ch)
	assert.Equal(t, http.MethodDelete, rec.Method)
	assert.Equal(t, "/cart/items/a%2Fb%20c", rec.RawPath)
}

func TestCartCount(t *testing.T) {
	srv, _ := newStubServer(t, stubReply{body: `{"count":7}`})
	n, err := NewCartClient(newBase(srv.URL)).Count(authedCtx())
	require.NoError(t, err)
	assert.Equal(t, 7, n)
}

func TestAPIErrorCarriesServerMessage(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{name: "string", body: `{"statusCode":400,"message":"Estoque insuficiente"}`, want: "Estoque insuficiente"},
		{name: "list", body: `{"message":["quantity must be positive","productId must be a UUID"]}`, want: "quantity must be positive; productId must be a UUID"},
		{name: "no message", body: `{"error":"Bad Request"}`, want: ""},
		{name: "not json", body: `oops`, want: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv, _ := newStubServer(t, stubReply{status: http.StatusBadRequest, body: tc.body})
			_, err := NewCartClient(newBase(srv.URL)).AddItem(authedCtx(), model.AddToCartRequest{ProductID: "p1"})

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
			assert.Equal(t, tc.want, apiErr.Message)
			assert.Equal(t, http.StatusBadRequest, StatusOf(err))
		})
	}
}

func TestTransportErrorIsNotAPIError(t *testing.T) {
	srv, _ := newStubServer(t, stubReply{})
	base := newBase(srv.URL)
	srv.Close()

	_, err := NewOrderClient(base).List(authedCtx())
	require.Error(t, err)
	assert.Zero(t, StatusOf(err))
}

func TestOrderGetNotFoundIsNil(t *testing.T) {
	srv, _ := newStubServer(t, stubReply{status: http.StatusNotFound, body: `{"message":"Order not found"}`})
	o, err := NewOrderClient(newBase(srv.URL)).Get(authedCtx(), "o-1")
	require.NoError(t, err)
	assert.Nil(t, o)
}

func TestOrderCreateAndCancel(t *testing.T) {
	srv, ch := newStubServer(t, stubReply{status: http.StatusCreated, body: `{"id":"o-9","status":"pending","total":"99.90"}`})
	orders := NewOrderClient(newBase(srv.URL))

	o, err := orders.Create(authedCtx(), model.CreateOrderRequest{PaymentMethod: model.PaymentPix})
	require.NoError(t, err)
	assert.Equal(t, "o-9", o.ID)
	assert.Equal(t, model.OrderStatusPending, o.Status)
	assert.True(t, o.Total.Equal(decimal.RequireFromString("99.9")))
	rec := recv(t, ch)
	assert.Equal(t, "/orders", rec.Path)

	require.NoError(t, orders.Cancel(authedCtx(), "o-9"))
	rec = recv(t, ch)
	assert.Equal(t, http.MethodDelete, rec.Method)
	assert.Equal(t, "/orders/o-9", rec.Path)
}

func TestProductQueries(t *testing.T) {
	srv, ch := newStubServer(t, stubReply{body: `[]`})
	products := NewProductClient(newBase(srv.URL))

	_, err := products.Popular(context.Background(), 0)
	require.NoError(t, err)
	rec := recv(t, ch)
	assert.Equal(t, "/products/popular", rec.Path)
	assert.Equal(t, "limit=10", rec.RawQuery)

	_, err = products.ByCategory(context.Background(), model.CategoryLivros, 0)
	require.NoError(t, err)
	rec = recv(t, ch)
	assert.Equal(t, "/products/category/livros", rec.Path)
	assert.Equal(t, "limit=20", rec.RawQuery)
}

func TestProductListSendsOnlySetFilters(t *testing.T) {
	srv, ch := newStubServer(t, stubReply{body: `{"products":[{"id":"p1","price":12.5}],"total":1}`})
	inStock := true
	page, err := NewProductClient(newBase(srv.URL)).List(context.Background(), model.ProductFilters{
		Search:  "fone",
		InStock: &inStock,
		SortBy:  "price",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
	require.Len(t, page.Products, 1)

	rec := recv(t, ch)
	assert.Equal(t, "inStock=true&search=fone&sortBy=price", rec.RawQuery)
}

func TestReviewStatsAndHelpful(t *testing.T) {
	srv, ch := newStubServer(t, stubReply{body: `{"totalReviews":3,"averageRating":4.33,"minRating":3,"maxRating":5,"starDistribution":{"3":1,"5":2}}`})
	reviews := NewReviewClient(newBase(srv.URL))

	stats, err := reviews.Stats(context.Background(), "p1", "")
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalReviews)
	assert.Equal(t, map[int]int{3: 1, 5: 2}, stats.StarDistribution)
	rec := recv(t, ch)
	assert.Equal(t, "productId=p1", rec.RawQuery)

	_, err = reviews.MarkHelpful(context.Background(), "r1")
	require.NoError(t, err)
	rec = recv(t, ch)
	assert.Equal(t, http.MethodPost, rec.Method)
	assert.Equal(t, "/reviews/r1/helpful", rec.Path)
}

func TestTrackingLatestNull(t *testing.T) {
	srv, _ := newStubServer(t, stubReply{body: `null`})
	latest, err := NewTrackingClient(newBase(srv.URL)).Latest(authedCtx(), "o-1")
	require.NoError(t, err)
	assert.Nil(t, latest)
}

func TestTrackingUpdateLocation(t *testing.T) {
	srv, ch := newStubServer(t, stubReply{status: http.StatusCreated, body: `{"id":"t1","orderId":"o-1","latitude":-23.5,"longitude":-46.6}`})
	tr, err := NewTrackingClient(newBase(srv.URL)).UpdateLocation(authedCtx(), "o-1", -23.5, -46.6)
	require.NoError(t, err)
	assert.True(t, tr.HasLocation())

	rec := recv(t, ch)
	assert.Equal(t, "/orders/o-1/tracking", rec.Path)
	assert.JSONEq(t, `{"latitude":-23.5,"longitude":-46.6}`, rec.Body)
}

func TestViaCepValidatesBeforeCalling(t *testing.T) {
	srv, ch := newStubServer(t, stubReply{body: `{"cep":"01001-000","logradouro":"Praça da Sé","bairro":"Sé","localidade":"São Paulo","uf":"SP"}`})
	viacep := NewViaCepClient(newBase(srv.URL))

	_, err := viacep.Lookup(context.Background(), "0100-100")
	require.ErrorIs(t, err, cep.ErrInvalidLength)
	select {
	case rec := <-ch:
		t.Fatalf("unexpected upstream request: %+v", rec)
	default:
	}

	addr, err := viacep.Lookup(context.Background(), "01001-000")
	require.NoError(t, err)
	assert.Equal(t, "SP", addr.UF)
	rec := recv(t, ch)
	assert.Equal(t, "/viacep/01001000", rec.Path)
}

func TestViaCepFormatsCEP(t *testing.T) {
	cases := []struct {
		name, body, want string
	}{
		{"digits from backend", `{"cep":"01310100","uf":"SP"}`, "01310-100"},
		{"already masked", `{"cep":"01310-100","uf":"SP"}`, "01310-100"},
		{"missing cep", `{"uf":"SP"}`, "01310-100"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv, _ := newStubServer(t, stubReply{body: tc.body})
			addr, err := NewViaCepClient(newBase(srv.URL)).Lookup(context.Background(), "01310100")
			require.NoError(t, err)
			assert.Equal(t, tc.want, addr.CEP)
		})
	}
}

func TestCheckHealth(t *testing.T) {
	srv, _ := newStubServer(t, stubReply{status: http.StatusServiceUnavailable})
	res := CheckHealth(context.Background(), HealthCheck{Name: "backend", Client: newBase(srv.URL), Path: "/health"})
	assert.False(t, res.OK)
	assert.Equal(t, http.StatusServiceUnavailable, res.StatusCode)
}
