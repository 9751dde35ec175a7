package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	base, err := url.Parse(srv.URL + "/api")
	require.NoError(t, err)
	return New(base, srv.Client())
}

func TestFetchCartDecodesEnvelope(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/cart", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"status": "success",
			"data": {
				"cart": {
					"_id": "c1",
					"user": "u1",
					"items": [
						{"_id": "l1", "quantity": 2, "product": {"_id": "p1", "name": "Honey", "price": 5.5, "stock": 3, "category": "food", "image": "honey.jpg"}},
						{"_id": "l2", "quantity": 1, "product": null}
					]
				}
			}
		}`))
	}))

	got, err := c.FetchCart(t.Context())
	require.NoError(t, err)

	assert.Equal(t, "c1", got.ID)
	require.Len(t, got.Items, 2)
	require.NotNil(t, got.Items[0].Product)
	assert.Equal(t, "Honey", got.Items[0].Product.Name)
	assert.Equal(t, "5.5", got.Items[0].Product.Price.String())
	assert.Nil(t, got.Items[1].Product, "a deleted product decodes to a nil reference")
}

func TestAddItemSendsSignedDelta(t *testing.T) {
	var got addItemRequest
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/cart/add", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"status":"success"}`))
	}))

	require.NoError(t, c.AddItem(t.Context(), "p1", -1))
	assert.Equal(t, addItemRequest{ProductID: "p1", Quantity: -1}, got)
}

func TestRemoveItemNotFound(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"status":"fail","message":"Item not in cart"}`))
	}))

	err := c.RemoveItem(t.Context(), "ghost")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Item not in cart", apiErr.ServerMessage())
}

func TestErrorWithoutServerMessage(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream exploded"))
	}))

	err := c.AddItem(t.Context(), "p1", 1)
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Empty(t, apiErr.ServerMessage())
	assert.Contains(t, apiErr.Error(), "502")
}

func TestCheckoutReturnsOrder(t *testing.T) {
	var got checkoutRequest
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/cart/checkout", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{
			"status": "success",
			"data": {"order": {"_id": "o1", "totalAmount": 30, "status": "pending", "items": []}}
		}`))
	}))

	o, err := c.Checkout(t.Context(), "Calle Falsa 123")
	require.NoError(t, err)
	assert.Equal(t, checkoutRequest{ShippingAddress: "Calle Falsa 123"}, got)
	assert.Equal(t, "o1", o.ID)
	assert.Equal(t, "30", o.TotalAmount.String())
}

func TestLoginDecodesRootPayload(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/users/login", r.URL.Path)
		// Login answers with the user at the body root, not under data.
		_, _ = w.Write([]byte(`{"status":"success","user":{"_id":"u1","name":"Ana","role":"user"}}`))
	}))

	u, err := c.Login(t.Context(), "ana@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)
	assert.Equal(t, "Ana", u.Name)
}

func TestMyOrders(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/orders/myorders", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"status": "success",
			"data": {"orders": [
				{"_id": "o2", "totalAmount": 12.5, "status": "paid", "items": [], "createdAt": "2026-08-30T10:00:00Z"},
				{"_id": "o1", "totalAmount": 30, "status": "delivered", "items": [], "createdAt": "2026-07-01T10:00:00Z"}
			]}
		}`))
	}))

	orders, err := c.MyOrders(t.Context())
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "o2", orders[0].ID)
}

func TestCreateProductMultipart(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Candle", r.FormValue("name"))
		assert.Equal(t, "9.99", r.FormValue("price"))
		assert.Equal(t, "4", r.FormValue("stock"))

		file, header, err := r.FormFile("productImage")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "candle.jpg", header.Filename)

		_, _ = w.Write([]byte(`{"status":"success","data":{"product":{"_id":"p7","name":"Candle","price":9.99}}}`))
	}))

	p, err := c.CreateProduct(t.Context(), CreateProductParams{
		Name:      "Candle",
		Price:     decimal.RequireFromString("9.99"),
		Stock:     4,
		Category:  "home",
		ImageName: "candle.jpg",
		Image:     strings.NewReader("fake image bytes"),
	})
	require.NoError(t, err)
	assert.Equal(t, "p7", p.ID)
}
