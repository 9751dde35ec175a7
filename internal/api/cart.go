package api

import (
	"context"
	"net/http"

	"github.com/go-faster/errors"

	"github.com/mercadito/storefront/internal/domain/cart"
	"github.com/mercadito/storefront/internal/domain/order"
)

// FetchCart retrieves the current user's cart. Callers gate this on an
// active session; an unauthenticated call is answered 401 by the backend.
func (c *Client) FetchCart(ctx context.Context) (cart.Cart, error) {
	var out struct {
		Cart cart.Cart `json:"cart"`
	}
	if err := c.do(ctx, http.MethodGet, "/cart", nil, &out); err != nil {
		return cart.Cart{}, errors.Wrap(err, "fetch cart")
	}
	return out.Cart, nil
}

// addItemRequest is the POST /cart/add payload. Quantity is a signed delta:
// the server adds it to the line's quantity, creating the line if absent.
type addItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// AddItem adjusts the quantity of a cart line by delta, creating the line
// when it does not exist yet. A negative delta decrements.
func (c *Client) AddItem(ctx context.Context, productID string, delta int) error {
	req := addItemRequest{ProductID: productID, Quantity: delta}
	if err := c.do(ctx, http.MethodPost, "/cart/add", req, nil); err != nil {
		return errors.Wrap(err, "add cart item")
	}
	return nil
}

// RemoveItem deletes the entire line for a product, regardless of quantity.
// Removing an already-absent product id yields a NotFound error; callers
// treat that as a surfaced no-op, not a crash.
func (c *Client) RemoveItem(ctx context.Context, productID string) error {
	if err := c.do(ctx, http.MethodDelete, "/cart/"+productID, nil, nil); err != nil {
		return errors.Wrap(err, "remove cart item")
	}
	return nil
}

// checkoutRequest is the POST /cart/checkout payload.
type checkoutRequest struct {
	ShippingAddress string `json:"shippingAddress"`
}

// Checkout submits the current server-side cart with a shipping address and
// returns the created order. The server clears the cart on success.
func (c *Client) Checkout(ctx context.Context, shippingAddress string) (order.Order, error) {
	req := checkoutRequest{ShippingAddress: shippingAddress}
	var out struct {
		Order order.Order `json:"order"`
	}
	if err := c.do(ctx, http.MethodPost, "/cart/checkout", req, &out); err != nil {
		return order.Order{}, errors.Wrap(err, "checkout")
	}
	return out.Order, nil
}
