package api

import (
	"context"
	"net/http"

	"github.com/go-faster/errors"

	"github.com/mercadito/storefront/internal/domain/order"
)

// MyOrders retrieves the authenticated user's order history, newest first.
func (c *Client) MyOrders(ctx context.Context) ([]order.Order, error) {
	var out struct {
		Orders []order.Order `json:"orders"`
	}
	if err := c.do(ctx, http.MethodGet, "/orders/myorders", nil, &out); err != nil {
		return nil, errors.Wrap(err, "list orders")
	}
	return out.Orders, nil
}

// OrderByID retrieves a single order the user owns.
func (c *Client) OrderByID(ctx context.Context, id string) (order.Order, error) {
	var out struct {
		Order order.Order `json:"order"`
	}
	if err := c.do(ctx, http.MethodGet, "/orders/"+id, nil, &out); err != nil {
		return order.Order{}, errors.Wrapf(err, "get order %q", id)
	}
	return out.Order, nil
}
