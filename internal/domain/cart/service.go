package cart

import (
	"context"
	"sync/atomic"

	"github.com/go-faster/errors"

	"github.com/mercadito/storefront/internal/domain/order"
	"github.com/mercadito/storefront/internal/notify"
	"github.com/mercadito/storefront/internal/query"
)

// API is the backend surface the cart service drives. Mutations are
// discrete HTTP effects; the server is the only serializer for concurrent
// calls on the same cart.
type API interface {
	FetchCart(ctx context.Context) (Cart, error)
	AddItem(ctx context.Context, productID string, delta int) error
	RemoveItem(ctx context.Context, productID string) error
	Checkout(ctx context.Context, shippingAddress string) (order.Order, error)
}

// Confirmer asks the user to approve a destructive action. Implementations
// may block on a dialog, prompt on a terminal, or return a fixed answer in
// tests.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ConfirmerFunc adapts a function to Confirmer.
type ConfirmerFunc func(ctx context.Context, prompt string) (bool, error)

func (f ConfirmerFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return f(ctx, prompt)
}

// Confirmation prompts shown before destructive cart actions.
const (
	promptRemoveLast = "Remove this product from the cart?"
	promptRemove     = "Are you sure you want to remove this product?"
)

// Fallback notification texts used when the server provides no message.
const (
	msgUpdateFailed = "Could not update the cart."
	msgRemoveFailed = "Could not remove the product."
	msgIncreased    = "Cart updated: quantity increased."
	msgDecreased    = "Cart updated: quantity decreased."
	msgRemoved      = "Product removed from the cart."
)

// serverMessenger is satisfied by transport errors that carry a
// human-readable message from the backend's error payload.
type serverMessenger interface {
	ServerMessage() string
}

// Service fronts the cart mutation layer with confirmation and UI-state
// policy, and derives the displayable view from the fetched cart. Errors
// from mutations are translated into notifications here; the returned error
// is informational for callers and already surfaced to the user.
type Service struct {
	api     API
	carts   *query.Cache[Cart]
	confirm Confirmer
	notify  notify.Notifier

	// invalidateOrders drops the order-history cache after a successful
	// checkout, when an order exists where none did before.
	invalidateOrders func()

	inflight atomic.Int32
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithOrdersInvalidation registers the order-history cache invalidation
// hook run after a successful checkout.
func WithOrdersInvalidation(fn func()) ServiceOption {
	return func(s *Service) { s.invalidateOrders = fn }
}

// NewService wires the cart service. The cache must be the one backed by
// api.FetchCart so invalidations force a re-read of server truth.
func NewService(api API, carts *query.Cache[Cart], confirm Confirmer, notifier notify.Notifier, opts ...ServiceOption) *Service {
	s := &Service{
		api:     api,
		carts:   carts,
		confirm: confirm,
		notify:  notifier,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// View returns the derived cart view. While no session is active the cache
// reports not-loaded and the view is simply empty: unauthenticated is not
// an error. A transport failure on the fetch propagates for the caller to
// render as an inline error state.
func (s *Service) View(ctx context.Context) (View, error) {
	c, err := s.carts.Get(ctx)
	if err != nil {
		if errors.Is(err, query.ErrNotLoaded) {
			return View{IsEmpty: true}, nil
		}
		return View{}, err
	}
	return Reconcile(c), nil
}

// Processing reports whether any cart mutation or checkout is in flight.
// It is a UX deterrent for the caller to disable controls with, not a
// correctness mechanism: the server remains the only serializer.
func (s *Service) Processing() bool {
	return s.inflight.Load() > 0
}

// Increment raises a line's quantity by one.
func (s *Service) Increment(ctx context.Context, productID string) error {
	return s.adjust(ctx, productID, 1)
}

// Decrement lowers a line's quantity by one. Decrementing a multi-unit line
// is low-risk and goes straight to the adjust endpoint; removing the last
// unit is destructive, so it asks for confirmation and routes through the
// remove endpoint instead. The adjust endpoint is never called with a delta
// that would reach zero.
func (s *Service) Decrement(ctx context.Context, productID string, currentQuantity int) error {
	if currentQuantity <= 1 {
		return s.confirmAndRemove(ctx, productID, promptRemoveLast)
	}
	return s.adjust(ctx, productID, -1)
}

// Remove deletes a line entirely, after confirmation.
func (s *Service) Remove(ctx context.Context, productID string) error {
	return s.confirmAndRemove(ctx, productID, promptRemove)
}

// Checkout submits the server-side cart with a shipping address. On success
// both the cart cache and the order-history cache are invalidated: the cart
// is cleared server-side and a new order exists. Presentation of failures
// is owned by the checkout sequencer, so no notification is emitted here.
func (s *Service) Checkout(ctx context.Context, shippingAddress string) (order.Order, error) {
	s.begin()
	defer s.end()

	o, err := s.api.Checkout(ctx, shippingAddress)
	if err != nil {
		return order.Order{}, err
	}

	s.carts.Invalidate()
	if s.invalidateOrders != nil {
		s.invalidateOrders()
	}
	return o, nil
}

// adjust sends a signed quantity delta. The success label is keyed off the
// sign of the delta: a decrement that does not empty the line did not
// remove anything and must not claim it did.
func (s *Service) adjust(ctx context.Context, productID string, delta int) error {
	s.begin()
	defer s.end()

	if err := s.api.AddItem(ctx, productID, delta); err != nil {
		s.notify.Error(messageFrom(err, msgUpdateFailed))
		return err
	}

	s.carts.Invalidate()
	if delta > 0 {
		s.notify.Success(msgIncreased)
	} else {
		s.notify.Success(msgDecreased)
	}
	return nil
}

func (s *Service) confirmAndRemove(ctx context.Context, productID, prompt string) error {
	ok, err := s.confirm.Confirm(ctx, prompt)
	if err != nil {
		return errors.Wrap(err, "confirm removal")
	}
	if !ok {
		return nil
	}

	s.begin()
	defer s.end()

	if err := s.api.RemoveItem(ctx, productID); err != nil {
		s.notify.Error(messageFrom(err, msgRemoveFailed))
		return err
	}

	s.carts.Invalidate()
	s.notify.Info(msgRemoved)
	return nil
}

func (s *Service) begin() { s.inflight.Add(1) }
func (s *Service) end()   { s.inflight.Add(-1) }

// messageFrom picks the server's error message when the backend sent one,
// falling back to the generic text otherwise.
func messageFrom(err error, fallback string) string {
	var sm serverMessenger
	if errors.As(err, &sm) && sm.ServerMessage() != "" {
		return sm.ServerMessage()
	}
	return fallback
}
