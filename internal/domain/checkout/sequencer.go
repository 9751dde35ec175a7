// Package checkout sequences the multi-step checkout flow: address entry,
// submit, and the success or recoverable-failure outcome.
package checkout

import (
	"context"
	"strings"
	"sync"

	"github.com/go-faster/errors"

	"github.com/mercadito/storefront/internal/domain/order"
)

// State is a step of the checkout flow.
type State uint8

const (
	// StateIdle is the initial state, before the checkout view is opened.
	StateIdle State = iota
	// StateAwaitingAddress accepts address input and submit attempts.
	// A failed submit returns here with the error attached and the
	// address preserved, so the user can retry without re-typing.
	StateAwaitingAddress
	// StateSubmitting has a checkout call in flight. The flow leaves this
	// state only when the underlying request completes; there is no
	// timeout-triggered transition.
	StateSubmitting
	// StateSucceeded is terminal for the session: the order was created
	// and the caller switches to an order-confirmation display.
	StateSucceeded
)

// String implements fmt.Stringer for logs and test failures.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingAddress:
		return "awaiting_address"
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	default:
		return "unknown"
	}
}

var (
	// ErrAddressRequired rejects a submit with an empty or whitespace-only
	// shipping address. It is raised before any network call is made.
	ErrAddressRequired = errors.New("shipping address is required")
	// ErrNotAwaiting rejects a submit outside the AwaitingAddress state.
	ErrNotAwaiting = errors.New("checkout is not awaiting an address")
)

// SubmitFunc performs the actual checkout call and returns the created
// order. The cart service's Checkout method satisfies it.
type SubmitFunc func(ctx context.Context, shippingAddress string) (order.Order, error)

// Sequencer is the checkout state machine. It gates the submit on a
// non-empty address, tracks the in-flight state, and holds the created
// order after success. It never retries on its own.
type Sequencer struct {
	submit SubmitFunc

	mu      sync.Mutex
	state   State
	address string
	lastErr error
	order   *order.Order
}

// New creates a Sequencer in the Idle state.
func New(submit SubmitFunc) *Sequencer {
	return &Sequencer{submit: submit}
}

// Open moves Idle to AwaitingAddress. Opening an already-open or finished
// flow is a no-op.
func (s *Sequencer) Open() {
	s.mu.Lock()
	if s.state == StateIdle {
		s.state = StateAwaitingAddress
	}
	s.mu.Unlock()
}

// SetAddress records the user-entered shipping address and clears any
// previous validation error.
func (s *Sequencer) SetAddress(address string) {
	s.mu.Lock()
	s.address = address
	if errors.Is(s.lastErr, ErrAddressRequired) {
		s.lastErr = nil
	}
	s.mu.Unlock()
}

// Address returns the current shipping address. It survives a failed
// submit.
func (s *Sequencer) Address() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.address
}

// State returns the current state.
func (s *Sequencer) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Err returns the validation or submit error attached to the current
// state, if any.
func (s *Sequencer) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Order returns the created order after a successful submit, else nil.
func (s *Sequencer) Order() *order.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.order == nil {
		return nil
	}
	o := *s.order
	return &o
}

// Submit attempts the checkout. A blank address never reaches the wire: the
// flow stays in AwaitingAddress with ErrAddressRequired set. Otherwise
// exactly one checkout call is issued; on success the flow is Succeeded, on
// failure it returns to AwaitingAddress with the error attached.
func (s *Sequencer) Submit(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateAwaitingAddress {
		err := ErrNotAwaiting
		s.mu.Unlock()
		return err
	}
	if strings.TrimSpace(s.address) == "" {
		s.lastErr = ErrAddressRequired
		s.mu.Unlock()
		return ErrAddressRequired
	}
	s.state = StateSubmitting
	s.lastErr = nil
	address := s.address
	s.mu.Unlock()

	o, err := s.submit(ctx, address)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		// Recoverable: back to address entry, address preserved.
		s.state = StateAwaitingAddress
		s.lastErr = err
		return err
	}
	s.state = StateSucceeded
	s.order = &o
	return nil
}
