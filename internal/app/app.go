// Package app wires the storefront client: configuration, session store,
// instrumented HTTP transport, API client, result caches, and the cart and
// checkout services.
package app

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-faster/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/mercadito/storefront/internal/api"
	"github.com/mercadito/storefront/internal/domain/cart"
	"github.com/mercadito/storefront/internal/domain/checkout"
	"github.com/mercadito/storefront/internal/domain/order"
	"github.com/mercadito/storefront/internal/notify"
	"github.com/mercadito/storefront/internal/query"
	"github.com/mercadito/storefront/internal/session"
	"github.com/mercadito/storefront/pkg/httptransport"
)

// App is the assembled client. It is the single wiring point: everything
// downstream receives its collaborators from here.
type App struct {
	Config   *Config
	Log      *zap.Logger
	Session  *session.Store
	API      *api.Client
	Carts    *query.Cache[cart.Cart]
	Orders   *query.Cache[[]order.Order]
	Cart     *cart.Service
	Notifier notify.Notifier
}

// New builds the client. The confirmer is injected by the caller so the
// surrounding UI decides how destructive actions are approved.
func New(cfg *Config, lg *zap.Logger, confirm cart.Confirmer, notifier notify.Notifier) (*App, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "parse base URL")
	}

	sess, err := session.New(cfg.SessionFile, base)
	if err != nil {
		return nil, errors.Wrap(err, "open session store")
	}

	// Outbound transport: request IDs are stamped first so the logging
	// below sees them, then the log line, the expired-session hook, the
	// user agent, and otel instrumentation innermost. A 401 on any
	// endpoint except login itself tears the session down, so stale
	// cookies cannot cause retry loops against the backend.
	transport := httptransport.Wrap(
		otelhttp.NewTransport(http.DefaultTransport),
		httptransport.RequestID(),
		httptransport.LogRequests(),
		httptransport.OnUnauthorized(isLoginRequest, func() {
			_ = sess.Clear()
		}),
		httptransport.UserAgent(cfg.UserAgent),
	)

	httpClient := &http.Client{
		Timeout:   cfg.HTTPTimeout,
		Jar:       sess.Jar(),
		Transport: transport,
	}
	client := api.New(base, httpClient)

	// Per-session result caches. Both are keyed to the current session:
	// clearing the session drops them, so a cart is never reused across
	// users. The cart cache is disabled entirely while logged out.
	carts := query.NewCache(client.FetchCart,
		query.WithEnabled[cart.Cart](sess.IsAuthenticated),
		query.WithStaleTime[cart.Cart](cfg.Cache.CartStaleTime),
	)
	orders := query.NewCache(client.MyOrders,
		query.WithEnabled[[]order.Order](sess.IsAuthenticated),
		query.WithStaleTime[[]order.Order](cfg.Cache.OrdersStaleTime),
	)
	sess.OnInvalidate(carts.Invalidate, orders.Invalidate)

	cartSvc := cart.NewService(client, carts, confirm, notifier,
		cart.WithOrdersInvalidation(orders.Invalidate),
	)

	return &App{
		Config:   cfg,
		Log:      lg,
		Session:  sess,
		API:      client,
		Carts:    carts,
		Orders:   orders,
		Cart:     cartSvc,
		Notifier: notifier,
	}, nil
}

// NewCheckout starts a checkout flow backed by the cart service.
func (a *App) NewCheckout() *checkout.Sequencer {
	return checkout.New(a.Cart.Checkout)
}

// isLoginRequest exempts the login endpoint from the global 401 hook: a
// wrong password must not nuke an unrelated stored session.
func isLoginRequest(r *http.Request) bool {
	return strings.HasSuffix(r.URL.Path, "/users/login")
}
