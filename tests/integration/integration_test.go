package integration

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mercadito/storefront/internal/app"
	"github.com/mercadito/storefront/internal/domain/cart"
	"github.com/mercadito/storefront/internal/notify"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

// harness is a fully wired client talking to the in-process fake backend.
type harness struct {
	App      *app.App
	Backend  *backend
	Notified *notify.Recorder

	confirmAnswer bool
}

// newHarness starts the fake backend and builds the client against it. The
// confirmer answer can be flipped per test through h.confirmAnswer.
func newHarness(t *testing.T, b *backend) *harness {
	t.Helper()

	srv := httptest.NewServer(b.handler())
	t.Cleanup(srv.Close)

	h := &harness{Backend: b, Notified: &notify.Recorder{}, confirmAnswer: true}

	cfg := &app.Config{
		BaseURL:     srv.URL + "/api",
		SessionFile: filepath.Join(t.TempDir(), "session.json"),
		UserAgent:   "storefront-test/1.0",
		HTTPTimeout: 5 * time.Second,
	}

	confirm := cart.ConfirmerFunc(func(context.Context, string) (bool, error) {
		return h.confirmAnswer, nil
	})

	a, err := app.New(cfg, zap.NewNop(), confirm, h.Notified)
	require.NoError(t, err)
	h.App = a
	return h
}

// login authenticates against the fake backend and persists the session,
// the same way the login command does.
func (h *harness) login(t *testing.T) {
	t.Helper()
	u, err := h.App.API.Login(t.Context(), "tester@example.com", "secret")
	require.NoError(t, err)
	require.NoError(t, h.App.Session.Login(u))
}
