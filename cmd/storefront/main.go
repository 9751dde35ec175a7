// Command storefront is the terminal client for the storefront backend:
// browse the catalog, manage the cart, check out, inspect orders, and
// manage blog posts.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mercadito/storefront/internal/app"
	"github.com/mercadito/storefront/internal/domain/cart"
	"github.com/mercadito/storefront/internal/notify"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := app.LoadConfig()
	if err != nil {
		return err
	}

	lg, err := newLogger()
	if err != nil {
		return err
	}
	defer func() { _ = lg.Sync() }()

	a, err := app.New(cfg, lg, stdinConfirmer{}, notify.Multi{
		&printNotifier{},
		notify.NewLog(lg),
	})
	if err != nil {
		return err
	}

	ctx := zctx.Base(context.Background(), lg)
	return newRootCmd(a).ExecuteContext(ctx)
}

// newLogger builds the CLI logger: human-readable, stderr only, and quiet
// unless STOREFRONT_DEBUG is set.
func newLogger() (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if os.Getenv("STOREFRONT_DEBUG") != "" {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

// stdinConfirmer approves destructive actions with a y/N prompt on the
// terminal. Anything but an explicit yes declines.
type stdinConfirmer struct{}

func (stdinConfirmer) Confirm(_ context.Context, prompt string) (bool, error) {
	fmt.Printf("%s [y/N]: ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false, err
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

var _ cart.Confirmer = stdinConfirmer{}

// printNotifier renders transient notifications on stdout, the CLI stand-in
// for a snackbar.
type printNotifier struct{}

func (*printNotifier) Success(msg string) { fmt.Println("✔", msg) }
func (*printNotifier) Info(msg string)    { fmt.Println("•", msg) }
func (*printNotifier) Error(msg string)   { fmt.Println("✘", msg) }
