package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/go-faster/errors"
	"github.com/spf13/cobra"

	"github.com/mercadito/storefront/internal/app"
	"github.com/mercadito/storefront/internal/domain/checkout"
)

func newCartCmd(a *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Show and modify the shopping cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return showCart(cmd, a)
		},
	}
	cmd.AddCommand(
		newCartAddCmd(a),
		newCartIncCmd(a),
		newCartDecCmd(a),
		newCartRemoveCmd(a),
	)
	return cmd
}

func showCart(cmd *cobra.Command, a *app.App) error {
	if !a.Session.IsAuthenticated() {
		fmt.Println("Not logged in; the cart is not loaded.")
		return nil
	}

	view, err := a.Cart.View(cmd.Context())
	if err != nil {
		return errors.Wrap(err, "load cart")
	}
	if view.IsEmpty {
		fmt.Println("Your cart is empty.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PRODUCT\tNAME\tPRICE\tQTY\tLINE TOTAL")
	for _, item := range view.ValidItems {
		p := item.Product
		line := p.Price.Mul(decimalFromInt(item.Quantity))
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", p.ID, p.Name, p.Price.StringFixed(2), item.Quantity, line.StringFixed(2))
	}
	_ = w.Flush()
	fmt.Printf("Items: %d  Subtotal: %s\n", view.TotalItems, view.Subtotal.StringFixed(2))
	return nil
}

func newCartAddCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <product-id> [quantity]",
		Short: "Add a product to the cart",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			qty := 1
			if len(args) == 2 {
				n, err := strconv.Atoi(args[1])
				if err != nil || n < 1 {
					return errors.Errorf("invalid quantity %q", args[1])
				}
				qty = n
			}
			for range qty {
				if err := a.Cart.Increment(cmd.Context(), args[0]); err != nil {
					return err
				}
			}
			return showCart(cmd, a)
		},
	}
}

func newCartIncCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "inc <product-id>",
		Short: "Increase a line's quantity by one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.Cart.Increment(cmd.Context(), args[0]); err != nil {
				return err
			}
			return showCart(cmd, a)
		},
	}
}

func newCartDecCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "dec <product-id>",
		Short: "Decrease a line's quantity by one (removes the line at one unit, after confirmation)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := a.Cart.View(cmd.Context())
			if err != nil {
				return errors.Wrap(err, "load cart")
			}
			qty, ok := quantityOf(view.ValidItems, args[0])
			if !ok {
				return errors.Errorf("product %q is not in the cart", args[0])
			}
			if err := a.Cart.Decrement(cmd.Context(), args[0], qty); err != nil {
				return err
			}
			return showCart(cmd, a)
		},
	}
}

func newCartRemoveCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <product-id>",
		Short: "Remove a line from the cart, after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.Cart.Remove(cmd.Context(), args[0]); err != nil {
				return err
			}
			return showCart(cmd, a)
		},
	}
}

func newCheckoutCmd(a *app.App) *cobra.Command {
	var address string
	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Submit the cart as an order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			seq := a.NewCheckout()
			seq.Open()
			seq.SetAddress(address)

			if err := seq.Submit(cmd.Context()); err != nil {
				if errors.Is(err, checkout.ErrAddressRequired) {
					return errors.New("a shipping address is required: pass --address")
				}
				// Recoverable failure: the flow is back at address
				// entry and a re-run retries with the same address.
				return err
			}

			o := seq.Order()
			fmt.Println("Thank you for your purchase!")
			fmt.Printf("Order %s placed, total %s.\n", o.ID, o.TotalAmount.StringFixed(2))
			fmt.Println("You will receive a confirmation email shortly.")
			return nil
		},
	}
	cmd.Flags().StringVar(&address, "address", "", "shipping address for the order")
	return cmd
}
