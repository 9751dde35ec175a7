package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mercadito/storefront/internal/app"
)

func newOrdersCmd(a *app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "List your order history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			orders, err := a.Orders.Get(cmd.Context())
			if err != nil {
				return err
			}
			if len(orders) == 0 {
				fmt.Println("No orders yet.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tDATE\tSTATUS\tTOTAL\tITEMS")
			for _, o := range orders {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n",
					o.ID, o.CreatedAt.Format("2006-01-02"), o.Status, o.TotalAmount.StringFixed(2), len(o.Items))
			}
			return w.Flush()
		},
	}
	cmd.AddCommand(newOrderShowCmd(a))
	return cmd
}

func newOrderShowCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <order-id>",
		Short: "Show one order in detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := a.API.OrderByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Order %s — %s — total %s\n", o.ID, o.Status, o.TotalAmount.StringFixed(2))
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "PRODUCT\tQTY\tPAID EACH\tLINE TOTAL")
			for _, item := range o.Items {
				name := "(deleted product)"
				if item.Product != nil {
					name = item.Product.Name
				}
				fmt.Fprintf(w, "%s\t%d\t%s\t%s\n",
					name, item.Quantity, item.PriceAtPurchase.StringFixed(2), item.LineTotal().StringFixed(2))
			}
			return w.Flush()
		},
	}
}
