package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mercadito/storefront/internal/app"
	"github.com/mercadito/storefront/internal/domain/product"
)

func newProductsCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "products",
		Short: "List the product catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			products, err := a.API.ListProducts(cmd.Context())
			if err != nil {
				return err
			}
			printProducts("Products", products)
			return nil
		},
	}
}

func newKitsCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "kits",
		Short: "List the curated kits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			kits, err := a.API.ListKits(cmd.Context())
			if err != nil {
				return err
			}
			printProducts("Kits", kits)
			return nil
		},
	}
}

func newCatalogCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List products and kits together",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var products, kits []product.Product

			// Both listings are independent reads, fetch them in parallel.
			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				var err error
				products, err = a.API.ListProducts(ctx)
				return err
			})
			g.Go(func() error {
				var err error
				kits, err = a.API.ListKits(ctx)
				return err
			})
			if err := g.Wait(); err != nil {
				return err
			}

			printProducts("Products", products)
			fmt.Println()
			printProducts("Kits", kits)
			return nil
		},
	}
}

func printProducts(title string, products []product.Product) {
	fmt.Printf("%s (%d)\n", title, len(products))
	if len(products) == 0 {
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPRICE\tSTOCK")
	for _, p := range products {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n", p.ID, p.Name, p.Category, p.Price.StringFixed(2), p.Stock)
	}
	_ = w.Flush()
}
