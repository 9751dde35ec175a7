package main

import (
	"github.com/spf13/cobra"

	"github.com/mercadito/storefront/internal/app"
)

func newRootCmd(a *app.App) *cobra.Command {
	root := &cobra.Command{
		Use:           "storefront",
		Short:         "Terminal client for the storefront backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newLoginCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newProductsCmd(a),
		newKitsCmd(a),
		newCatalogCmd(a),
		newCartCmd(a),
		newCheckoutCmd(a),
		newOrdersCmd(a),
		newBlogCmd(a),
	)
	return root
}
