package main

import (
	"github.com/shopspring/decimal"

	"github.com/mercadito/storefront/internal/domain/cart"
)

func decimalFromInt(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}

// quantityOf finds the current quantity of a product line in the cart view.
func quantityOf(items []cart.Item, productID string) (int, bool) {
	for _, item := range items {
		if item.Product != nil && item.Product.ID == productID {
			return item.Quantity, true
		}
	}
	return 0, false
}
