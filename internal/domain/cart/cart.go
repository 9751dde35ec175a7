package cart

import (
	"github.com/shopspring/decimal"

	"github.com/mercadito/storefront/internal/domain/product"
)

// Cart is the server-held shopping cart for the authenticated user. The
// backend is the only owner of persisted quantities; this type is always a
// value the server actually produced, never a locally patched guess.
type Cart struct {
	ID    string `json:"_id"`
	User  string `json:"user"`
	Items []Item `json:"items"`
}

// Item is a single cart line. Product is a pointer because the referenced
// product may have been deleted server-side after the line was created;
// that is an expected state, not an error. Lines with a nil product are
// excluded from every derived number but never deleted by the client.
type Item struct {
	ID       string           `json:"_id"`
	Product  *product.Product `json:"product"`
	Quantity int              `json:"quantity"`
}

// View is the displayable state derived from a Cart. It is recomputed from
// scratch on every cart value rather than patched incrementally, so it can
// never drift from the cart it was derived from.
type View struct {
	ValidItems []Item
	Subtotal   decimal.Decimal
	TotalItems int
	IsEmpty    bool
}

// Reconcile derives the View for a cart: lines whose product still resolves,
// the subtotal at current prices, the total unit count, and emptiness.
// A cart whose only lines reference deleted products is reported empty.
func Reconcile(c Cart) View {
	valid := make([]Item, 0, len(c.Items))
	subtotal := decimal.Zero
	count := 0

	for _, item := range c.Items {
		if item.Product == nil {
			continue
		}
		valid = append(valid, item)
		subtotal = subtotal.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		count += item.Quantity
	}

	return View{
		ValidItems: valid,
		Subtotal:   subtotal,
		TotalItems: count,
		IsEmpty:    len(valid) == 0,
	}
}
