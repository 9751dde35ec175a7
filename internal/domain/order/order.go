package order

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mercadito/storefront/internal/domain/product"
)

// Status enumerates the fulfilment states an order moves through server-side.
type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
)

// Order is a completed purchase as reported by the backend.
type Order struct {
	ID              string          `json:"_id"`
	Items           []Item          `json:"items"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	ShippingAddress string          `json:"shippingAddress,omitempty"`
	Status          Status          `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// Item is a single order line. PriceAtPurchase snapshots the unit price at
// the moment the order was placed; the product reference may later resolve
// to a deleted product, so it is optional here just as in the cart.
type Item struct {
	ID              string           `json:"_id"`
	Product         *product.Product `json:"product"`
	Quantity        int              `json:"quantity"`
	PriceAtPurchase decimal.Decimal  `json:"priceAtPurchase"`
}

// LineTotal is the price paid for this line: snapshot price times quantity.
func (i Item) LineTotal() decimal.Decimal {
	return i.PriceAtPurchase.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
