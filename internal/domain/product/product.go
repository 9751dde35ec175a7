package product

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Product represents a catalog item available for purchase. Products are
// owned by the backend and read-only on this side of the wire.
type Product struct {
	ID          string          `json:"_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
}

// ImageURL resolves the stored image file name against the asset base URL.
// The backend stores bare file names and serves them from
// <base>/uploads/products/<name>.
func (p Product) ImageURL(base string) string {
	if p.Image == "" || base == "" {
		return p.Image
	}
	return strings.TrimSuffix(base, "/") + "/uploads/products/" + p.Image
}

// InStock reports whether the product can currently be added to a cart.
func (p Product) InStock() bool {
	return p.Stock > 0
}
