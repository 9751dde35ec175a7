package api

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/mercadito/storefront/internal/domain/product"
)

// ListProducts retrieves the full product catalog.
func (c *Client) ListProducts(ctx context.Context) ([]product.Product, error) {
	var out struct {
		Products []product.Product `json:"products"`
	}
	if err := c.do(ctx, http.MethodGet, "/products", nil, &out); err != nil {
		return nil, errors.Wrap(err, "list products")
	}
	return out.Products, nil
}

// ListKits retrieves the curated product kits.
func (c *Client) ListKits(ctx context.Context) ([]product.Product, error) {
	var out struct {
		Kits []product.Product `json:"kits"`
	}
	if err := c.do(ctx, http.MethodGet, "/kits", nil, &out); err != nil {
		return nil, errors.Wrap(err, "list kits")
	}
	return out.Kits, nil
}

// CreateProductParams is the input for CreateProduct. Image is streamed as
// the productImage multipart field.
type CreateProductParams struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	Category    string
	ImageName   string
	Image       io.Reader
}

// CreateProduct publishes a new product with its image. Moderator-only
// server-side; the backend answers 401/403 otherwise.
func (c *Client) CreateProduct(ctx context.Context, p CreateProductParams) (product.Product, error) {
	fields := map[string]string{
		"name":        p.Name,
		"description": p.Description,
		"price":       p.Price.String(),
		"stock":       strconv.Itoa(p.Stock),
		"category":    p.Category,
	}
	var files []filePart
	if p.Image != nil {
		files = append(files, filePart{Field: "productImage", Filename: p.ImageName, Reader: p.Image})
	}

	var out struct {
		Product product.Product `json:"product"`
	}
	if err := c.doMultipart(ctx, http.MethodPost, "/products", fields, files, &out); err != nil {
		return product.Product{}, errors.Wrap(err, "create product")
	}
	return out.Product, nil
}
