package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
)

// backendProduct is a catalog entry held by the fake backend.
type backendProduct struct {
	ID       string
	Name     string
	Price    decimal.Decimal
	Category string
	Stock    int
}

// backendLine is a cart line: product id and quantity. The product may be
// deleted from the catalog while the line still exists.
type backendLine struct {
	ID        string
	ProductID string
	Quantity  int
}

// backend is an in-memory stand-in for the storefront REST API. It owns the
// persisted cart, serializes all writes, and mimics the real wire format:
// session cookie auth and `{ status, message, data }` envelopes.
type backend struct {
	mu       sync.Mutex
	products map[string]backendProduct
	lines    []backendLine
	orders   []map[string]any

	nextLine  int
	nextOrder int

	sessionRevoked bool

	// Counters observed by tests.
	CartFetches   int
	CheckoutCalls int
}

func newBackend(products ...backendProduct) *backend {
	b := &backend{products: make(map[string]backendProduct)}
	for _, p := range products {
		b.products[p.ID] = p
	}
	return b
}

// RevokeSession makes every authenticated route answer 401, as an expired
// server-side session would.
func (b *backend) RevokeSession() {
	b.mu.Lock()
	b.sessionRevoked = true
	b.mu.Unlock()
}

// DeleteProduct removes a product from the catalog, leaving cart lines that
// reference it dangling.
func (b *backend) DeleteProduct(id string) {
	b.mu.Lock()
	delete(b.products, id)
	b.mu.Unlock()
}

func (b *backend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/users/login", b.handleLogin)
	mux.HandleFunc("GET /api/cart", b.authed(b.handleFetchCart))
	mux.HandleFunc("POST /api/cart/add", b.authed(b.handleAddItem))
	mux.HandleFunc("DELETE /api/cart/{productID}", b.authed(b.handleRemoveItem))
	mux.HandleFunc("POST /api/cart/checkout", b.authed(b.handleCheckout))
	mux.HandleFunc("GET /api/orders/myorders", b.authed(b.handleMyOrders))
	mux.HandleFunc("GET /api/products", b.handleProducts)
	mux.HandleFunc("GET /api/kits", b.handleKits)
	return mux
}

func (b *backend) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Password == "" {
		writeFail(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	http.SetCookie(w, &http.Cookie{Name: "jwt", Value: "session-token", Path: "/"})
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"user": map[string]any{
			"_id":   "u1",
			"name":  "Tester",
			"email": req.Email,
			"role":  "user",
		},
	})
}

func (b *backend) authed(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		revoked := b.sessionRevoked
		b.mu.Unlock()

		cookie, err := r.Cookie("jwt")
		if err != nil || cookie.Value != "session-token" || revoked {
			writeFail(w, http.StatusUnauthorized, "Not authorized")
			return
		}
		next(w, r)
	}
}

func (b *backend) handleFetchCart(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.CartFetches++

	items := make([]map[string]any, 0, len(b.lines))
	for _, line := range b.lines {
		item := map[string]any{
			"_id":      line.ID,
			"quantity": line.Quantity,
		}
		if p, ok := b.products[line.ProductID]; ok {
			item["product"] = productJSON(p)
		} else {
			item["product"] = nil
		}
		items = append(items, item)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"data": map[string]any{
			"cart": map[string]any{"_id": "cart1", "user": "u1", "items": items},
		},
	})
}

func (b *backend) handleAddItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFail(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.products[req.ProductID]; !ok {
		writeFail(w, http.StatusNotFound, "Product not found")
		return
	}

	for i := range b.lines {
		if b.lines[i].ProductID == req.ProductID {
			b.lines[i].Quantity += req.Quantity
			if b.lines[i].Quantity <= 0 {
				b.lines = append(b.lines[:i], b.lines[i+1:]...)
			}
			writeJSON(w, http.StatusOK, map[string]any{"status": "success"})
			return
		}
	}
	if req.Quantity > 0 {
		b.nextLine++
		b.lines = append(b.lines, backendLine{
			ID:        fmt.Sprintf("line%d", b.nextLine),
			ProductID: req.ProductID,
			Quantity:  req.Quantity,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "success"})
}

func (b *backend) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	productID := r.PathValue("productID")

	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range b.lines {
		if b.lines[i].ProductID == productID {
			b.lines = append(b.lines[:i], b.lines[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]any{"status": "success"})
			return
		}
	}
	writeFail(w, http.StatusNotFound, "Item not found in cart")
}

func (b *backend) handleCheckout(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ShippingAddress string `json:"shippingAddress"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.ShippingAddress) == "" {
		writeFail(w, http.StatusBadRequest, "Shipping address is required")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.CheckoutCalls++

	if len(b.lines) == 0 {
		writeFail(w, http.StatusBadRequest, "Cart is empty")
		return
	}

	total := decimal.Zero
	items := make([]map[string]any, 0, len(b.lines))
	for _, line := range b.lines {
		p, ok := b.products[line.ProductID]
		if !ok {
			continue
		}
		lineTotal := p.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		total = total.Add(lineTotal)
		items = append(items, map[string]any{
			"_id":             "ol-" + line.ID,
			"product":         productJSON(p),
			"quantity":        line.Quantity,
			"priceAtPurchase": p.Price,
		})
	}

	b.nextOrder++
	order := map[string]any{
		"_id":             fmt.Sprintf("order%d", b.nextOrder),
		"items":           items,
		"totalAmount":     total,
		"shippingAddress": req.ShippingAddress,
		"status":          "pending",
		"createdAt":       "2026-08-31T12:00:00Z",
	}
	b.orders = append(b.orders, order)
	b.lines = nil

	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"data":   map[string]any{"order": order},
	})
}

func (b *backend) handleMyOrders(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"data":   map[string]any{"orders": b.orders},
	})
}

func (b *backend) handleProducts(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	products := make([]map[string]any, 0, len(b.products))
	for _, p := range b.products {
		products = append(products, productJSON(p))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"data":   map[string]any{"products": products},
	})
}

func (b *backend) handleKits(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"data":   map[string]any{"kits": []any{}},
	})
}

func productJSON(p backendProduct) map[string]any {
	return map[string]any{
		"_id":      p.ID,
		"name":     p.Name,
		"price":    p.Price,
		"category": p.Category,
		"stock":    p.Stock,
		"image":    p.ID + ".jpg",
	}
}

func writeJSON(w http.ResponseWriter, status int, body map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeFail(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"status": "fail", "message": message})
}
