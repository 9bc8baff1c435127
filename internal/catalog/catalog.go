// Package catalog holds the storefront's static product table.
package catalog

import "github.com/Tarun1516/yaakai/domain"

// Catalog is an in-process, read-only product table. The storefront
// currently sells a single product; prices are in the smallest currency
// unit (₹).
type Catalog struct {
	products []domain.Product
	byID     map[string]domain.Product
}

// New returns the catalog with the current product lineup.
func New() *Catalog {
	products := []domain.Product{
		{
			ID:          "checkblock",
			Name:        "CheckBlock",
			Description: "VPN detector and blocker",
			Price:       13999,
		},
	}

	byID := make(map[string]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	return &Catalog{products: products, byID: byID}
}

// Get looks a product up by ID.
func (c *Catalog) Get(id string) (domain.Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// List returns all products in display order.
func (c *Catalog) List() []domain.Product {
	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out
}
