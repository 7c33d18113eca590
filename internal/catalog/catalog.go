package catalog

import "github.com/sello-market/sello-backend/internal/models"

// Provider is a read-only catalog capability injected into request
// handlers. Constructed once at startup; never mutated afterwards.
type Provider interface {
	ProductByID(id string) (*models.Product, bool)
	Products() []models.Product
	Sellers() []models.CatalogSeller
}

// StaticCatalog serves a fixed product/seller set loaded at startup.
type StaticCatalog struct {
	products map[string]models.Product
	ordered  []models.Product
	sellers  []models.CatalogSeller
}

var _ Provider = (*StaticCatalog)(nil)

// NewStaticCatalog builds a catalog from the given products and sellers.
func NewStaticCatalog(products []models.Product, sellers []models.CatalogSeller) *StaticCatalog {
	byID := make(map[string]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return &StaticCatalog{
		products: byID,
		ordered:  products,
		sellers:  sellers,
	}
}

// NewSeedCatalog builds the demo catalog shipped with the service.
func NewSeedCatalog() *StaticCatalog {
	return NewStaticCatalog(seedProducts(), seedSellers())
}

// ProductByID resolves a product by id.
func (c *StaticCatalog) ProductByID(id string) (*models.Product, bool) {
	p, ok := c.products[id]
	if !ok {
		return nil, false
	}
	return &p, true
}

// Products returns all products in seed order.
func (c *StaticCatalog) Products() []models.Product {
	out := make([]models.Product, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// Sellers returns the public seller list.
func (c *StaticCatalog) Sellers() []models.CatalogSeller {
	out := make([]models.CatalogSeller, len(c.sellers))
	copy(out, c.sellers)
	return out
}
