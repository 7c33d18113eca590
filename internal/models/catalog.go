package models

// Product is a catalog entry. Immutable after seed/load.
type Product struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Brand    string   `json:"brand"`
	Price    int64    `json:"price"`
	Category string   `json:"category"`
	SellerID string   `json:"sellerId"`
	Colors   []string `json:"colors,omitempty"`
	Sizes    []string `json:"sizes,omitempty"`
	Badge    string   `json:"badge,omitempty"`
}

// CatalogSeller is the public catalog view of a seller.
type CatalogSeller struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	City string `json:"city"`
}
