package service

import (
	"testing"

	"github.com/sello-market/sello-backend/internal/apperrors"
	"github.com/sello-market/sello-backend/internal/catalog"
	"github.com/sello-market/sello-backend/internal/models"
)

func testCatalog() catalog.Provider {
	return catalog.NewStaticCatalog(
		[]models.Product{
			{ID: "p-01", Title: "Sneakers", Price: 12990, SellerID: "s-01"},
			{ID: "p-02", Title: "Parka", Price: 24990, SellerID: "s-02"},
			{ID: "p-03", Title: "Cap", Price: 2990, SellerID: "s-02"},
		},
		[]models.CatalogSeller{
			{ID: "s-01", Name: "Store One", City: "Москва"},
			{ID: "s-02", Name: "Store Two", City: "Казань"},
		},
	)
}

func TestSummarizeCart(t *testing.T) {
	tests := []struct {
		name      string
		cart      []models.CartEntry
		wantTotal int64
		wantItems int
		wantErr   error
	}{
		{
			name:      "single item",
			cart:      []models.CartEntry{{ID: "p-01", Qty: 1}},
			wantTotal: 12990,
			wantItems: 1,
		},
		{
			name:      "quantities multiply",
			cart:      []models.CartEntry{{ID: "p-01", Qty: 2}, {ID: "p-03", Qty: 3}},
			wantTotal: 2*12990 + 3*2990,
			wantItems: 2,
		},
		{
			name:      "missing qty defaults to one",
			cart:      []models.CartEntry{{ID: "p-02"}},
			wantTotal: 24990,
			wantItems: 1,
		},
		{
			name:      "negative qty defaults to one",
			cart:      []models.CartEntry{{ID: "p-02", Qty: -4}},
			wantTotal: 24990,
			wantItems: 1,
		},
		{
			name:      "unknown ids are dropped silently",
			cart:      []models.CartEntry{{ID: "p-01", Qty: 1}, {ID: "nope", Qty: 5}},
			wantTotal: 12990,
			wantItems: 1,
		},
		{
			name:    "empty cart",
			cart:    []models.CartEntry{},
			wantErr: apperrors.ErrEmptyCart,
		},
		{
			name:    "nil cart",
			cart:    nil,
			wantErr: apperrors.ErrEmptyCart,
		},
		{
			name:    "only unknown ids",
			cart:    []models.CartEntry{{ID: "ghost-1", Qty: 1}, {ID: "ghost-2", Qty: 2}},
			wantErr: apperrors.ErrNoValidItems,
		},
	}

	cat := testCatalog()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary, err := SummarizeCart(cat, tt.cart)

			if tt.wantErr != nil {
				if err != tt.wantErr {
					t.Fatalf("SummarizeCart() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("SummarizeCart() unexpected error: %v", err)
			}

			if summary.Total != tt.wantTotal {
				t.Errorf("Total = %d, want %d", summary.Total, tt.wantTotal)
			}
			if len(summary.Items) != tt.wantItems {
				t.Errorf("len(Items) = %d, want %d", len(summary.Items), tt.wantItems)
			}
		})
	}
}

func TestSummarizeCartSnapshotsProductFields(t *testing.T) {
	summary, err := SummarizeCart(testCatalog(), []models.CartEntry{{ID: "p-01", Qty: 2}})
	if err != nil {
		t.Fatalf("SummarizeCart() unexpected error: %v", err)
	}

	item := summary.Items[0]
	if item.ProductID != "p-01" {
		t.Errorf("ProductID = %s, want p-01", item.ProductID)
	}
	if item.Title != "Sneakers" {
		t.Errorf("Title = %s, want Sneakers", item.Title)
	}
	if item.Price != 12990 {
		t.Errorf("Price = %d, want 12990", item.Price)
	}
	if item.SellerID != "s-01" {
		t.Errorf("SellerID = %s, want s-01", item.SellerID)
	}
	if item.Qty != 2 {
		t.Errorf("Qty = %d, want 2", item.Qty)
	}
}
