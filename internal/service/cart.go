package service

import (
	"github.com/sello-market/sello-backend/internal/apperrors"
	"github.com/sello-market/sello-backend/internal/catalog"
	"github.com/sello-market/sello-backend/internal/models"
)

// CartSummary is a normalized cart: resolved line items with snapshotted
// title/price/seller, and the integer total in whole rubles.
type CartSummary struct {
	Items []models.OrderItem
	Total int64
}

// SummarizeCart resolves raw cart entries against the catalog. Entries
// referencing unknown products are silently dropped: partial carts are
// tolerated. Quantity defaults to 1 when missing or non-positive.
//
// Returns ErrEmptyCart when the input is empty and ErrNoValidItems when
// every entry failed resolution; callers need to distinguish "you sent
// nothing" from "you sent garbage".
func SummarizeCart(cat catalog.Provider, cart []models.CartEntry) (*CartSummary, error) {
	if len(cart) == 0 {
		return nil, apperrors.ErrEmptyCart
	}

	items := make([]models.OrderItem, 0, len(cart))
	var total int64

	for _, entry := range cart {
		product, ok := cat.ProductByID(entry.ID)
		if !ok {
			continue
		}

		qty := entry.Qty
		if qty <= 0 {
			qty = 1
		}

		items = append(items, models.OrderItem{
			ProductID: product.ID,
			Title:     product.Title,
			Price:     product.Price,
			Qty:       qty,
			SellerID:  product.SellerID,
		})
		total += int64(qty) * product.Price
	}

	if len(items) == 0 {
		return nil, apperrors.ErrNoValidItems
	}

	return &CartSummary{Items: items, Total: total}, nil
}
