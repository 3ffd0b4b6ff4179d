// internal/domain/cart/summary.go
package cart

import "github.com/shopspring/decimal"

// Summary is the checkout arithmetic for a cart: subtotal, loyalty discount,
// grand total.
type Summary struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Total    decimal.Decimal `json:"total"`
}

// ComputeSummary derives the order summary from the given items. Pure and
// side-effect free.
//
// The loyalty discount is all-or-nothing: when enabled, the full available
// balance applies at one point per currency unit, capped at the subtotal so
// the total never goes negative.
func ComputeSummary(items []Item, loyaltyPoints int64, useLoyalty bool) Summary {
	subtotal := decimal.Zero
	for _, item := range items {
		line := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(line)
	}

	discount := decimal.Zero
	if useLoyalty && loyaltyPoints > 0 {
		discount = decimal.NewFromInt(loyaltyPoints)
		if discount.GreaterThan(subtotal) {
			discount = subtotal
		}
	}

	return Summary{
		Subtotal: subtotal,
		Discount: discount,
		Total:    subtotal.Sub(discount),
	}
}
