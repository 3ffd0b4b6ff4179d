// internal/domain/cart/entity.go
package cart

import (
	"github.com/shopspring/decimal"
	"github.com/your-org/storefront-gateway/internal/infrastructure/backend"
)

// State tracks the cart view lifecycle. Every mutation passes through
// Loading again because the cart is refetched rather than merged locally.
type State int

// Cart view states
const (
	StateUninitialized State = iota
	StateLoading
	StateReady
)

// String returns a human-readable name for the state
func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	default:
		return "uninitialized"
	}
}

// Item is one cart line item. Two items with the same material but different
// variant selections are distinct lines.
type Item struct {
	ID              string          `json:"id"`
	MaterialID      string          `json:"materialId"`
	Title           string          `json:"title"`
	ImageURL        string          `json:"imageUrl"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	Quantity        int             `json:"quantity"`
	SelectedSize    string          `json:"selectedSize,omitempty"`
	SelectedColor   string          `json:"selectedColor,omitempty"`
	SelectedStorage string          `json:"selectedStorage,omitempty"`
}

// Key identifies a line item: material plus the full variant selection
type Key struct {
	MaterialID string
	Size       string
	Color      string
	Storage    string
}

// Key returns the line item identity key
func (i Item) Key() Key {
	return Key{
		MaterialID: i.MaterialID,
		Size:       i.SelectedSize,
		Color:      i.SelectedColor,
		Storage:    i.SelectedStorage,
	}
}

// Variant returns the wire form of the item's variant selection
func (i Item) Variant() backend.VariantSelection {
	return backend.VariantSelection{
		SelectedSize:    i.SelectedSize,
		SelectedColor:   i.SelectedColor,
		SelectedStorage: i.SelectedStorage,
	}
}

// itemFromWire flattens the backend's nested cart item shape
func itemFromWire(w backend.CartItem) Item {
	return Item{
		ID:              w.ID,
		MaterialID:      w.Material.ID,
		Title:           w.Material.Title,
		ImageURL:        w.Material.ImageURL,
		UnitPrice:       w.Material.Price,
		Quantity:        w.Quantity,
		SelectedSize:    w.SelectedSize,
		SelectedColor:   w.SelectedColor,
		SelectedStorage: w.SelectedStorage,
	}
}
