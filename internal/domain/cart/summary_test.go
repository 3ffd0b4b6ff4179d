package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func twoItemCart() []Item {
	return []Item{
		{MaterialID: "m1", Title: "Leather Sofa", UnitPrice: d(500), Quantity: 2},
		{MaterialID: "m2", Title: "Oak Table", UnitPrice: d(1200), Quantity: 1},
	}
}

func TestComputeSummary(t *testing.T) {
	tests := []struct {
		name         string
		items        []Item
		points       int64
		useLoyalty   bool
		wantSubtotal int64
		wantDiscount int64
		wantTotal    int64
	}{
		{
			name:         "two items with loyalty enabled",
			items:        twoItemCart(),
			points:       300,
			useLoyalty:   true,
			wantSubtotal: 2200,
			wantDiscount: 300,
			wantTotal:    1900,
		},
		{
			name:         "loyalty disabled",
			items:        twoItemCart(),
			points:       300,
			useLoyalty:   false,
			wantSubtotal: 2200,
			wantDiscount: 0,
			wantTotal:    2200,
		},
		{
			name:         "discount capped at subtotal",
			items:        []Item{{MaterialID: "m1", UnitPrice: d(150), Quantity: 1}},
			points:       9999,
			useLoyalty:   true,
			wantSubtotal: 150,
			wantDiscount: 150,
			wantTotal:    0,
		},
		{
			name:         "empty cart is all zeros",
			items:        nil,
			points:       500,
			useLoyalty:   true,
			wantSubtotal: 0,
			wantDiscount: 0,
			wantTotal:    0,
		},
		{
			name:         "zero points with toggle on",
			items:        twoItemCart(),
			points:       0,
			useLoyalty:   true,
			wantSubtotal: 2200,
			wantDiscount: 0,
			wantTotal:    2200,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeSummary(tt.items, tt.points, tt.useLoyalty)
			assert.True(t, got.Subtotal.Equal(d(tt.wantSubtotal)), "subtotal = %s", got.Subtotal)
			assert.True(t, got.Discount.Equal(d(tt.wantDiscount)), "discount = %s", got.Discount)
			assert.True(t, got.Total.Equal(d(tt.wantTotal)), "total = %s", got.Total)
			assert.False(t, got.Total.IsNegative(), "total must never be negative")
		})
	}
}

func TestComputeSummaryIsPure(t *testing.T) {
	items := twoItemCart()
	first := ComputeSummary(items, 300, true)
	second := ComputeSummary(items, 300, true)

	assert.True(t, first.Subtotal.Equal(second.Subtotal))
	assert.True(t, first.Discount.Equal(second.Discount))
	assert.True(t, first.Total.Equal(second.Total))

	// Inputs untouched
	assert.Equal(t, 2, items[0].Quantity)
	assert.True(t, items[0].UnitPrice.Equal(d(500)))
}

func TestComputeSummaryFractionalPrices(t *testing.T) {
	price, err := decimal.NewFromString("19.99")
	assert.NoError(t, err)

	got := ComputeSummary([]Item{{MaterialID: "m1", UnitPrice: price, Quantity: 3}}, 10, true)

	want, _ := decimal.NewFromString("59.97")
	assert.True(t, got.Subtotal.Equal(want))
	assert.True(t, got.Discount.Equal(d(10)))
	wantTotal, _ := decimal.NewFromString("49.97")
	assert.True(t, got.Total.Equal(wantTotal))
}
