package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeTotals(t *testing.T) {
	shirt, _ := NewReadyMadeItem("Cotton Shirt", 2, 500, "")
	fabric, _ := NewReadyMadeItem("Suit Fabric", 1, 800, "")

	tests := []struct {
		name             string
		items            []LineItem
		rate             float64
		expectedSubtotal float64
		expectedDiscount float64
		expectedTotal    float64
	}{
		{
			name:             "Default rate",
			items:            []LineItem{shirt, fabric},
			rate:             DefaultDiscountRatePercent,
			expectedSubtotal: 1800,
			expectedDiscount: 180,
			expectedTotal:    1620,
		},
		{
			name:             "Zero discount",
			items:            []LineItem{shirt},
			rate:             0,
			expectedSubtotal: 1000,
			expectedDiscount: 0,
			expectedTotal:    1000,
		},
		{
			name:             "No items",
			items:            nil,
			rate:             DefaultDiscountRatePercent,
			expectedSubtotal: 0,
			expectedDiscount: 0,
			expectedTotal:    0,
		},
		{
			name:             "Fractional discount rounds to the paisa",
			items:            []LineItem{mustItem(t, "Handkerchief", 1, 99.99)},
			rate:             7.5,
			expectedSubtotal: 99.99,
			expectedDiscount: 7.5, // 7.49925 rounds up
			expectedTotal:    92.49,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals := ComputeTotals(tt.items, tt.rate)
			assert.Equal(t, tt.expectedSubtotal, totals.Subtotal)
			assert.Equal(t, tt.expectedDiscount, totals.DiscountAmount)
			assert.Equal(t, tt.expectedTotal, totals.TotalAmount)
		})
	}
}

func mustItem(t *testing.T, description string, quantity int, unitPrice float64) LineItem {
	t.Helper()
	item, err := NewReadyMadeItem(description, quantity, unitPrice, "")
	if err != nil {
		t.Fatalf("failed to build item: %v", err)
	}
	return item
}

// TestTotalsInvariantAcrossMutations drives an order through a sequence of
// add/requantify/remove operations and checks the three totals invariants
// after every step.
func TestTotalsInvariantAcrossMutations(t *testing.T) {
	var items []LineItem

	checkInvariants := func() {
		totals := ComputeTotals(items, DefaultDiscountRatePercent)

		var sum float64
		for _, it := range items {
			assert.InDelta(t, float64(it.Quantity)*it.UnitPrice, it.TotalPrice, 0.005)
			sum += it.TotalPrice
		}
		assert.InDelta(t, sum, totals.Subtotal, 0.005)
		assert.InDelta(t, totals.Subtotal*DefaultDiscountRatePercent/100, totals.DiscountAmount, 0.005)
		assert.InDelta(t, totals.Subtotal-totals.DiscountAmount, totals.TotalAmount, 0.005)
	}

	a := mustItem(t, "Shirt Fabric", 2, 450)
	items = append(items, a)
	checkInvariants()

	b := mustItem(t, "Buttons", 10, 5.5)
	items = append(items, b)
	checkInvariants()

	requantified, err := items[0].WithQuantity(4)
	assert.NoError(t, err)
	items[0] = requantified
	checkInvariants()

	items = RemoveItem(items, b.ID)
	checkInvariants()

	items = RemoveItem(items, "unknown-id")
	checkInvariants()

	items = RemoveItem(items, a.ID)
	assert.Empty(t, items)
	checkInvariants()
}
