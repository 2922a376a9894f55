package billing

// DefaultDiscountRatePercent is the shop's standing discount. The rate is an
// explicit parameter of ComputeTotals so other policies (or a zero-discount
// rate) can coexist; this constant only documents the default callers pass
// when no per-order rate applies.
const DefaultDiscountRatePercent = 10.0

// Totals is the monetary aggregate of an order's line items
type Totals struct {
	Subtotal       float64 `json:"subtotal"`
	DiscountAmount float64 `json:"discount_amount"`
	TotalAmount    float64 `json:"total_amount"`
}

// ComputeTotals recomputes the totals from scratch on every call. There is no
// incremental state to drift out of sync with the item list; at tens of items
// per order the O(n) pass costs nothing.
func ComputeTotals(items []LineItem, discountRatePercent float64) Totals {
	var subtotal float64
	for _, it := range items {
		subtotal += it.TotalPrice
	}
	subtotal = roundMoney(subtotal)

	discount := roundMoney(subtotal * discountRatePercent / 100)

	return Totals{
		Subtotal:       subtotal,
		DiscountAmount: discount,
		TotalAmount:    roundMoney(subtotal - discount),
	}
}
