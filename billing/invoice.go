package billing

import (
	"fmt"
	"time"
)

// Order/Invoice status lifecycle
const (
	StatusDraft = "draft"
	StatusSent  = "sent"
	StatusPaid  = "paid"
)

// CustomerSnapshot is the slice of a customer record an invoice needs for
// printing. The engine never mutates customer records; it copies these fields
// when the draft is created so the printed bill stays stable even if the
// customer record changes later.
type CustomerSnapshot struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Mobile  string `json:"mobile"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
}

// Invoice is the order aggregate: customer snapshot, line items and computed
// totals. It lives in memory as a draft while the bill is being composed and
// becomes durable only when handed to the order service; discarding a draft
// before submission rolls back nothing because nothing was written.
type Invoice struct {
	ID            uint             `json:"id,omitempty"`
	InvoiceNumber string           `json:"invoice_number"`
	Customer      CustomerSnapshot `json:"customer"`
	Items         []LineItem       `json:"items"`
	DiscountRate  float64          `json:"discount_rate"`
	Totals        Totals           `json:"totals"`
	DueDate       *time.Time       `json:"due_date,omitempty"`
	Notes         string           `json:"notes,omitempty"`
	Status        string           `json:"status"`
	CreatedAt     time.Time        `json:"created_at"`
}

// NewDraft starts an in-memory draft invoice for a customer. The invoice
// number is assigned up front so previews show the number the bill will carry.
func NewDraft(customer CustomerSnapshot, now time.Time) *Invoice {
	return &Invoice{
		InvoiceNumber: NextInvoiceNumber(now),
		Customer:      customer,
		DiscountRate:  DefaultDiscountRatePercent,
		Status:        StatusDraft,
		CreatedAt:     now,
	}
}

// AddItem appends a built line item and recomputes the totals
func (inv *Invoice) AddItem(item LineItem) {
	inv.Items = append(inv.Items, item)
	inv.recalc()
}

// RemoveItem drops the item with the given id, if present, and recomputes
func (inv *Invoice) RemoveItem(id string) {
	inv.Items = RemoveItem(inv.Items, id)
	inv.recalc()
}

// SetItemQuantity requantifies the item with the given id. The item's total
// and the invoice totals are re-derived in the same call, so no inconsistent
// intermediate state is ever observable.
func (inv *Invoice) SetItemQuantity(id string, quantity int) error {
	for i := range inv.Items {
		if inv.Items[i].ID == id {
			updated, err := inv.Items[i].WithQuantity(quantity)
			if err != nil {
				return err
			}
			inv.Items[i] = updated
			inv.recalc()
			return nil
		}
	}
	return &ValidationError{Field: "item_id", Reason: "no such item"}
}

func (inv *Invoice) recalc() {
	inv.Totals = ComputeTotals(inv.Items, inv.DiscountRate)
}

// NextInvoiceNumber derives a human-readable, time-ordered invoice number in
// the fixed format INV-YYYYMM-NNNNNN, where the suffix is the millisecond
// clock truncated to its last six digits. Deterministic given now, but NOT
// globally unique: two submissions inside the same truncation window collide.
// The order service treats the database's unique constraint as the arbiter
// and regenerates on collision; this function stays pure.
func NextInvoiceNumber(now time.Time) string {
	suffix := now.UnixMilli() % 1_000_000
	return fmt.Sprintf("INV-%s-%06d", now.Format("200601"), suffix)
}
