package billing

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sharma-tailors/sharma-tailors-api/garments"
)

// Business identity printed at the top of every bill
const (
	businessName    = "Sharma Tailors & Drapers"
	businessAddress = "Shop 12, Gandhi Market, Karol Bagh, New Delhi 110005"
	businessPhone   = "+91 98100 12345"
)

const dateLayout = "02 Jan 2006"

// PrintableDocument is the rendering-agnostic bill layout. It is a plain
// value: the engine's contract ends at producing it, and whatever renders it
// (HTML, PDF, terminal) is outside the engine.
type PrintableDocument struct {
	Header           HeaderBlock     `json:"header"`
	InvoiceNumber    string          `json:"invoice_number"`
	InvoiceDate      string          `json:"invoice_date"`
	Customer         CustomerBlock   `json:"customer"`
	FabricDetails    DocumentSection `json:"fabric_details"`
	StitchingDetails DocumentSection `json:"stitching_details"`
	Totals           TotalsBlock     `json:"totals"`
	DeliveryDate     string          `json:"delivery_date,omitempty"`
	Notes            string          `json:"notes,omitempty"`
	Signatures       SignatureBlock  `json:"signatures"`
}

// HeaderBlock is the fixed business identity
type HeaderBlock struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

type CustomerBlock struct {
	Name    string `json:"name"`
	Mobile  string `json:"mobile"`
	Address string `json:"address,omitempty"`
}

type DocumentSection struct {
	Title string        `json:"title"`
	Rows  []DocumentRow `json:"rows"`
}

// DocumentRow is one itemized bill line. Measurements is a rendered summary
// and is only populated for stitching rows.
type DocumentRow struct {
	Description  string `json:"description"`
	Measurements string `json:"measurements,omitempty"`
	Quantity     string `json:"quantity"`
	Rate         string `json:"rate"`
	Amount       string `json:"amount"`
}

type TotalsBlock struct {
	Subtotal      string `json:"subtotal"`
	DiscountLabel string `json:"discount_label"`
	Discount      string `json:"discount"`
	Total         string `json:"total"`
}

// SignatureBlock holds the fixed signature line labels
type SignatureBlock struct {
	Customer   string `json:"customer"`
	Shopkeeper string `json:"shopkeeper"`
}

// Project transforms a completed invoice into its printable document value.
// Pure: no I/O, no clock or locale reads — the reference time comes in as an
// argument (used only when the invoice has no creation timestamp yet), so
// projecting the same invoice twice yields structurally identical documents.
func Project(inv Invoice, now time.Time) PrintableDocument {
	invoiceDate := inv.CreatedAt
	if invoiceDate.IsZero() {
		invoiceDate = now
	}

	doc := PrintableDocument{
		Header: HeaderBlock{
			Name:    businessName,
			Address: businessAddress,
			Phone:   businessPhone,
		},
		InvoiceNumber: inv.InvoiceNumber,
		InvoiceDate:   invoiceDate.Format(dateLayout),
		Customer: CustomerBlock{
			Name:    inv.Customer.Name,
			Mobile:  inv.Customer.Mobile,
			Address: inv.Customer.Address,
		},
		FabricDetails:    projectSection("Fabric Details", inv.Items, ReadyMade),
		StitchingDetails: projectSection("Stitching Details", inv.Items, Stitching),
		Totals: TotalsBlock{
			Subtotal:      formatMoney(inv.Totals.Subtotal),
			DiscountLabel: fmt.Sprintf("Discount (%s%%)", strconv.FormatFloat(inv.DiscountRate, 'f', -1, 64)),
			Discount:      formatMoney(inv.Totals.DiscountAmount),
			Total:         formatMoney(inv.Totals.TotalAmount),
		},
		Notes: inv.Notes,
		Signatures: SignatureBlock{
			Customer:   "Customer Signature",
			Shopkeeper: "For Sharma Tailors & Drapers",
		},
	}

	if inv.DueDate != nil {
		doc.DeliveryDate = inv.DueDate.Format(dateLayout)
	}

	return doc
}

// projectSection collects the rows for one item kind. A section with no
// matching items gets a single placeholder row so the bill layout stays
// stable across prints.
func projectSection(title string, items []LineItem, kind ItemKind) DocumentSection {
	section := DocumentSection{Title: title}

	for _, it := range items {
		if it.Kind != kind {
			continue
		}
		row := DocumentRow{
			Description: it.Description,
			Quantity:    strconv.Itoa(it.Quantity),
			Rate:        formatMoney(it.UnitPrice),
			Amount:      formatMoney(it.TotalPrice),
		}
		if kind == Stitching {
			row.Measurements = measurementSummary(it.ClothingType, it.Measurements)
		}
		section.Rows = append(section.Rows, row)
	}

	if len(section.Rows) == 0 {
		section.Rows = []DocumentRow{{
			Description:  "-",
			Measurements: "-",
			Quantity:     "-",
			Rate:         "-",
			Amount:       "-",
		}}
	}

	return section
}

// measurementSummary renders the filled measurement fields in schema order,
// e.g. `CHEST: 40", SHOULDER: 18"`. Inch fields get the inch mark, text
// fields are printed as-is; empty fields are skipped.
func measurementSummary(t garments.GarmentType, values garments.MeasurementSet) string {
	var parts []string
	for _, f := range garments.SchemaFor(t).AllFields() {
		value := strings.TrimSpace(values[f.Name])
		if value == "" {
			continue
		}
		if f.Unit == garments.UnitInches {
			parts = append(parts, fmt.Sprintf("%s: %s\"", f.Label, value))
		} else {
			parts = append(parts, fmt.Sprintf("%s: %s", f.Label, value))
		}
	}
	return strings.Join(parts, ", ")
}

func formatMoney(v float64) string {
	return fmt.Sprintf("₹%.2f", v)
}
