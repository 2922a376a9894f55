package billing

import (
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/sharma-tailors/sharma-tailors-api/garments"
)

// ItemKind distinguishes ready-made goods from custom-stitching services
type ItemKind string

const (
	ReadyMade ItemKind = "ready_made"
	Stitching ItemKind = "stitching"
)

// LineItem is one priced entry on an order. Items are value objects: callers
// replace list entries rather than mutate them, so TotalPrice can never be
// observed out of sync with Quantity and UnitPrice. ClothingType and
// Measurements are set iff Kind == Stitching.
type LineItem struct {
	ID           string                  `json:"id"`
	Kind         ItemKind                `json:"kind"`
	Description  string                  `json:"description"`
	Quantity     int                     `json:"quantity"`
	UnitPrice    float64                 `json:"unit_price"`
	TotalPrice   float64                 `json:"total_price"`
	HSNCode      string                  `json:"hsn_code,omitempty"`
	ClothingType garments.GarmentType    `json:"clothing_type,omitempty"`
	Measurements garments.MeasurementSet `json:"measurements,omitempty"`
}

// NewReadyMadeItem builds a ready-made line item. Fails with a ValidationError
// when the description is empty, the quantity is below 1 or the unit price is
// not positive.
func NewReadyMadeItem(description string, quantity int, unitPrice float64, hsnCode string) (LineItem, error) {
	if err := validateItem(description, quantity, unitPrice); err != nil {
		return LineItem{}, err
	}

	return LineItem{
		ID:          uuid.NewString(),
		Kind:        ReadyMade,
		Description: strings.TrimSpace(description),
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		TotalPrice:  lineTotal(quantity, unitPrice),
		HSNCode:     hsnCode,
	}, nil
}

// NewStitchingItem builds a custom-stitching line item. It first applies the
// same basic validation as ready-made items, then checks measurement
// completeness against the clothing type's schema; incomplete measurements
// fail with a MeasurementsIncompleteError listing the unfilled field labels.
// The two checks are independent so a new garment kind only needs a schema
// registry entry, not builder changes.
func NewStitchingItem(description string, quantity int, unitPrice float64, clothingType garments.GarmentType, measurements garments.MeasurementSet, hsnCode string) (LineItem, error) {
	if err := validateItem(description, quantity, unitPrice); err != nil {
		return LineItem{}, err
	}

	if missing := garments.MissingRequiredFields(clothingType, measurements); len(missing) > 0 {
		return LineItem{}, &MeasurementsIncompleteError{
			ClothingType: clothingType,
			Missing:      missing,
		}
	}

	return LineItem{
		ID:           uuid.NewString(),
		Kind:         Stitching,
		Description:  strings.TrimSpace(description),
		Quantity:     quantity,
		UnitPrice:    unitPrice,
		TotalPrice:   lineTotal(quantity, unitPrice),
		HSNCode:      hsnCode,
		ClothingType: clothingType,
		Measurements: measurements.Clone(),
	}, nil
}

// WithQuantity returns a copy of the item with the new quantity and a
// re-derived total. Fails when the quantity drops below 1.
func (it LineItem) WithQuantity(quantity int) (LineItem, error) {
	if quantity < 1 {
		return LineItem{}, &ValidationError{Field: "quantity", Reason: "must be at least 1"}
	}

	it.Quantity = quantity
	it.TotalPrice = lineTotal(quantity, it.UnitPrice)
	return it, nil
}

// RemoveItem returns the list with the matching id excluded. Removal is
// idempotent: an unknown id returns the input list unchanged.
func RemoveItem(items []LineItem, id string) []LineItem {
	for i := range items {
		if items[i].ID == id {
			out := make([]LineItem, 0, len(items)-1)
			out = append(out, items[:i]...)
			return append(out, items[i+1:]...)
		}
	}
	return items
}

func validateItem(description string, quantity int, unitPrice float64) error {
	if strings.TrimSpace(description) == "" {
		return &ValidationError{Field: "description", Reason: "must not be empty"}
	}
	if quantity < 1 {
		return &ValidationError{Field: "quantity", Reason: "must be at least 1"}
	}
	if unitPrice <= 0 {
		return &ValidationError{Field: "unit_price", Reason: "must be greater than zero"}
	}
	return nil
}

func lineTotal(quantity int, unitPrice float64) float64 {
	return roundMoney(float64(quantity) * unitPrice)
}

// roundMoney rounds to the paisa, the smallest currency unit we carry
func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
