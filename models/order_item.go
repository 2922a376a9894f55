package models

import (
	"time"

	"github.com/sharma-tailors/sharma-tailors-api/garments"
)

// OrderItem is one persisted line item. ClothingType holds the closed storage
// enum value the persistence schema requires; GarmentType keeps the original
// open-vocabulary slug so a reprinted bill can still show the true type and
// order its measurement summary by the right schema. Both are nil for
// ready-made items.
type OrderItem struct {
	ID           uint                    `gorm:"primaryKey" json:"id"`
	OrderID      uint                    `gorm:"not null;index" json:"order_id"`
	LineID       string                  `gorm:"uniqueIndex;not null" json:"line_id"` // engine-assigned id, idempotency target for item retries
	Kind         string                  `gorm:"not null" json:"kind"`                // ready_made, stitching
	Description  string                  `gorm:"not null" json:"description"`
	Quantity     int                     `gorm:"not null;check:quantity > 0" json:"quantity"`
	UnitPrice    float64                 `gorm:"not null" json:"unit_price"`
	TotalPrice   float64                 `gorm:"not null" json:"total_price"`
	HSNCode      *string                 `json:"hsn_code,omitempty"`
	ClothingType *string                 `json:"clothing_type,omitempty"`
	GarmentType  *string                 `json:"garment_type,omitempty"`
	Measurements garments.MeasurementSet `gorm:"serializer:json" json:"measurements,omitempty"`
	CreatedAt    time.Time               `json:"created_at"`
	UpdatedAt    time.Time               `json:"updated_at"`
}

// TableName specifies the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}
