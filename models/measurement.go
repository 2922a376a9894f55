package models

import (
	"time"

	"github.com/sharma-tailors/sharma-tailors-api/garments"
)

// Measurement is a standalone measurement record for one customer and one
// clothing type. The composite unique index makes the pair an upsert key:
// at most one record per customer per clothing type, a later save overwrites
// the prior one. No soft delete here — a dangling deleted row would block
// the upsert on the unique index.
type Measurement struct {
	ID           uint                    `gorm:"primaryKey" json:"id"`
	CustomerID   uint                    `gorm:"not null;uniqueIndex:idx_customer_clothing" json:"customer_id"`
	Customer     Customer                `gorm:"foreignKey:CustomerID" json:"-"`
	ClothingType string                  `gorm:"not null;uniqueIndex:idx_customer_clothing" json:"clothing_type"`
	Values       garments.MeasurementSet `gorm:"serializer:json" json:"values"`
	CreatedAt    time.Time               `json:"created_at"`
	UpdatedAt    time.Time               `json:"updated_at"`
}

// TableName specifies the table name for the Measurement model
func (Measurement) TableName() string {
	return "measurements"
}
