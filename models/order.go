package models

import (
	"time"

	"gorm.io/gorm"
)

// Order represents a persisted invoice: the customer snapshot, the line items
// and the computed totals. Customer fields are denormalized onto the order so
// a reprinted bill shows what was true at billing time.
type Order struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	InvoiceNumber   string         `gorm:"uniqueIndex;not null" json:"invoice_number"`
	CustomerID      uint           `gorm:"not null;index" json:"customer_id"`
	Customer        Customer       `gorm:"foreignKey:CustomerID" json:"customer"`
	CustomerName    string         `gorm:"not null" json:"customer_name"`
	CustomerMobile  string         `json:"customer_mobile"`
	CustomerAddress string         `json:"customer_address,omitempty"`
	Subtotal        float64        `gorm:"not null" json:"subtotal"`
	DiscountRate    float64        `gorm:"not null" json:"discount_rate"`
	DiscountAmount  float64        `gorm:"not null" json:"discount_amount"`
	TotalAmount     float64        `gorm:"not null" json:"total_amount"`
	DueDate         *time.Time     `json:"due_date,omitempty"`
	Notes           string         `json:"notes,omitempty"`
	Status          string         `gorm:"not null;default:'draft'" json:"status"` // draft, sent, paid
	Items           []OrderItem    `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}
