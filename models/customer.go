package models

import (
	"time"

	"gorm.io/gorm"
)

// Customer represents a customer of the shop. The billing engine treats
// customers as read-only: it only snapshots the fields it needs onto orders.
type Customer struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"not null;index" json:"name"`
	Mobile    string         `gorm:"not null;index" json:"mobile"`
	Email     string         `json:"email,omitempty"`
	Address   string         `json:"address,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}
