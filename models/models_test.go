package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sharma-tailors/sharma-tailors-api/garments"
)

func setupModelTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(&Customer{}, &Order{}, &OrderItem{}, &Measurement{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func TestTableNames(t *testing.T) {
	assert.Equal(t, "customers", Customer{}.TableName())
	assert.Equal(t, "orders", Order{}.TableName())
	assert.Equal(t, "order_items", OrderItem{}.TableName())
	assert.Equal(t, "measurements", Measurement{}.TableName())
}

func TestOrderItemMeasurementsRoundTrip(t *testing.T) {
	db := setupModelTestDB(t)

	customer := Customer{Name: "Ravi Kumar", Mobile: "9876543210"}
	assert.NoError(t, db.Create(&customer).Error)

	order := Order{
		InvoiceNumber: "INV-202406-000001",
		CustomerID:    customer.ID,
		CustomerName:  customer.Name,
		Status:        "draft",
	}
	assert.NoError(t, db.Create(&order).Error)

	clothing := "kurta_pajama"
	garment := "kurta"
	item := OrderItem{
		OrderID:      order.ID,
		LineID:       "line-1",
		Kind:         "stitching",
		Description:  "Wedding Kurta",
		Quantity:     1,
		UnitPrice:    800,
		TotalPrice:   800,
		ClothingType: &clothing,
		GarmentType:  &garment,
		Measurements: garments.MeasurementSet{"chest": "40", "shoulder": "18", "kurta_length": "42"},
	}
	assert.NoError(t, db.Create(&item).Error)

	var loaded OrderItem
	assert.NoError(t, db.First(&loaded, item.ID).Error)
	assert.Equal(t, "40", loaded.Measurements["chest"], "measurement map survives the JSON serializer")
	assert.Equal(t, "kurta_pajama", *loaded.ClothingType)
}

func TestOrderInvoiceNumberUnique(t *testing.T) {
	db := setupModelTestDB(t)

	customer := Customer{Name: "Ravi Kumar", Mobile: "9876543210"}
	assert.NoError(t, db.Create(&customer).Error)

	first := Order{InvoiceNumber: "INV-202406-777777", CustomerID: customer.ID, CustomerName: customer.Name, Status: "draft"}
	assert.NoError(t, db.Create(&first).Error)

	duplicate := Order{InvoiceNumber: "INV-202406-777777", CustomerID: customer.ID, CustomerName: customer.Name, Status: "draft"}
	err := db.Create(&duplicate).Error
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey), "duplicate invoice number must surface as ErrDuplicatedKey, got %v", err)
}

func TestMeasurementUpsertKey(t *testing.T) {
	db := setupModelTestDB(t)

	customer := Customer{Name: "Ravi Kumar", Mobile: "9876543210"}
	assert.NoError(t, db.Create(&customer).Error)

	first := Measurement{
		CustomerID:   customer.ID,
		ClothingType: "pant",
		Values:       garments.MeasurementSet{"waist": "34"},
	}
	assert.NoError(t, db.Create(&first).Error)

	// same (customer, clothing type) pair violates the composite unique index
	second := Measurement{
		CustomerID:   customer.ID,
		ClothingType: "pant",
		Values:       garments.MeasurementSet{"waist": "36"},
	}
	err := db.Create(&second).Error
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey))

	// a different clothing type for the same customer is fine
	third := Measurement{
		CustomerID:   customer.ID,
		ClothingType: "shirt",
		Values:       garments.MeasurementSet{"chest": "40"},
	}
	assert.NoError(t, db.Create(&third).Error)
}
