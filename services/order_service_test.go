package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sharma-tailors/sharma-tailors-api/billing"
	"github.com/sharma-tailors/sharma-tailors-api/config"
	"github.com/sharma-tailors/sharma-tailors-api/garments"
	"github.com/sharma-tailors/sharma-tailors-api/models"
)

func setupOrderServiceTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(&models.Customer{}, &models.Order{}, &models.OrderItem{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	config.SetDB(db)
	return db
}

func createTestCustomer(t *testing.T, db *gorm.DB) models.Customer {
	t.Helper()
	customer := models.Customer{
		Name:    "Ravi Kumar",
		Mobile:  "9876543210",
		Address: "14 MG Road, Delhi",
	}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("Failed to create test customer: %v", err)
	}
	return customer
}

func buildTestDraft(t *testing.T, customer models.Customer) *billing.Invoice {
	t.Helper()

	draft := billing.NewDraft(billing.CustomerSnapshot{
		ID:      customer.ID,
		Name:    customer.Name,
		Mobile:  customer.Mobile,
		Address: customer.Address,
	}, time.Now())

	shirt, err := billing.NewReadyMadeItem("Cotton Shirt", 2, 500, "")
	assert.NoError(t, err)
	draft.AddItem(shirt)

	kurta, err := billing.NewStitchingItem("Wedding Kurta", 1, 800, garments.Kurta,
		garments.MeasurementSet{"chest": "40", "shoulder": "18", "kurta_length": "42"}, "")
	assert.NoError(t, err)
	draft.AddItem(kurta)

	return draft
}

func TestSubmitOrder(t *testing.T) {
	db := setupOrderServiceTestDB(t)
	customer := createTestCustomer(t, db)
	svc := InitOrderService()

	draft := buildTestDraft(t, customer)

	order, err := svc.SubmitOrder(draft)
	assert.NoError(t, err)
	assert.NotZero(t, order.ID, "store assigns the id")
	assert.False(t, order.CreatedAt.IsZero(), "store assigns created_at")
	assert.Equal(t, draft.InvoiceNumber, order.InvoiceNumber)
	assert.Equal(t, 1800.0, order.Subtotal)
	assert.Equal(t, 180.0, order.DiscountAmount)
	assert.Equal(t, 1620.0, order.TotalAmount)
	assert.Equal(t, customer.ID, order.CustomerID)
	assert.Equal(t, "Ravi Kumar", order.CustomerName)
	assert.Len(t, order.Items, 2)

	// the stitching item's clothing type collapses onto the storage enum,
	// while the open-vocabulary slug is kept alongside
	var stitching models.OrderItem
	for _, row := range order.Items {
		if row.Kind == string(billing.Stitching) {
			stitching = row
		}
	}
	assert.NotNil(t, stitching.ClothingType)
	assert.Equal(t, "kurta_pajama", *stitching.ClothingType)
	assert.NotNil(t, stitching.GarmentType)
	assert.Equal(t, "kurta", *stitching.GarmentType)
	assert.Equal(t, "40", stitching.Measurements["chest"])
}

func TestSubmitOrder_RegeneratesCollidingInvoiceNumber(t *testing.T) {
	db := setupOrderServiceTestDB(t)
	customer := createTestCustomer(t, db)
	svc := InitOrderService()

	// occupy the invoice number the draft is about to use
	taken := "INV-202401-000042"
	existing := models.Order{
		InvoiceNumber: taken,
		CustomerID:    customer.ID,
		CustomerName:  customer.Name,
		Status:        billing.StatusDraft,
	}
	assert.NoError(t, db.Create(&existing).Error)

	draft := buildTestDraft(t, customer)
	draft.InvoiceNumber = taken

	order, err := svc.SubmitOrder(draft)
	assert.NoError(t, err, "a collision should be absorbed by regeneration")
	assert.NotEqual(t, taken, order.InvoiceNumber)
	assert.Equal(t, draft.InvoiceNumber, order.InvoiceNumber, "draft carries the regenerated number")

	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.Equal(t, int64(2), count, "no duplicate order was created")
}

func TestSubmitOrder_PartialPersistence(t *testing.T) {
	db := setupOrderServiceTestDB(t)
	customer := createTestCustomer(t, db)
	svc := InitOrderService()

	draft := buildTestDraft(t, customer)

	// force the items insert to fail after the header succeeds
	assert.NoError(t, db.Migrator().DropTable(&models.OrderItem{}))

	_, err := svc.SubmitOrder(draft)

	var pErr *billing.PersistenceError
	assert.ErrorAs(t, err, &pErr)
	assert.True(t, pErr.Partial(), "items-stage failure must be distinguishable from a rejected header")
	assert.Equal(t, billing.CodePartialPersistence, pErr.Code)
	assert.NotZero(t, pErr.OrderID, "the durable header id travels with the error")

	// the header really is durable
	var header models.Order
	assert.NoError(t, db.First(&header, pErr.OrderID).Error)
	assert.Equal(t, draft.InvoiceNumber, header.InvoiceNumber)

	// once the store recovers, retrying the items completes the order
	// without touching the header
	assert.NoError(t, db.AutoMigrate(&models.OrderItem{}))

	order, err := svc.RetryOrderItems(pErr.OrderID, draft.Items)
	assert.NoError(t, err)
	assert.Equal(t, pErr.OrderID, order.ID)
	assert.Len(t, order.Items, 2)

	var headerCount int64
	db.Model(&models.Order{}).Count(&headerCount)
	assert.Equal(t, int64(1), headerCount)
}

func TestRetryOrderItems_Idempotent(t *testing.T) {
	db := setupOrderServiceTestDB(t)
	customer := createTestCustomer(t, db)
	svc := InitOrderService()

	draft := buildTestDraft(t, customer)
	order, err := svc.SubmitOrder(draft)
	assert.NoError(t, err)

	// retrying a fully persisted order changes nothing
	retried, err := svc.RetryOrderItems(order.ID, draft.Items)
	assert.NoError(t, err)
	assert.Len(t, retried.Items, 2)

	var itemCount int64
	db.Model(&models.OrderItem{}).Count(&itemCount)
	assert.Equal(t, int64(2), itemCount)
}

func TestRetryOrderItems_UnknownOrder(t *testing.T) {
	setupOrderServiceTestDB(t)
	svc := InitOrderService()

	_, err := svc.RetryOrderItems(9999, nil)

	var pErr *billing.PersistenceError
	assert.ErrorAs(t, err, &pErr)
	assert.Equal(t, billing.CodePersistenceRejected, pErr.Code)
}

func TestInvoiceFromOrder(t *testing.T) {
	db := setupOrderServiceTestDB(t)
	customer := createTestCustomer(t, db)
	svc := InitOrderService()

	draft := buildTestDraft(t, customer)
	due := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)
	draft.DueDate = &due
	draft.Notes = "Deliver before the wedding"

	order, err := svc.SubmitOrder(draft)
	assert.NoError(t, err)

	inv := InvoiceFromOrder(order)

	assert.Equal(t, order.InvoiceNumber, inv.InvoiceNumber)
	assert.Equal(t, "Ravi Kumar", inv.Customer.Name)
	assert.Equal(t, 1800.0, inv.Totals.Subtotal)
	assert.Equal(t, 1620.0, inv.Totals.TotalAmount)
	assert.Equal(t, "Deliver before the wedding", inv.Notes)
	assert.Len(t, inv.Items, 2)

	for _, item := range inv.Items {
		if item.Kind == billing.Stitching {
			// the true garment type survives the storage round trip
			assert.Equal(t, garments.Kurta, item.ClothingType)
			assert.Equal(t, "40", item.Measurements["chest"])
		}
	}
}
