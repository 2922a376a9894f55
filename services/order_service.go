package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/sharma-tailors/sharma-tailors-api/billing"
	"github.com/sharma-tailors/sharma-tailors-api/config"
	"github.com/sharma-tailors/sharma-tailors-api/garments"
	"github.com/sharma-tailors/sharma-tailors-api/models"
)

// submitAttempts bounds how often a colliding invoice number is regenerated
// before the submission is rejected. The generator is time-derived and not
// globally unique, so the database's unique constraint is the real arbiter.
const submitAttempts = 3

// OrderService persists composed orders. Submission is two-step (header, then
// items) because the store offers no cross-table transaction at this boundary;
// the service keeps the two failure modes distinct so callers know what is
// safe to retry.
type OrderService interface {
	// SubmitOrder makes a draft invoice durable. On success the returned
	// order carries the store-assigned id and timestamps. Failure modes:
	//   - *billing.PersistenceError with Stage=header: nothing durable,
	//     the draft stays intact and the whole submit may be re-attempted.
	//   - *billing.PersistenceError with Stage=items: the header IS durable;
	//     retry the items via RetryOrderItems with the error's OrderID
	//     instead of re-submitting (which would duplicate the order).
	SubmitOrder(draft *billing.Invoice) (*models.Order, error)

	// RetryOrderItems re-attempts the items insert against an existing order
	// header. Idempotent: if the order already has its items, it is a no-op.
	RetryOrderItems(orderID uint, items []billing.LineItem) (*models.Order, error)
}

type gormOrderService struct{}

var orderServiceInstance OrderService

// InitOrderService initializes the order service backed by the global database
func InitOrderService() OrderService {
	orderServiceInstance = &gormOrderService{}
	return orderServiceInstance
}

// GetOrderService returns the initialized order service instance
func GetOrderService() OrderService {
	return orderServiceInstance
}

// SetOrderService sets the order service instance (primarily for testing)
func SetOrderService(service OrderService) {
	orderServiceInstance = service
}

func (s *gormOrderService) SubmitOrder(draft *billing.Invoice) (*models.Order, error) {
	db := config.GetDB()

	var headerErr error
	for attempt := 0; attempt < submitAttempts; attempt++ {
		order := orderModelFromDraft(draft)

		if err := db.Omit("Items", "Customer").Create(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// another submission won this truncation window; take a new number
				draft.InvoiceNumber = billing.NextInvoiceNumber(time.Now())
				headerErr = err
				logrus.WithField("invoice_number", draft.InvoiceNumber).
					Warn("Invoice number collision, regenerated")
				continue
			}
			return nil, &billing.PersistenceError{
				Stage: billing.StageHeader,
				Code:  billing.CodePersistenceRejected,
				Err:   err,
			}
		}

		if err := s.insertItems(db, order.ID, draft.Items); err != nil {
			// no distributed transaction here: the header stays, the caller
			// retries the items against it
			return &order, &billing.PersistenceError{
				Stage:   billing.StageItems,
				Code:    billing.CodePartialPersistence,
				OrderID: order.ID,
				Err:     err,
			}
		}

		return s.reload(db, order.ID)
	}

	return nil, &billing.PersistenceError{
		Stage: billing.StageHeader,
		Code:  billing.CodeDuplicateInvoiceNumber,
		Err:   fmt.Errorf("invoice number still colliding after %d attempts: %w", submitAttempts, headerErr),
	}
}

func (s *gormOrderService) RetryOrderItems(orderID uint, items []billing.LineItem) (*models.Order, error) {
	db := config.GetDB()

	var order models.Order
	if err := db.First(&order, orderID).Error; err != nil {
		return nil, &billing.PersistenceError{
			Stage: billing.StageItems,
			Code:  billing.CodePersistenceRejected,
			Err:   fmt.Errorf("no order header with id %d: %w", orderID, err),
		}
	}

	// already persisted on a prior attempt; retrying is a no-op
	var count int64
	if err := db.Model(&models.OrderItem{}).Where("order_id = ?", orderID).Count(&count).Error; err == nil && count > 0 {
		return s.reload(db, orderID)
	}

	if err := s.insertItems(db, orderID, items); err != nil {
		return nil, &billing.PersistenceError{
			Stage:   billing.StageItems,
			Code:    billing.CodePartialPersistence,
			OrderID: orderID,
			Err:     err,
		}
	}

	return s.reload(db, orderID)
}

func (s *gormOrderService) insertItems(db *gorm.DB, orderID uint, items []billing.LineItem) error {
	if len(items) == 0 {
		return nil
	}

	rows := make([]models.OrderItem, 0, len(items))
	for _, it := range items {
		rows = append(rows, orderItemModel(orderID, it))
	}

	return db.Create(&rows).Error
}

func (s *gormOrderService) reload(db *gorm.DB, orderID uint) (*models.Order, error) {
	var order models.Order
	if err := db.Preload("Customer").Preload("Items").First(&order, orderID).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// orderModelFromDraft snapshots the draft into its persistence shape. The
// store assigns id and created_at.
func orderModelFromDraft(draft *billing.Invoice) models.Order {
	return models.Order{
		InvoiceNumber:   draft.InvoiceNumber,
		CustomerID:      draft.Customer.ID,
		CustomerName:    draft.Customer.Name,
		CustomerMobile:  draft.Customer.Mobile,
		CustomerAddress: draft.Customer.Address,
		Subtotal:        draft.Totals.Subtotal,
		DiscountRate:    draft.DiscountRate,
		DiscountAmount:  draft.Totals.DiscountAmount,
		TotalAmount:     draft.Totals.TotalAmount,
		DueDate:         draft.DueDate,
		Notes:           draft.Notes,
		Status:          draft.Status,
	}
}

func orderItemModel(orderID uint, it billing.LineItem) models.OrderItem {
	row := models.OrderItem{
		OrderID:     orderID,
		LineID:      it.ID,
		Kind:        string(it.Kind),
		Description: it.Description,
		Quantity:    it.Quantity,
		UnitPrice:   it.UnitPrice,
		TotalPrice:  it.TotalPrice,
	}

	if it.HSNCode != "" {
		hsn := it.HSNCode
		row.HSNCode = &hsn
	}

	if it.Kind == billing.Stitching {
		storage := string(it.ClothingType.StorageClass())
		garment := string(it.ClothingType)
		row.ClothingType = &storage
		row.GarmentType = &garment
		row.Measurements = it.Measurements.Clone()
	}

	return row
}

// InvoiceFromOrder rebuilds the billing aggregate from its persisted form,
// e.g. to project a bill for an order loaded from the store. The open-
// vocabulary garment slug is preferred over the collapsed storage enum so the
// document shows the true type.
func InvoiceFromOrder(order *models.Order) billing.Invoice {
	inv := billing.Invoice{
		ID:            order.ID,
		InvoiceNumber: order.InvoiceNumber,
		Customer: billing.CustomerSnapshot{
			ID:      order.CustomerID,
			Name:    order.CustomerName,
			Mobile:  order.CustomerMobile,
			Address: order.CustomerAddress,
		},
		DiscountRate: order.DiscountRate,
		Totals: billing.Totals{
			Subtotal:       order.Subtotal,
			DiscountAmount: order.DiscountAmount,
			TotalAmount:    order.TotalAmount,
		},
		DueDate:   order.DueDate,
		Notes:     order.Notes,
		Status:    order.Status,
		CreatedAt: order.CreatedAt,
	}

	for _, row := range order.Items {
		item := billing.LineItem{
			ID:          row.LineID,
			Kind:        billing.ItemKind(row.Kind),
			Description: row.Description,
			Quantity:    row.Quantity,
			UnitPrice:   row.UnitPrice,
			TotalPrice:  row.TotalPrice,
		}
		if row.HSNCode != nil {
			item.HSNCode = *row.HSNCode
		}
		if item.Kind == billing.Stitching {
			item.ClothingType = garmentTypeFromRow(row)
			item.Measurements = row.Measurements.Clone()
		}
		inv.Items = append(inv.Items, item)
	}

	return inv
}

func garmentTypeFromRow(row models.OrderItem) garments.GarmentType {
	if row.GarmentType != nil {
		if t, ok := garments.Normalize(*row.GarmentType); ok {
			return t
		}
	}
	if row.ClothingType != nil {
		if t, ok := garments.Normalize(*row.ClothingType); ok {
			return t
		}
	}
	return garments.DefaultType
}
