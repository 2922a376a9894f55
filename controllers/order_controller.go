package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sharma-tailors/sharma-tailors-api/billing"
	"github.com/sharma-tailors/sharma-tailors-api/config"
	"github.com/sharma-tailors/sharma-tailors-api/garments"
	"github.com/sharma-tailors/sharma-tailors-api/models"
	"github.com/sharma-tailors/sharma-tailors-api/services"
	"github.com/sharma-tailors/sharma-tailors-api/utils"
)

// OrderItemRequest is one line item in an order payload. ClothingType and
// Measurements are required only for stitching items.
type OrderItemRequest struct {
	Kind         string            `json:"kind" binding:"required,oneof=ready_made stitching"`
	Description  string            `json:"description"`
	Quantity     int               `json:"quantity"`
	UnitPrice    float64           `json:"unit_price"`
	HSNCode      string            `json:"hsn_code"`
	ClothingType string            `json:"clothing_type"`
	Measurements map[string]string `json:"measurements"`
}

// CreateOrderRequest represents the request body for composing and submitting an order
type CreateOrderRequest struct {
	CustomerID   uint               `json:"customer_id" binding:"required"`
	Items        []OrderItemRequest `json:"items" binding:"required,min=1"`
	DiscountRate *float64           `json:"discount_rate" binding:"omitempty,gte=0,lte=100"`
	DueDate      *time.Time         `json:"due_date"`
	Notes        string             `json:"notes"`
}

// CreateOrder handles POST /api/v1/orders - composes a draft from the payload,
// validates every line item, computes the totals and hands the draft to the
// order service. Validation failures leave nothing behind; persistence
// failures are mapped so the client knows whether a retry would duplicate
// the order.
func CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	db := config.GetDB()
	var customer models.Customer
	if err := db.First(&customer, req.CustomerID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CUSTOMER_NOT_FOUND",
				"message": "Customer not found",
			},
		})
		return
	}

	draft := billing.NewDraft(billing.CustomerSnapshot{
		ID:      customer.ID,
		Name:    customer.Name,
		Mobile:  customer.Mobile,
		Email:   customer.Email,
		Address: customer.Address,
	}, time.Now())
	draft.DueDate = req.DueDate
	draft.Notes = req.Notes
	if req.DiscountRate != nil {
		draft.DiscountRate = *req.DiscountRate
	}

	for _, itemReq := range req.Items {
		item, ok := buildLineItem(c, itemReq)
		if !ok {
			return
		}
		draft.AddItem(item)
	}

	order, err := services.GetOrderService().SubmitOrder(draft)
	if err != nil {
		respondPersistenceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    order,
	})
}

// buildLineItem runs the engine's builder for one payload item. On failure it
// writes the error response and returns ok=false; the draft is abandoned and
// nothing was persisted.
func buildLineItem(c *gin.Context, req OrderItemRequest) (billing.LineItem, bool) {
	if req.Kind == string(billing.ReadyMade) {
		item, err := billing.NewReadyMadeItem(req.Description, req.Quantity, req.UnitPrice, req.HSNCode)
		if err != nil {
			respondItemError(c, err)
			return billing.LineItem{}, false
		}
		return item, true
	}

	garmentType, ok := garments.Normalize(req.ClothingType)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNKNOWN_CLOTHING_TYPE",
				"message": "Unrecognized clothing type: " + req.ClothingType,
			},
		})
		return billing.LineItem{}, false
	}

	item, err := billing.NewStitchingItem(req.Description, req.Quantity, req.UnitPrice,
		garmentType, garments.MeasurementSet(req.Measurements), req.HSNCode)
	if err != nil {
		respondItemError(c, err)
		return billing.LineItem{}, false
	}
	return item, true
}

func respondItemError(c *gin.Context, err error) {
	var mErr *billing.MeasurementsIncompleteError
	if errors.As(err, &mErr) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"error": gin.H{
				"code":           "MEASUREMENTS_INCOMPLETE",
				"message":        mErr.Error(),
				"clothing_type":  string(mErr.ClothingType),
				"missing_fields": mErr.Missing,
			},
		})
		return
	}

	var vErr *billing.ValidationError
	if errors.As(err, &vErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": vErr.Error(),
				"field":   vErr.Field,
			},
		})
		return
	}

	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "VALIDATION_ERROR",
			"message": err.Error(),
		},
	})
}

func respondPersistenceError(c *gin.Context, err error) {
	var pErr *billing.PersistenceError
	if errors.As(err, &pErr) {
		switch {
		case pErr.Partial():
			// the header is durable: the client must retry the items insert,
			// not re-submit the order
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":     "PARTIAL_PERSISTENCE",
					"message":  "Order was created but its items were not saved; retry the items",
					"order_id": pErr.OrderID,
				},
			})
		case pErr.Code == billing.CodeDuplicateInvoiceNumber:
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DUPLICATE_INVOICE_NUMBER",
					"message": "Could not allocate a unique invoice number; try again",
				},
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "PERSISTENCE_REJECTED",
					"message": "Failed to save order; the draft was not persisted",
				},
			})
		}
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "DATABASE_ERROR",
			"message": "Failed to save order",
		},
	})
}

// RetryOrderItemsRequest carries the line items of a partially persisted order
type RetryOrderItemsRequest struct {
	Items []OrderItemRequest `json:"items" binding:"required,min=1"`
}

// RetryOrderItems handles POST /api/v1/orders/:id/items/retry - re-attempts
// the items insert for an order whose header was created but whose items
// failed to save. Safe to call repeatedly.
func RetryOrderItems(c *gin.Context) {
	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}

	var req RetryOrderItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	items := make([]billing.LineItem, 0, len(req.Items))
	for _, itemReq := range req.Items {
		item, ok := buildLineItem(c, itemReq)
		if !ok {
			return
		}
		items = append(items, item)
	}

	order, err := services.GetOrderService().RetryOrderItems(orderID, items)
	if err != nil {
		respondPersistenceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// ListOrders handles GET /api/v1/orders - lists orders, newest first, with an
// optional ?status= filter
func ListOrders(c *gin.Context) {
	db := config.GetDB()
	pagination := utils.ParsePagination(c)

	query := db.Model(&models.Order{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to count orders",
			},
		})
		return
	}

	var orders []models.Order
	if err := query.Preload("Customer").Preload("Items").
		Order("created_at DESC").
		Limit(pagination.Limit).Offset(pagination.Offset()).
		Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to list orders",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       orders,
		"pagination": pagination.Meta(total),
	})
}

// GetOrder handles GET /api/v1/orders/:id - fetches one order with its items
func GetOrder(c *gin.Context) {
	order, ok := loadOrder(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// UpdateOrderStatusRequest represents the request body for a status change
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=draft sent paid"`
}

// UpdateOrderStatus handles PATCH /api/v1/orders/:id/status
func UpdateOrderStatus(c *gin.Context) {
	order, ok := loadOrder(c)
	if !ok {
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	db := config.GetDB()
	if err := db.Model(order).Update("status", req.Status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update order status",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

func parseOrderID(c *gin.Context) (uint, bool) {
	var uri struct {
		ID uint `uri:"id" binding:"required"`
	}
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Order ID must be a positive integer",
			},
		})
		return 0, false
	}
	return uri.ID, true
}

func loadOrder(c *gin.Context) (*models.Order, bool) {
	orderID, ok := parseOrderID(c)
	if !ok {
		return nil, false
	}

	db := config.GetDB()
	var order models.Order
	if err := db.Preload("Customer").Preload("Items").First(&order, orderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_FOUND",
				"message": "Order not found",
			},
		})
		return nil, false
	}

	return &order, true
}
