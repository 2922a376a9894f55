package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm/clause"

	"github.com/sharma-tailors/sharma-tailors-api/config"
	"github.com/sharma-tailors/sharma-tailors-api/garments"
	"github.com/sharma-tailors/sharma-tailors-api/models"
)

// UpsertMeasurementRequest represents the request body for saving measurements
type UpsertMeasurementRequest struct {
	Values map[string]string `json:"values" binding:"required"`
}

// UpsertMeasurement handles PUT /api/v1/customers/:id/measurements/:clothingType.
// A customer has at most one measurement record per clothing type; saving again
// overwrites the previous values. Standalone records may be partial — the
// completeness check only gates stitching line items — so the response reports
// which fields are still unfilled instead of rejecting.
func UpsertMeasurement(c *gin.Context) {
	db := config.GetDB()

	var customer models.Customer
	if err := db.First(&customer, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CUSTOMER_NOT_FOUND",
				"message": "Customer not found",
			},
		})
		return
	}

	garmentType, ok := garments.Normalize(c.Param("clothingType"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNKNOWN_CLOTHING_TYPE",
				"message": "Unrecognized clothing type: " + c.Param("clothingType"),
			},
		})
		return
	}

	var req UpsertMeasurementRequest
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

	measurement := models.Measurement{
		CustomerID:   customer.ID,
		ClothingType: string(garmentType),
		Values:       garments.MeasurementSet(req.Values),
	}

	// upsert keyed on (customer_id, clothing_type)
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "customer_id"}, {Name: "clothing_type"}},
		DoUpdates: clause.AssignmentColumns([]string{"values", "updated_at"}),
	}).Create(&measurement).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to save measurements",
			},
		})
		return
	}

	var saved models.Measurement
	if err := db.Where("customer_id = ? AND clothing_type = ?", customer.ID, string(garmentType)).
		First(&saved).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load saved measurements",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    saved,
		"meta": gin.H{
			"missing_fields": garments.MissingRequiredFields(garmentType, saved.Values),
		},
	})
}

// ListMeasurements handles GET /api/v1/customers/:id/measurements - all
// measurement records on file for a customer
func ListMeasurements(c *gin.Context) {
	db := config.GetDB()

	var customer models.Customer
	if err := db.First(&customer, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CUSTOMER_NOT_FOUND",
				"message": "Customer not found",
			},
		})
		return
	}

	var measurements []models.Measurement
	if err := db.Where("customer_id = ?", customer.ID).
		Order("clothing_type ASC").
		Find(&measurements).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to list measurements",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    measurements,
	})
}

// ListGarmentTypes handles GET /api/v1/garments - every garment type the shop
// can stitch, for populating type pickers
func ListGarmentTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    garments.Types(),
	})
}

// GetGarmentSchema handles GET /api/v1/garments/:clothingType/schema - the
// measurement form definition for a garment type, so clients can render
// schema-driven forms instead of hard-coding field lists
func GetGarmentSchema(c *gin.Context) {
	garmentType, ok := garments.Normalize(c.Param("clothingType"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNKNOWN_CLOTHING_TYPE",
				"message": "Unrecognized clothing type: " + c.Param("clothingType"),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    garments.SchemaFor(garmentType),
	})
}
