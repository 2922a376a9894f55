package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sharma-tailors/sharma-tailors-api/config"
	"github.com/sharma-tailors/sharma-tailors-api/models"
	"github.com/sharma-tailors/sharma-tailors-api/utils"
)

// CreateCustomerRequest represents the request body for creating a customer
type CreateCustomerRequest struct {
	Name    string `json:"name" binding:"required"`
	Mobile  string `json:"mobile" binding:"required"`
	Email   string `json:"email" binding:"omitempty,email"`
	Address string `json:"address"`
}

// CreateCustomer handles POST /api/v1/customers - registers a new customer
func CreateCustomer(c *gin.Context) {
	var req CreateCustomerRequest
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

	customer := models.Customer{
		Name:    req.Name,
		Mobile:  req.Mobile,
		Email:   req.Email,
		Address: req.Address,
	}

	db := config.GetDB()
	if err := db.Create(&customer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create customer",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    customer,
	})
}

// ListCustomers handles GET /api/v1/customers - lists customers, newest first.
// An optional ?q= filter matches against name or mobile.
func ListCustomers(c *gin.Context) {
	db := config.GetDB()
	pagination := utils.ParsePagination(c)

	query := db.Model(&models.Customer{})
	if q := c.Query("q"); q != "" {
		like := "%" + q + "%"
		query = query.Where("name LIKE ? OR mobile LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to count customers",
			},
		})
		return
	}

	var customers []models.Customer
	if err := query.Order("created_at DESC").
		Limit(pagination.Limit).Offset(pagination.Offset()).
		Find(&customers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to list customers",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       customers,
		"pagination": pagination.Meta(total),
	})
}

// GetCustomer handles GET /api/v1/customers/:id - fetches one customer
func GetCustomer(c *gin.Context) {
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

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    customer,
	})
}
