package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sharma-tailors/sharma-tailors-api/billing"
	"github.com/sharma-tailors/sharma-tailors-api/services"
)

// GetBill handles GET /api/v1/orders/:id/bill - projects the stored order into
// the printable bill document. Re-fetching the bill for an unchanged order
// always produces the same document.
func GetBill(c *gin.Context) {
	order, ok := loadOrder(c)
	if !ok {
		return
	}

	invoice := services.InvoiceFromOrder(order)
	doc := billing.Project(invoice, time.Now())

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    doc,
	})
}

// ArchiveBill handles POST /api/v1/orders/:id/bill/archive - renders the bill
// document and uploads a JSON snapshot to S3, returning the storage key and a
// presigned URL for sharing.
func ArchiveBill(c *gin.Context) {
	order, ok := loadOrder(c)
	if !ok {
		return
	}

	archiveService := services.GetBillArchiveService()
	if archiveService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ARCHIVE_UNAVAILABLE",
				"message": "Bill archiving is not configured",
			},
		})
		return
	}

	invoice := services.InvoiceFromOrder(order)
	doc := billing.Project(invoice, time.Now())

	key, err := archiveService.ArchiveBill(order.InvoiceNumber, doc)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ARCHIVE_FAILED",
				"message": "Failed to archive bill",
			},
		})
		return
	}

	url, err := archiveService.GetBillURL(key)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ARCHIVE_FAILED",
				"message": "Bill was archived but a URL could not be generated",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"invoice_number": order.InvoiceNumber,
			"key":            key,
			"url":            url,
		},
	})
}
