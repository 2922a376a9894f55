package main

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/sharma-tailors/sharma-tailors-api/config"
	"github.com/sharma-tailors/sharma-tailors-api/controllers"
	"github.com/sharma-tailors/sharma-tailors-api/middleware"
	"github.com/sharma-tailors/sharma-tailors-api/models"
	"github.com/sharma-tailors/sharma-tailors-api/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	}
	logrus.Info("Starting Sharma Tailors API server...")

	if err := config.ConnectDatabase(); err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}

	db := config.GetDB()
	if err := db.AutoMigrate(&models.Customer{}, &models.Order{}, &models.OrderItem{}, &models.Measurement{}); err != nil {
		logrus.Fatalf("Failed to migrate database: %v", err)
	}
	logrus.Info("Database migration completed successfully")

	services.InitOrderService()

	if cfg.AWSS3Bucket != "" {
		s3Service, err := services.InitS3Service()
		if err != nil {
			logrus.Fatalf("Failed to initialize S3 service: %v", err)
		}
		services.InitBillArchiveService(s3Service)
		logrus.WithField("bucket", cfg.AWSS3Bucket).Info("Bill archiving enabled")
	} else {
		logrus.Warn("AWS_S3_BUCKET not set; bill archiving is disabled")
	}

	router := setupRouter()

	port := ":" + cfg.Port
	logrus.Infof("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		logrus.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter builds the Gin engine with all middleware and API routes
func setupRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(cors.Default())

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)
		v1.GET("/database/status", databaseStatus)

		v1.POST("/customers", controllers.CreateCustomer)
		v1.GET("/customers", controllers.ListCustomers)
		v1.GET("/customers/:id", controllers.GetCustomer)
		v1.PUT("/customers/:id/measurements/:clothingType", controllers.UpsertMeasurement)
		v1.GET("/customers/:id/measurements", controllers.ListMeasurements)

		v1.GET("/garments", controllers.ListGarmentTypes)
		v1.GET("/garments/:clothingType/schema", controllers.GetGarmentSchema)

		v1.POST("/orders", controllers.CreateOrder)
		v1.GET("/orders", controllers.ListOrders)
		v1.GET("/orders/:id", controllers.GetOrder)
		v1.POST("/orders/:id/items/retry", controllers.RetryOrderItems)
		v1.PATCH("/orders/:id/status", controllers.UpdateOrderStatus)
		v1.GET("/orders/:id/bill", controllers.GetBill)
		v1.POST("/orders/:id/bill/archive", controllers.ArchiveBill)
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Sharma Tailors API is running",
	})
}

// databaseStatus checks database connectivity
func databaseStatus(c *gin.Context) {
	db := config.GetDB()

	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get database instance",
			},
		})
		return
	}

	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_CONNECTION_ERROR",
				"message": "Database connection failed",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connected",
	})
}
