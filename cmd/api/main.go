package main

import (
	"fmt"
	"net/http"
	"os"

	"spendboard/internal/cache"
	"spendboard/internal/config"
	"spendboard/internal/handlers"
	"spendboard/internal/logger"
	"spendboard/internal/middleware"
	"spendboard/internal/services"
	"spendboard/internal/store"
	"spendboard/internal/upbank"
	"spendboard/internal/validator"

	"github.com/gin-gonic/gin"
)

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Register custom request validators
	validator.Register()

	// Stores over the two workbooks; one shared pipeline cache
	spendingStore := store.NewSpendingStore(appConfig.SpendingWorkbookPath)
	incomeStore := store.NewIncomeStore(appConfig.IncomeWorkbookPath)
	pipelineCache := cache.New()

	// Transaction service client
	httpClient := &http.Client{Timeout: appConfig.UpbankTimeout}
	upbankClient := upbank.NewClient(appConfig.UpbankURL, appConfig.UpbankAccountID, httpClient)

	// Initialize services
	spendingService := services.NewSpendingService(spendingStore, pipelineCache)
	ledgerService := services.NewLedgerService(spendingStore, pipelineCache)
	importService := services.NewImportService(upbankClient, spendingService, pipelineCache)
	incomeService := services.NewIncomeService(incomeStore, pipelineCache)
	reportService := services.NewReportService(spendingService)

	// Initialize handlers
	spendingHandler := handlers.NewSpendingHandler(reportService, ledgerService)
	importHandler := handlers.NewImportHandler(importService)
	incomeHandler := handlers.NewIncomeHandler(incomeService)
	refreshHandler := handlers.NewRefreshHandler(pipelineCache)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Spending views and mutations
	spending := v1.Group("/spending")
	spending.GET("", spendingHandler.List)
	spending.GET("/summary", spendingHandler.Summary)
	spending.GET("/breakdown", spendingHandler.Breakdown)
	spending.GET("/categories", spendingHandler.Categories)
	spending.POST("", spendingHandler.Create)
	spending.PUT("/:id", spendingHandler.Update)
	spending.DELETE("/:id", spendingHandler.Delete)
	spending.POST("/categorise", spendingHandler.Categorise)

	// Bank transaction reconciliation
	v1.GET("/transactions/uncategorised", importHandler.Uncategorised)

	// Income views and mutations, and deductions
	income := v1.Group("/income")
	income.GET("", incomeHandler.List)
	income.GET("/summary", incomeHandler.Summary)
	income.POST("", incomeHandler.Create)
	income.PUT("/:id", incomeHandler.Update)
	income.DELETE("/:id", incomeHandler.Delete)
	v1.GET("/deductions", incomeHandler.Deductions)

	// Cache invalidation ("Refresh Data")
	v1.POST("/refresh", refreshHandler.Refresh)

	log.Infof("Starting spendboard server on port %s", appConfig.Port)
	log.Infof("Spending workbook: %s", appConfig.SpendingWorkbookPath)
	log.Infof("Income workbook: %s", appConfig.IncomeWorkbookPath)
	return router.Run(":" + appConfig.Port)
}
