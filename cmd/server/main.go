package main

import (
	"log"
	"time"

	"production_control/internal/config"
	"production_control/internal/database"
	"production_control/internal/handlers"
	"production_control/internal/migrations"
	"production_control/internal/models"
	"production_control/internal/redis"
	"production_control/internal/repository"
	"production_control/internal/services"
	"production_control/pkg/masterdata"
	"production_control/pkg/simal"
	"production_control/pkg/stockapi"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	if err := migrations.RunMigrations(db, cfg.LotSizeThreshold); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize Redis
	redisClient, err := redis.Initialize(cfg.RedisURL)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	// External collaborators
	stockClient := stockapi.NewClient(cfg.StockAPIURL)
	masterDataClient := masterdata.NewClient(cfg.MasterDataAPIURL)
	simalClient := simal.NewClient(cfg.SimALAPIURL)

	// Initialize repositories
	customerRepo := repository.NewCustomerOrderRepository(db)
	warehouseRepo := repository.NewWarehouseOrderRepository(db)
	productionRepo := repository.NewProductionOrderRepository(db)
	controlRepo := repository.NewControlOrderRepository(db)
	workstationRepo := repository.NewWorkstationOrderRepository(db)
	lineItemRepo := repository.NewLineItemRepository(db)
	settingRepo := repository.NewSettingRepository(db)
	eventRepo := repository.NewEventRepository(db)
	webhookRepo := repository.NewWebhookRepository(db)

	// Initialize services
	cacheTTL := time.Duration(cfg.CacheTTL) * time.Second
	settingsService := services.NewSettingsService(settingRepo, redisClient, cacheTTL, cfg.LotSizeThreshold)
	stockService := services.NewStockService(stockClient, cfg.RawStoreID, cfg.ModuleStoreID, cfg.GoodsStoreID)
	bomService := services.NewBOMService(masterDataClient)
	scenarioService := services.NewScenarioService(stockService, settingsService)
	webhookService := services.NewWebhookService(eventRepo, webhookRepo)
	schedulerService := services.NewSchedulerService(simalClient)
	jobService := services.NewJobService(redisClient, time.Duration(cfg.JobTTL)*time.Second)
	fulfillmentService := services.NewFulfillmentService(
		customerRepo, warehouseRepo, productionRepo, controlRepo, workstationRepo, lineItemRepo,
		scenarioService, stockService, bomService, webhookService, schedulerService,
		cfg.ModuleStoreID, cfg.GoodsStoreID,
	)
	completionService := services.NewCompletionService(
		customerRepo, warehouseRepo, productionRepo, controlRepo, workstationRepo,
		stockService, webhookService, schedulerService,
		cfg.ModuleStoreID, cfg.GoodsStoreID,
	)
	queryService := services.NewQueryService(warehouseRepo, productionRepo, controlRepo, workstationRepo, lineItemRepo)

	// Initialize handlers
	orderHandler := handlers.NewOrderHandler(fulfillmentService, completionService, jobService, webhookService)
	queryHandler := handlers.NewQueryHandler(queryService)
	jobHandler := handlers.NewJobHandler(jobService)
	webhookHandler := handlers.NewWebhookHandler(webhookService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)

	// Setup routes
	router := gin.Default()

	api := router.Group("/api")
	{
		customer := api.Group("/orders/customer")
		{
			customer.POST("", orderHandler.CreateCustomerOrder)
			customer.GET("", orderHandler.ListCustomerOrders)
			customer.GET("/:id", orderHandler.GetCustomerOrder)
			customer.GET("/:id/scenario", orderHandler.CheckScenario)
			customer.GET("/:id/events", orderHandler.GetOrderEvents(models.TypeCustomerOrder))
			customer.POST("/:id/confirm", orderHandler.ConfirmCustomerOrder)
			customer.POST("/:id/fulfill", orderHandler.FulfillCustomerOrder)
			customer.POST("/:id/cancel", orderHandler.CancelCustomerOrder)
			customer.POST("/:id/halt", orderHandler.Transition(models.TypeCustomerOrder, models.StatusHalted))
			customer.POST("/:id/resume", orderHandler.Transition(models.TypeCustomerOrder, models.StatusInProgress))
		}

		warehouse := api.Group("/orders/warehouse")
		{
			warehouse.GET("", queryHandler.ListWarehouseOrders)
			warehouse.GET("/:id", queryHandler.GetWarehouseOrder)
			warehouse.GET("/:id/events", orderHandler.GetOrderEvents(models.TypeWarehouseOrder))
			warehouse.POST("/:id/confirm", orderHandler.ConfirmWarehouseOrder)
			warehouse.POST("/:id/halt", orderHandler.Transition(models.TypeWarehouseOrder, models.StatusHalted))
			warehouse.POST("/:id/resume", orderHandler.Transition(models.TypeWarehouseOrder, models.StatusInProgress))
			warehouse.POST("/:id/cancel", orderHandler.Transition(models.TypeWarehouseOrder, models.StatusCancelled))
		}

		production := api.Group("/orders/production")
		{
			production.GET("", queryHandler.ListProductionOrders)
			production.GET("/:id", queryHandler.GetProductionOrder)
			production.GET("/:id/events", orderHandler.GetOrderEvents(models.TypeProductionOrder))
			production.POST("/:id/dispatch", orderHandler.DispatchProductionOrder)
			production.POST("/:id/halt", orderHandler.Transition(models.TypeProductionOrder, models.StatusHalted))
			production.POST("/:id/resume", orderHandler.Transition(models.TypeProductionOrder, models.StatusInProgress))
			production.POST("/:id/cancel", orderHandler.Transition(models.TypeProductionOrder, models.StatusCancelled))
		}

		control := api.Group("/orders/control")
		{
			control.GET("", queryHandler.ListControlOrders)
			control.GET("/:id", queryHandler.GetControlOrder)
			control.GET("/:id/events", orderHandler.GetOrderEvents(models.TypeControlOrder))
			control.POST("/:id/halt", orderHandler.Transition(models.TypeControlOrder, models.StatusHalted))
			control.POST("/:id/resume", orderHandler.Transition(models.TypeControlOrder, models.StatusInProgress))
			control.POST("/:id/cancel", orderHandler.Transition(models.TypeControlOrder, models.StatusCancelled))
		}

		workstation := api.Group("/orders/workstation")
		{
			workstation.GET("", queryHandler.ListWorkstationOrders)
			workstation.GET("/:id", queryHandler.GetWorkstationOrder)
			workstation.GET("/:id/events", orderHandler.GetOrderEvents(models.TypeWorkstationOrder))
			workstation.POST("/:id/start", orderHandler.StartWorkstationOrder)
			workstation.POST("/:id/complete", orderHandler.CompleteWorkstationOrder)
			workstation.POST("/:id/halt", orderHandler.Transition(models.TypeWorkstationOrder, models.StatusHalted))
			workstation.POST("/:id/resume", orderHandler.Transition(models.TypeWorkstationOrder, models.StatusInProgress))
			workstation.POST("/:id/cancel", orderHandler.Transition(models.TypeWorkstationOrder, models.StatusCancelled))
		}

		api.GET("/jobs/:job_id", jobHandler.GetJob)

		api.POST("/webhooks", webhookHandler.CreateSubscription)
		api.GET("/webhooks", webhookHandler.ListSubscriptions)
		api.DELETE("/webhooks/:id", webhookHandler.DeleteSubscription)

		api.GET("/settings/lot-size-threshold", settingsHandler.GetLotSizeThreshold)
		api.PUT("/settings/lot-size-threshold", settingsHandler.SetLotSizeThreshold)
	}

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
