package main

import (
	"os"
	"os/signal"
	"syscall"

	"go-stockpilot/internal/forecast"
	"go-stockpilot/internal/handler"
	"go-stockpilot/internal/importer"
	"go-stockpilot/internal/middleware"
	"go-stockpilot/internal/model"
	"go-stockpilot/internal/repository"
	"go-stockpilot/internal/service"
	"go-stockpilot/internal/ws"
	"go-stockpilot/pkg/database"
	"go-stockpilot/pkg/logger"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// 1. Load Env (.env is optional, system env is enough)
	_ = godotenv.Load()

	log := logger.New()
	defer log.Sync()

	// 2. Setup Database
	db := database.ConnectDB()
	if err := db.AutoMigrate(&model.User{}, &model.Category{}, &model.InventoryItem{}, &model.Transaction{}); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}

	// 3. WebSocket Hub
	wsHub := ws.NewHub(log)
	go wsHub.Run()

	// 4. Dependency Injection (Wiring Layers)
	userRepo := repository.NewUserRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	itemRepo := repository.NewItemRepo(db)
	txRepo := repository.NewTransactionRepo(db)

	authService := service.NewAuthService(userRepo)
	invService := service.NewInventoryService(itemRepo, txRepo, db, wsHub, log)
	catService := service.NewCategoryService(categoryRepo)
	expiryService := service.NewExpiryService(itemRepo)
	dashService := service.NewDashboardService(txRepo)

	modelDir := os.Getenv("FORECAST_MODEL_DIR")
	if modelDir == "" {
		modelDir = "models"
	}
	forecastStore := forecast.NewStore(modelDir)
	csvImporter := importer.New(db, log)

	authHandler := handler.NewAuthHandler(authService)
	invHandler := handler.NewInventoryHandler(invService)
	catHandler := handler.NewCategoryHandler(catService)
	reportHandler := handler.NewReportHandler(expiryService)
	dashHandler := handler.NewDashboardHandler(dashService)
	forecastHandler := handler.NewForecastHandler(forecastStore)
	importHandler := handler.NewImportHandler(csvImporter)

	// 5. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "StockPilot v1.0",
	})

	app.Use(fiberlogger.New()) // Request logging
	app.Use(recover.New())     // Panic recovery
	app.Use(cors.New())        // CORS

	// 6. Routes
	api := app.Group("/api/v1")

	// Public
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	// Everything below requires authentication
	protected := api.Group("", middleware.RequireAuth(userRepo))

	protected.Get("/items", invHandler.GetItems)
	protected.Post("/items", invHandler.CreateItem)
	protected.Get("/items/:id", invHandler.GetItem)
	protected.Put("/items/:id", invHandler.UpdateItem)
	protected.Delete("/items/:id", invHandler.DeleteItem)

	protected.Get("/categories", catHandler.GetCategories)
	protected.Post("/categories", catHandler.CreateCategory)
	protected.Get("/categories/:id", catHandler.GetCategory)
	protected.Put("/categories/:id", catHandler.UpdateCategory)
	protected.Delete("/categories/:id", catHandler.DeleteCategory)

	protected.Get("/transactions", invHandler.GetTransactions)
	protected.Get("/transactions/:id", invHandler.GetTransaction)
	protected.Post("/transactions", invHandler.CreateTransaction)

	protected.Get("/reports/expiry", reportHandler.GetExpiryReport)

	protected.Get("/dashboard/stats", dashHandler.GetDashboardStats)
	protected.Get("/dashboard/stock-movement", dashHandler.GetStockMovement)
	protected.Get("/dashboard/financial-summary", dashHandler.GetFinancialSummary)

	protected.Get("/forecast/:sku", forecastHandler.GetForecast)

	protected.Post("/import", importHandler.ImportCSV)

	// WebSocket
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 7. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		log.Info("server listening", zap.String("port", port))
		if err := app.Listen(":" + port); err != nil {
			log.Fatal("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		log.Fatal("forced shutdown", zap.Error(err))
	}
	log.Info("server exited")
}
