package main

import (
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/objetivatech/convergencia-empreendedora-sub000/checkout"
	"github.com/objetivatech/convergencia-empreendedora-sub000/config"
	"github.com/objetivatech/convergencia-empreendedora-sub000/gateway"
	"github.com/objetivatech/convergencia-empreendedora-sub000/handlers"
	"github.com/objetivatech/convergencia-empreendedora-sub000/models"
	"github.com/objetivatech/convergencia-empreendedora-sub000/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	// Database connection
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	// Auto migrate models
	if err := db.AutoMigrate(
		&models.User{},
		&models.UserRole{},
		&models.Plan{},
		&models.Transaction{},
		&models.UserSubscription{},
	); err != nil {
		log.Fatal("Failed to migrate database: ", err)
	}

	// Payment gateway client
	if cfg.Gateway.BaseURL == "" || cfg.Gateway.APIKey == "" {
		log.Fatal("gateway base_url and api_key must be set")
	}
	gatewayClient := gateway.NewClient(gateway.Config{
		BaseURL:           cfg.Gateway.BaseURL,
		APIKey:            cfg.Gateway.APIKey,
		Timeout:           cfg.Gateway.Timeout(),
		LookupMaxAttempts: cfg.Gateway.LookupMaxAttempts,
	})

	// Services and handlers
	store := repository.NewStore(db)
	checkoutService := checkout.NewService(gatewayClient, store)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	transactionsHandler := handlers.NewTransactionsHandler(db)

	// Create Fiber app
	app := fiber.New()

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
		AllowHeaders: "Content-Type, Authorization, X-User-ID",
	}))

	// Routes
	app.Get("/health", checkoutHandler.Health)
	app.Get("/plans", transactionsHandler.ListPlans)
	app.Post("/checkout", handlers.RequireUser(db), checkoutHandler.Checkout)
	app.Get("/payments/transactions", transactionsHandler.ListTransactions)
	app.Get("/payments/transactions/:id", transactionsHandler.GetTransaction)

	// Serve in the background so shutdown can drain in-flight checkouts.
	go func() {
		addr := ":" + strconv.Itoa(cfg.Server.Port)
		log.Printf("Server running on http://localhost%s", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
