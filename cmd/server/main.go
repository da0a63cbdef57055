package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"onepercent-backend/internal/ai"
	"onepercent-backend/internal/auth"
	"onepercent-backend/internal/config"
	"onepercent-backend/internal/content"
	"onepercent-backend/internal/inquiry"
	"onepercent-backend/internal/store"
	"onepercent-backend/internal/web"
)

func main() {
	ctx := context.Background()

	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Printf("Config loaded (port: %d, db: %s/%s)", cfg.Server.Port, cfg.Database.Driver, cfg.Database.Name)

	// 2. Connect to database
	db, err := store.New(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Database connected")

	// 3. Create tables and seed default content
	if err := db.Bootstrap(ctx); err != nil {
		log.Fatalf("Failed to bootstrap database: %v", err)
	}
	log.Println("Schema and seed data ready")

	// 4. Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: web.ErrorHandler,
	})
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))
	app.Use(logger.New(logger.Config{
		Format: "${time} ${status} ${method} ${path} ${latency}\n",
	}))

	// 5. Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// 6. Auth routes (no auth required)
	authHandler := auth.NewAuthHandler(db, cfg.JWTSecret)
	auth.RegisterAuthRoutes(app, authHandler)

	authMW := auth.AuthMiddleware(cfg.JWTSecret)

	// 7. Content routes (reads public, writes authenticated)
	repo := content.NewRepository(db)
	writer := content.NewWriter(db)
	contentHandler := content.NewHandler(repo, writer)
	content.RegisterRoutes(app, contentHandler, authMW)

	// 8. Inquiry routes (create public, admin operations authenticated)
	notifier := inquiry.NewNotifier(cfg.Email)
	if !notifier.Enabled() {
		log.Println("Email notifications disabled (no EmailJS credentials)")
	}
	inquiryHandler := inquiry.NewHandler(inquiry.NewStore(db), notifier)
	inquiry.RegisterRoutes(app, inquiryHandler, authMW)

	// 9. AI rewrite route
	provider := ai.NewProvider(cfg.AI.BaseURL, cfg.AI.APIKey, cfg.AI.Model)
	if !provider.Configured() {
		log.Println("AI rewrite disabled (no API key)")
	}
	ai.RegisterRoutes(app, ai.NewHandler(provider))

	// 10. Start server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Starting server on %s", addr)
	log.Fatal(app.Listen(addr))
}
