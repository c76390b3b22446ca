package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"google.golang.org/api/option"

	"certcraft/api-gateway/config"
	"certcraft/api-gateway/handlers"
	"certcraft/api-gateway/internal/store"
	"certcraft/api-gateway/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := config.NewLogger()

	gateway, err := buildStore(cfg)
	if err != nil {
		logger.Fatalf("Failed to initialize %s store: %v", cfg.StoreBackend, err)
	}
	logger.WithField("backend", cfg.StoreBackend).Info("Template store initialized")

	h := handlers.NewApplicationHandler(logger, gateway)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.RequestLogger(logger))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "ok",
			"message": "API Gateway is healthy",
		})
	})

	apiV1 := app.Group("/api/v1", middleware.RequireAuth(cfg.SupabaseJWTSecret, logger))

	// Spreadsheet import
	apiV1.Post("/spreadsheets/import", h.ImportSpreadsheet)

	// Template routes
	apiV1.Post("/templates", h.CreateTemplate)
	apiV1.Get("/templates", h.ListTemplates)
	apiV1.Delete("/templates/:id", h.DeleteTemplate)

	// Certificate generation sessions
	sessions := apiV1.Group("/generate/sessions")
	sessions.Post("", h.OpenSession)
	sessions.Post("/:id/search", h.SearchSessionRows)
	sessions.Post("/:id/rows/:index", h.SelectSessionRow)
	sessions.Patch("/:id/fields", h.SetSessionField)
	sessions.Get("/:id/preview", h.PreviewSession)
	sessions.Post("/:id/export", h.ExportSession)
	sessions.Delete("/:id", h.CloseSession)

	logger.Infof("Starting API Gateway on port %s...", cfg.Port)
	logger.Fatal(app.Listen(":" + cfg.Port))
}

// buildStore picks the persistence backend from configuration. The three
// implementations are interchangeable behind the same gateway contract.
func buildStore(cfg config.Config) (store.Gateway, error) {
	switch cfg.StoreBackend {
	case config.BackendSupabase:
		client, err := config.NewSupabaseClient(cfg)
		if err != nil {
			return nil, err
		}
		return store.NewSupabase(client), nil
	case config.BackendSheets:
		ctx := context.Background()
		var opts []option.ClientOption
		if cfg.GoogleCredentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(cfg.GoogleCredentialsFile))
		}
		sheetStore, err := store.NewSheetStore(ctx, cfg.SpreadsheetID, opts...)
		if err != nil {
			return nil, err
		}
		if err := sheetStore.EnsureSheet(ctx); err != nil {
			return nil, err
		}
		return sheetStore, nil
	default:
		return store.NewMemory(), nil
	}
}
