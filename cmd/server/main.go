// Package main is the entry point for the vessel-inspection HTTP service.
// It wires configuration, the database pool, the storage adapter and all
// HTTP routes. Schema migrations are NOT run here; use cmd/migrate.
package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/apperr"
	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/config"
	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/database"
	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/handlers"
	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/logging"
	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/middleware"
	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/services"
	"github.com/Wuelliton96/Vessel-Inspection-sub001/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logging.NewLogger()
	ctx := context.Background()

	db, err := database.Connect(ctx, database.Config{URL: cfg.DatabaseURL})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	logger.Info("database connected")

	store, err := storage.New(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to initialize storage adapter: %v", err)
	}
	logger.Info("storage strategy: " + cfg.StorageStrategy)

	// Services
	surveyService := services.NewSurveyService(db, logger)
	checklistService := services.NewChecklistService(db, logger)
	photoService := services.NewPhotoService(db, store, logger)
	templateService := services.NewTemplateService(db, logger)
	insurerService := services.NewInsurerService(db, logger)

	// Handlers
	surveyHandler := handlers.NewSurveyHandler(surveyService)
	checklistHandler := handlers.NewChecklistHandler(checklistService)
	photoHandler := handlers.NewPhotoHandler(photoService)
	templateHandler := handlers.NewTemplateHandler(templateService)
	insurerHandler := handlers.NewInsurerHandler(insurerService)

	app := fiber.New(fiber.Config{
		// Upload cap plus headroom for the other multipart fields.
		BodyLimit:    int(cfg.MaxUploadBytes) + 1024*1024,
		ErrorHandler: apperr.Handler,
	})

	// Panic recovery first, then request logging.
	app.Use(recover.New())
	app.Use(middleware.RequestLogger(logger))

	// Field devices batch-upload photos; allow bursts, throttle sustained abuse.
	uploadLimiter := middleware.NewUploadLimiter(30, 2*time.Second)
	defer uploadLimiter.Stop()

	app.Get("/healthz", func(c *fiber.Ctx) error {
		if err := db.Ping(c.Context()); err != nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, "database unreachable")
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Surveys: eligibility-gated creation with checklist snapshot.
	app.Post("/surveys", surveyHandler.Create)
	app.Get("/surveys/:id", surveyHandler.Get)
	app.Patch("/surveys/:id/status", surveyHandler.UpdateStatus)
	app.Get("/surveys/:id/checklist", checklistHandler.ListBySurvey)
	app.Get("/surveys/:id/photos", photoHandler.ListBySurvey)

	// Checklist-item state machine.
	app.Patch("/checklist-items/:id/status", checklistHandler.UpdateStatus)

	// Photos: upload-and-bind, viewing, deletion.
	app.Post("/photos", uploadLimiter.Handler(), photoHandler.Upload)
	app.Get("/photos/:id", photoHandler.Get)
	app.Get("/photos/:id/image", photoHandler.Image)
	app.Delete("/photos/:id", photoHandler.Delete)
	app.Get("/photo-types", photoHandler.ListTypes)

	// Insurer coverage, the same set the survey eligibility gate checks.
	app.Get("/insurers/:id", insurerHandler.Get)

	// Template catalog administration.
	app.Put("/templates/:category", templateHandler.Upsert)
	app.Get("/templates/:category", templateHandler.Get)
	app.Delete("/templates/:category", templateHandler.Deactivate)

	logger.Info("server listening on port " + cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
