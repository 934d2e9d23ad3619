// Genuity Mood API
//
// REST API for mood journaling, pattern detection, and mood prediction.
//
//	@title			Genuity Mood API
//	@version		1.0
//	@description	Log mood check-ins with activity and health context, detect mood patterns, forecast low-mood days, and track intervention effectiveness.
//
//	@BasePath	/v1
//
//	@tag.name			users
//	@tag.description	User management endpoints
//
//	@tag.name			mood-entries
//	@tag.description	Mood check-in logging endpoints
//
//	@tag.name			insights
//	@tag.description	Pattern detection and mood prediction endpoints
//
//	@tag.name			accountability
//	@tag.description	Follow-up check and effectiveness tracking endpoints
package main

import (
	"context"
	"log"
	"net/http"

	"github.com/SyntaxStrategist/genuity-ai/internal/api"
	"github.com/SyntaxStrategist/genuity-ai/internal/api/handler"
	"github.com/SyntaxStrategist/genuity-ai/internal/config"
	"github.com/SyntaxStrategist/genuity-ai/internal/domain"
	"github.com/SyntaxStrategist/genuity-ai/internal/langfuse"
	"github.com/SyntaxStrategist/genuity-ai/internal/llm"
	"github.com/SyntaxStrategist/genuity-ai/internal/repository"
	"github.com/SyntaxStrategist/genuity-ai/internal/seed"
	"github.com/SyntaxStrategist/genuity-ai/internal/service"
	"github.com/SyntaxStrategist/genuity-ai/internal/telemetry"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize OpenTelemetry tracing (no-op when Langfuse is not configured)
	ctx := context.Background()
	shutdownTracer, err := telemetry.InitTracer(ctx, cfg, "genuity-ai-api")
	if err != nil {
		log.Fatalf("Failed to initialize tracing: %v", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			log.Printf("Failed to shut down tracer: %v", err)
		}
	}()

	// Connect to database
	db, err := config.NewDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database schema
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.MoodEntry{},
		&domain.MoodPrediction{},
		&domain.AccountabilityCheck{},
		&domain.EffectivenessReport{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	if cfg.Seed {
		log.Println("Seeding database with sample data (SEED=true)...")
		if err := seed.Run(db); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	entryRepo := repository.NewMoodEntryRepository(db)
	predictionRepo := repository.NewPredictionRepository(db)
	accountabilityRepo := repository.NewAccountabilityRepository(db)
	effectivenessRepo := repository.NewEffectivenessRepository(db)

	// Initialize OpenAI client (may be nil if not configured)
	var interventionLLM llm.InterventionLLM
	if openaiClient := llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIInterventionModel); openaiClient != nil {
		if cfg.LangfuseInterventionPrompt != "" {
			prompt, err := langfuse.LoadPrompt(ctx, langfuse.PromptLoaderConfig{
				BaseURL:    cfg.LangfuseBaseURL,
				PublicKey:  cfg.LangfusePublicKey,
				SecretKey:  cfg.LangfuseSecretKey,
				PromptName: cfg.LangfuseInterventionPrompt,
				SavePath:   "prompts/intervention_system.txt",
			})
			if err != nil {
				log.Printf("Managed prompt %q unavailable, using built-in system prompt: %v", cfg.LangfuseInterventionPrompt, err)
			} else {
				openaiClient.SetSystemPrompt(prompt)
				log.Printf("Loaded intervention system prompt %q from Langfuse", cfg.LangfuseInterventionPrompt)
			}
		}
		interventionLLM = openaiClient
	} else {
		log.Println("Warning: OpenAI API key not configured, intervention plans will use the built-in template")
	}

	// Initialize Langfuse client (no-op when not configured)
	langfuseClient := langfuse.NewClient(langfuse.Config{
		BaseURL:     cfg.LangfuseBaseURL,
		PublicKey:   cfg.LangfusePublicKey,
		SecretKey:   cfg.LangfuseSecretKey,
		Environment: cfg.LangfuseEnv,
	})

	// Initialize services
	userService := service.NewUserService(userRepo)
	moodEntryService := service.NewMoodEntryService(entryRepo, userRepo)
	patternService := service.NewPatternService(entryRepo, userRepo)
	interventionService := service.NewInterventionService(interventionLLM)
	predictionService := service.NewPredictionService(entryRepo, userRepo, predictionRepo, interventionService, accountabilityRepo)
	accountabilityService := service.NewAccountabilityService(accountabilityRepo, effectivenessRepo, userRepo)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userService)
	moodEntryHandler := handler.NewMoodEntryHandler(moodEntryService)
	insightsHandler := handler.NewInsightsHandler(patternService, predictionService, langfuseClient)
	accountabilityHandler := handler.NewAccountabilityHandler(accountabilityService)

	// Setup router
	router := api.NewRouter(userHandler, moodEntryHandler, insightsHandler, accountabilityHandler)
	routerHandler := router.Setup()

	// Start server
	addr := ":" + cfg.Port
	log.Printf("Starting server on %s", addr)
	if err := http.ListenAndServe(addr, routerHandler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
