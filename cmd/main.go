package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/tmaziere/naturecamp-backend/internal/cache"
	"github.com/tmaziere/naturecamp-backend/internal/config"
	"github.com/tmaziere/naturecamp-backend/internal/db"
	"github.com/tmaziere/naturecamp-backend/internal/handlers"
	"github.com/tmaziere/naturecamp-backend/internal/logger"
	"github.com/tmaziere/naturecamp-backend/internal/middleware"
	"github.com/tmaziere/naturecamp-backend/internal/observability"
	"github.com/tmaziere/naturecamp-backend/internal/repos"
	"github.com/tmaziere/naturecamp-backend/internal/server"
	"github.com/tmaziere/naturecamp-backend/internal/services"
	"github.com/tmaziere/naturecamp-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Config
	log.Info("Loading configuration...")
	cfg, err := config.Load(log)
	if err != nil {
		log.Fatal("Could not load configuration", "error", err)
	}

	// Tracing
	shutdownOtel := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: "naturecamp-backend",
		Environment: cfg.Environment,
	})
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownOtel(ctx)
	}()

	// Database
	dbService, err := db.New(log)
	if err != nil {
		log.Fatal("Database init failed", "error", err)
	}
	if err := dbService.AutoMigrateAll(); err != nil {
		log.Fatal("Database auto migration failed", "error", err)
	}
	theDB := dbService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	cardRepo := repos.NewContentCardRepo(theDB, log)
	stageRepo := repos.NewStageRepo(theDB, log)
	programRepo := repos.NewProgramRecordRepo(theDB, log)
	completionRepo := repos.NewStageCompletionRepo(theDB, log)

	// Catalog seed (local development only; the catalog collaborator owns
	// these rows in production)
	if cfg.CatalogSeedFile != "" {
		if err := services.SeedCatalog(context.Background(), theDB, log, cardRepo, cfg.CatalogSeedFile); err != nil {
			log.Warn("Catalog seed failed", "error", err)
		}
	}

	// Completion cache tiers
	memoryCache := cache.NewMemoryCache()
	var redisCache cache.CompletionCache
	if rc, err := cache.NewRedisCache(log, cfg.RedisNamespace, cfg.CompletionTTL); err != nil {
		log.Warn("Redis cache unavailable, running on memory tier only", "error", err)
	} else {
		redisCache = rc
		defer rc.Close()
	}

	// Services
	log.Info("Setting up Services from main...")
	catalogService := services.NewCatalogService(theDB, log, cardRepo)
	stageService := services.NewStageService(theDB, log, stageRepo)
	builderService := services.NewBuilderService(theDB, log, stageRepo, cardRepo)
	programService := services.NewProgramService(theDB, log, cfg, stageRepo, cardRepo, programRepo)
	completionService := services.NewCompletionService(theDB, log, memoryCache, redisCache, completionRepo, programRepo)

	// Handlers
	log.Info("Setting up handlers from main...")
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	stageHandler := handlers.NewStageHandler(stageService)
	builderHandler := handlers.NewBuilderHandler(builderService)
	programHandler := handlers.NewProgramHandler(programService)
	completionHandler := handlers.NewCompletionHandler(completionService)

	// Middleware
	requestLog := middleware.NewRequestLogMiddleware(log)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		CORSOrigins:       cfg.CORSOrigins,
		EnableTracing:     utils.GetEnvAsBool("OTEL_ENABLED", false, log),
		RequestLog:        requestLog,
		CatalogHandler:    catalogHandler,
		StageHandler:      stageHandler,
		BuilderHandler:    builderHandler,
		ProgramHandler:    programHandler,
		CompletionHandler: completionHandler,
	})

	log.Info("Server listening", "port", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Error("Server failed", "error", err)
	}
}
