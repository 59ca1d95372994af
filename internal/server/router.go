package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/tmaziere/naturecamp-backend/internal/handlers"
	"github.com/tmaziere/naturecamp-backend/internal/middleware"
)

type RouterConfig struct {
	CORSOrigins       []string
	EnableTracing     bool
	RequestLog        *middleware.RequestLogMiddleware
	CatalogHandler    *handlers.CatalogHandler
	StageHandler      *handlers.StageHandler
	BuilderHandler    *handlers.BuilderHandler
	ProgramHandler    *handlers.ProgramHandler
	CompletionHandler *handlers.CompletionHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))
	if cfg.EnableTracing {
		router.Use(otelgin.Middleware("naturecamp-backend"))
	}
	if cfg.RequestLog != nil {
		router.Use(cfg.RequestLog.Handle())
	}

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	{
		// Catalog (read-only)
		api.GET("/cards", cfg.CatalogHandler.ListCards)

		// Stages
		api.GET("/stages", cfg.StageHandler.ListStages)
		api.POST("/stages", cfg.StageHandler.CreateStage)
		api.GET("/stages/:id", cfg.StageHandler.GetStage)

		// Builder sessions
		api.POST("/builder/sessions", cfg.BuilderHandler.StartSession)
		api.GET("/builder/sessions/:id/candidates", cfg.BuilderHandler.Candidates)
		api.PUT("/builder/sessions/:id/filters", cfg.BuilderHandler.SetFilters)
		api.POST("/builder/sessions/:id/select", cfg.BuilderHandler.Select)
		api.POST("/builder/sessions/:id/deselect", cfg.BuilderHandler.Deselect)
		api.POST("/builder/sessions/:id/reorder", cfg.BuilderHandler.Reorder)

		// Program
		api.POST("/stages/:id/program", cfg.ProgramHandler.SaveProgram)
		api.GET("/stages/:id/program", cfg.ProgramHandler.GetProgram)

		// Completion
		api.GET("/stages/:id/completion", cfg.CompletionHandler.GetCompletion)
		api.POST("/stages/:id/completion/toggle", cfg.CompletionHandler.Toggle)
	}

	return router
}
