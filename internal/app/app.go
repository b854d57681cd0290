// Package app assembles the application from its parts.
package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"prd-builder-api/internal/application/autosave"
	"prd-builder-api/internal/application/generation"
	projectapp "prd-builder-api/internal/application/project"
	"prd-builder-api/internal/config"
	"prd-builder-api/internal/infrastructure/llm"
	"prd-builder-api/internal/infrastructure/persistence/postgres"
	"prd-builder-api/internal/infrastructure/persistence/redis"
	"prd-builder-api/internal/interfaces/http/handler"
	"prd-builder-api/internal/interfaces/http/middleware"
	"prd-builder-api/internal/interfaces/http/router"
	"prd-builder-api/internal/workflow/prompt"
	"prd-builder-api/pkg/logger"
)

// App holds the assembled service and its long-lived resources.
type App struct {
	router    *router.Router
	debouncer *autosave.Debouncer
	pg        *postgres.Client
	redis     *redis.Client
}

// New builds the full dependency graph from configuration.
//
// Redis is optional: if it cannot be reached the result cache and rate
// limiter are simply disabled, which keeps local development to a
// single Postgres dependency.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	pg, err := postgres.NewClient(&cfg.Database.Postgres)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	redisClient, err := redis.NewClient(&cfg.Cache.Redis)
	if err != nil {
		logger.Warn(ctx, "redis unavailable, result cache and rate limiting disabled", "error", err)
		redisClient = nil
	}

	txManager := postgres.NewTxManager(pg)
	projectRepo := postgres.NewProjectRepository(pg)
	versionRepo := postgres.NewVersionRepository(pg)
	collaboratorRepo := postgres.NewCollaboratorRepository(pg)
	commentRepo := postgres.NewCommentRepository(pg)
	activityRepo := postgres.NewActivityRepository(pg)
	profileRepo := postgres.NewProfileRepository(pg)

	registry := prompt.NewRegistry()
	llmRouter := llm.NewRouter(&cfg.LLM, nil)

	resultCache := redis.NewResultCache(redisClient, cfg.LLM.ResultCacheTTL)
	generationSvc := generation.NewService(registry, llmRouter, resultCache)

	projectSvc := projectapp.NewService(
		txManager,
		projectRepo,
		versionRepo,
		collaboratorRepo,
		commentRepo,
		activityRepo,
		profileRepo,
		registry,
	)

	debouncer := autosave.NewDebouncer(projectRepo, cfg.Autosave.Debounce)

	var limiter middleware.RateLimiter
	if redisClient != nil {
		limiter = middleware.NewRedisRateLimiter(redisClient.Raw())
	}

	handlers := router.Handlers{
		Health:       handler.NewHealthHandler(pg, redisClient),
		Generation:   handler.NewGenerationHandler(generationSvc, projectSvc),
		Project:      handler.NewProjectHandler(projectSvc, debouncer),
		Version:      handler.NewVersionHandler(projectSvc),
		Collaborator: handler.NewCollaboratorHandler(projectSvc),
		Comment:      handler.NewCommentHandler(projectSvc),
		Activity:     handler.NewActivityHandler(projectSvc),
		RateLimiter:  limiter,
	}

	return &App{
		router:    router.New(cfg, handlers),
		debouncer: debouncer,
		pg:        pg,
		redis:     redisClient,
	}, nil
}

// Engine returns the HTTP handler to serve.
func (a *App) Engine() *gin.Engine {
	return a.router.Engine()
}

// Cleanup flushes pending autosaves and closes the clients. Call it
// after the HTTP server has stopped accepting requests.
func (a *App) Cleanup(ctx context.Context) {
	a.debouncer.Flush()

	if err := a.pg.Close(); err != nil {
		logger.Error(ctx, "failed to close postgres", err)
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			logger.Error(ctx, "failed to close redis", err)
		}
	}
}
