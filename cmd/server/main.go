package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/samsarastore/samsara/internal/api"
	v1 "github.com/samsarastore/samsara/internal/api/v1"
	"github.com/samsarastore/samsara/internal/cache"
	"github.com/samsarastore/samsara/internal/config"
	"github.com/samsarastore/samsara/internal/logger"
	"github.com/samsarastore/samsara/internal/postgres"
	"github.com/samsarastore/samsara/internal/repository"
	"github.com/samsarastore/samsara/internal/service"
	"go.uber.org/fx"
)

// @title Samsara Cancellation Eligibility API
// @version 1.0
// @description Subscription cancellation eligibility service
// @BasePath /v1

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	app := fx.New(
		fx.Provide(
			config.NewConfig,
			logger.NewLogger,
			postgres.NewDB,
			newCache,
			repository.NewRepositories,
			newServiceParams,
			service.NewCancellationService,
			newHandlers,
			api.NewRouter,
		),
		fx.Invoke(startServer),
	)

	app.Run()
}

func newCache(cfg *config.Configuration) cache.Cache {
	return cache.NewInMemoryCache(cfg.Cache.Enabled)
}

func newServiceParams(
	cfg *config.Configuration,
	log *logger.Logger,
	c cache.Cache,
	repos repository.Repositories,
) service.ServiceParams {
	return service.ServiceParams{
		Logger:         log,
		Config:         cfg,
		Cache:          c,
		SubRepo:        repos.Subscription,
		ProductRepo:    repos.Product,
		PaymentRepo:    repos.Payment,
		PolicyMetaRepo: repos.PolicyMeta,
	}
}

func newHandlers(cancellation service.CancellationService, log *logger.Logger) api.Handlers {
	return api.Handlers{
		Health:      v1.NewHealthHandler(),
		Eligibility: v1.NewEligibilityHandler(cancellation, log),
	}
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	router *gin.Engine,
	db *sqlx.DB,
	log *logger.Logger,
) {
	srv := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting server", "address", cfg.Server.Address)
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatalf("server failed: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Infow("stopping server")
			if err := srv.Shutdown(ctx); err != nil {
				return err
			}
			return db.Close()
		},
	})
}
