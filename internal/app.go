package internal

import (
	"context"

	"github.com/apiarycd/memberships/internal/config"
	"github.com/apiarycd/memberships/internal/jobs"
	"github.com/apiarycd/memberships/internal/memberships"
	"github.com/apiarycd/memberships/internal/queue"
	"github.com/apiarycd/memberships/internal/server"
	"github.com/apiarycd/memberships/internal/storage"
	"github.com/apiarycd/memberships/internal/users"
	"github.com/apiarycd/memberships/pkg/openapifx"
	"github.com/capcom6/go-infra-fx/validator"
	"github.com/go-core-fx/fiberfx"
	"github.com/go-core-fx/healthfx"
	"github.com/go-core-fx/logger"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func Run() {
	fx.New(
		// CORE MODULES
		logger.Module(),
		logger.WithFxDefaultLogger(),
		healthfx.Module(),
		fiberfx.Module(),
		openapifx.Module(),
		validator.Module,
		//
		// APP MODULES
		config.Module(),
		storage.Module(),
		queue.Module(),
		server.Module(),
		//
		// BUSINESS MODULES
		fx.Provide(func() healthfx.Version { return healthfx.Version{Version: "0.1.0", ReleaseID: 1} }),
		users.Module(),
		jobs.Module(),
		memberships.Module(),
		//
		// LIFECYCLE MANAGEMENT
		fx.Invoke(func(lc fx.Lifecycle, logger *zap.Logger) {
			lc.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					logger.Info("memberships service starting up")
					return nil
				},
				OnStop: func(_ context.Context) error {
					logger.Info("memberships service shutting down")
					return nil
				},
			})
		}),
	).Run()
}
