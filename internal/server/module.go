package server

import (
	"github.com/apiarycd/memberships/internal/server/docs"
	"github.com/apiarycd/memberships/internal/server/handlers/jobs"
	"github.com/apiarycd/memberships/internal/server/handlers/memberships"
	"github.com/apiarycd/memberships/internal/server/handlers/users"
	"github.com/apiarycd/memberships/pkg/openapifx"
	"github.com/go-core-fx/fiberfx"
	"github.com/go-core-fx/fiberfx/handler"
	"github.com/go-core-fx/fiberfx/health"
	"github.com/go-core-fx/fiberfx/validation"
	"github.com/go-core-fx/logger"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const apiPrefix = "/api/v1"

func Module() fx.Option {
	return fx.Module(
		"server",
		logger.WithNamedLogger("server"),

		fx.Provide(newOptions),
		fx.Supply(docs.SwaggerInfo),

		fx.Provide(
			fx.Annotate(health.NewHandler, fx.ResultTags(`name:"health-handler"`)), fx.Private,
			asAPIHandler(memberships.NewHandler), fx.Private,
			asAPIHandler(users.NewHandler), fx.Private,
			asAPIHandler(jobs.NewHandler), fx.Private,
		),

		fx.Invoke(
			fx.Annotate(
				registerRoutes,
				fx.ParamTags(`name:"health-handler"`, ``, `group:"handlers"`),
			),
		),
	)
}

func newOptions(log *zap.Logger) fiberfx.Options {
	opts := fiberfx.Options{}
	opts.WithErrorHandler(fiberfx.NewJSONErrorHandler(log))
	opts.WithMetrics()
	return opts
}

func asAPIHandler(constructor any) any {
	return fx.Annotate(constructor, fx.ResultTags(`group:"handlers"`))
}

// registerRoutes mounts health checks at the root and everything else under
// the versioned API prefix.
func registerRoutes(
	healthHandler handler.Handler,
	openapiHandler *openapifx.Handler,
	handlers []handler.Handler,
	app *fiber.App,
	log *zap.Logger,
) {
	healthHandler.Register(app)

	api := app.Group(apiPrefix)
	openapiHandler.Register(api.Group("/docs"))

	api.Use(validation.Middleware)
	for _, h := range handlers {
		h.Register(api)
	}

	log.Info("routes registered", zap.String("prefix", apiPrefix), zap.Int("handlers", len(handlers)))
}
