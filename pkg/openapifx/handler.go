package openapifx

import (
	"github.com/go-core-fx/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/swaggo/swag"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module provides a *Handler for the registered *swag.Spec.
func Module() fx.Option {
	return fx.Module(
		"openapi",
		logger.WithNamedLogger("openapi"),
		fx.Provide(New),
	)
}

// Handler serves the Swagger UI and the OpenAPI document of spec.
type Handler struct {
	spec   *swag.Spec
	config Config

	logger *zap.Logger
}

func New(spec *swag.Spec, config Config, logger *zap.Logger) *Handler {
	if config.PublicHost != "" {
		spec.Host = config.PublicHost
	}
	if config.PublicPath != "" {
		spec.BasePath = config.PublicPath
	}

	return &Handler{
		spec:   spec,
		config: config,

		logger: logger,
	}
}

func (h *Handler) Register(r fiber.Router) {
	if !h.config.Enabled {
		h.logger.Info("openapi docs disabled")
		return
	}

	h.logger.Info("serving openapi docs", zap.String("host", h.spec.Host), zap.String("base_path", h.spec.BasePath))
	r.Get("/*", swagger.HandlerDefault)
}
