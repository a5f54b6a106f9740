package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/go-core-fx/logger"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func Module() fx.Option {
	return fx.Module(
		"storage",
		logger.WithNamedLogger("storage"),
		fx.Provide(func() (*Metrics, error) {
			return NewMetrics(prometheus.DefaultRegisterer)
		}, fx.Private),
		fx.Provide(New),
		fx.Invoke(func(provider Provider, logger *zap.Logger, lifecycle fx.Lifecycle) {
			lifecycle.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					logger.Info("starting storage module")
					if i, ok := provider.(Initializer); ok {
						if err := i.Init(ctx); err != nil {
							return fmt.Errorf("failed to initialize storage: %w", err)
						}
					}
					return nil
				},
				OnStop: func(_ context.Context) error {
					logger.Info("stopping storage module")
					if c, ok := provider.(io.Closer); ok {
						if err := c.Close(); err != nil {
							return fmt.Errorf("failed to close storage: %w", err)
						}
					}
					return nil
				},
			})
		}),
	)
}

// New selects the configured backend and wraps it with metrics.
func New(config Config, metrics *Metrics, logger *zap.Logger) (Provider, error) {
	driver, err := ParseDriver(config.Driver)
	if err != nil {
		return nil, err
	}

	provider, err := Select(config, logger)
	if err != nil {
		return nil, err
	}

	return NewInstrumentedProvider(provider, driver, metrics), nil
}
