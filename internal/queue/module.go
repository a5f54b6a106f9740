package queue

import (
	"context"
	"fmt"

	"github.com/go-core-fx/logger"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func Module() fx.Option {
	return fx.Module(
		"queue",
		logger.WithNamedLogger("queue"),
		fx.Provide(New),
		fx.Provide(func(q Queue) Publisher { return q }),
		fx.Invoke(func(q Queue, logger *zap.Logger, lc fx.Lifecycle) {
			lc.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					logger.Info("starting queue")
					if err := q.Start(ctx); err != nil {
						return fmt.Errorf("failed to start queue: %w", err)
					}
					return nil
				},
				OnStop: func(ctx context.Context) error {
					logger.Info("stopping queue")
					if err := q.Stop(ctx); err != nil {
						return fmt.Errorf("failed to stop queue: %w", err)
					}
					return nil
				},
			})
		}),
	)
}
