package jobs

import (
	"github.com/go-core-fx/logger"
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module(
		"jobs",
		logger.WithNamedLogger("jobs"),
		fx.Provide(NewRepository, fx.Private),
		fx.Provide(NewService),
	)
}
