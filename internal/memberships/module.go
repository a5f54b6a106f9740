package memberships

import (
	"context"

	"github.com/apiarycd/memberships/internal/jobs"
	"github.com/apiarycd/memberships/internal/queue"
	"github.com/apiarycd/memberships/internal/users"
	"github.com/go-core-fx/logger"
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module(
		"memberships",
		logger.WithNamedLogger("memberships"),
		fx.Provide(
			NewRepository,
			NewPeriodRepository,
			NewTypeRepository,
			func(s *users.Service) UserLookup { return s },
			func(s *jobs.Service) JobTracker { return s },
			fx.Private,
		),
		fx.Provide(NewService),
		fx.Provide(NewExportProcessor, fx.Private),
		fx.Invoke(func(svc *Service, processor *ExportProcessor, q queue.Queue, lc fx.Lifecycle) {
			q.Subscribe(processor.Handle)

			lc.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					return svc.SeedTypes(ctx)
				},
				OnStop: nil,
			})
		}),
	)
}
