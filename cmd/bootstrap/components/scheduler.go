package components

import (
	"context"
	"log/slog"

	"telemed-booking/internal/infra/scheduler"
	"telemed-booking/internal/pkg/config"

	"go.uber.org/fx"
)

var SchedulerModule = fx.Module("scheduler",
	fx.Provide(
		scheduler.New,
	),
	fx.Invoke(startScheduler),
)

func startScheduler(lc fx.Lifecycle, s *scheduler.Scheduler, cfg config.ReaperConfig) error {
	if !cfg.Enabled {
		slog.Info("scheduler disabled by configuration")
		return nil
	}
	if err := s.Register(); err != nil {
		return err
	}
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			s.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return s.Stop(ctx)
		},
	})
	return nil
}
