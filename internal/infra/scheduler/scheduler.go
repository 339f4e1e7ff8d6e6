// Package scheduler runs the background maintenance jobs on fixed intervals.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"telemed-booking/internal/pkg/config"
	"telemed-booking/internal/pkg/errs"
	"telemed-booking/internal/usecase/commands"

	"github.com/robfig/cron/v3"
)

// slogAdapter satisfies cron.Logger.
type slogAdapter struct {
	logger *slog.Logger
}

func (a slogAdapter) Info(msg string, keysAndValues ...any) {
	a.logger.Debug("cron: "+msg, keysAndValues...)
}

func (a slogAdapter) Error(err error, msg string, keysAndValues ...any) {
	a.logger.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}

type Scheduler struct {
	cron    *cron.Cron
	reaper  commands.ReaperCommands
	cfg     config.ReaperConfig
	timeout time.Duration
	ctx     context.Context
	cancel  context.CancelFunc
}

func New(reaper commands.ReaperCommands, cfg config.ReaperConfig, logger *slog.Logger) *Scheduler {
	l := slogAdapter{logger: logger}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(l),
			cron.WithChain(cron.Recover(l), cron.SkipIfStillRunning(l)),
		),
		reaper: reaper,
		cfg:    cfg,
		// A run never outlives its own interval by much; the next tick is skipped meanwhile.
		timeout: 2 * cfg.Interval,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Register adds the sweep and the key purge. Call before Start.
func (s *Scheduler) Register() error {
	if _, err := s.cron.AddFunc(every(s.cfg.Interval), s.runSweep); err != nil {
		return errs.Wrap(err, "schedule reaper sweep")
	}
	if _, err := s.cron.AddFunc(every(s.cfg.KeyPurgeInterval), s.runPurge); err != nil {
		return errs.Wrap(err, "schedule idempotency key purge")
	}
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	slog.Info("scheduler started",
		slog.Duration("sweep_interval", s.cfg.Interval),
		slog.Duration("stale_after", s.cfg.StaleAfter),
		slog.Duration("key_purge_interval", s.cfg.KeyPurgeInterval))
}

// Stop cancels in-flight jobs and waits for them or for ctx, whichever comes first.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.cancel()
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Errors are logged and never stop the schedule.
func (s *Scheduler) runSweep() {
	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	if _, err := s.reaper.Sweep(ctx); err != nil {
		slog.ErrorContext(ctx, "reaper sweep failed", slog.Any("error", err))
	}
}

func (s *Scheduler) runPurge() {
	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	if _, err := s.reaper.PurgeExpiredKeys(ctx); err != nil {
		slog.ErrorContext(ctx, "idempotency key purge failed", slog.Any("error", err))
	}
}

func every(d time.Duration) string {
	return "@every " + d.String()
}
