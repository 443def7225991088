package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/txrecon/internal/domain"
)

// Runner performs one reconciliation pass.
type Runner interface {
	Run(ctx context.Context) (*domain.ReconciliationRun, error)
}

// Config for Scheduler.
type Config struct {
	Runner     Runner
	Logger     zerolog.Logger
	RunOnStart bool
	Interval   time.Duration // 0 disables periodic runs
	Timeout    time.Duration // per-run deadline, 0 for none
}

// Scheduler re-runs reconciliation so the served report stays current.
type Scheduler struct {
	runner     Runner
	logger     zerolog.Logger
	runOnStart bool
	interval   time.Duration
	timeout    time.Duration
}

// New creates a new Scheduler.
func New(cfg Config) *Scheduler {
	return &Scheduler{
		runner:     cfg.Runner,
		logger:     cfg.Logger,
		runOnStart: cfg.RunOnStart,
		interval:   cfg.Interval,
		timeout:    cfg.Timeout,
	}
}

// Start runs reconciliation on start and then on every tick until ctx is cancelled.
// With no interval it returns after the start run.
func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info().
		Bool("run_on_start", s.runOnStart).
		Dur("interval", s.interval).
		Msg("reconciliation scheduler started")

	if s.runOnStart {
		s.runOnce(ctx)
	}

	if s.interval <= 0 {
		return nil
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("reconciliation scheduler shutting down")
			return ctx.Err()
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

// runOnce executes a single pass. Errors are logged and the schedule continues.
func (s *Scheduler) runOnce(ctx context.Context) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	run, err := s.runner.Run(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("reconciliation run failed")
		return
	}

	event := s.logger.Info()
	if !run.Verified() {
		event = s.logger.Warn()
	}
	event.
		Str("run_id", run.ID).
		Int("primary", run.PrimaryCount).
		Int("companion", run.CompanionCount).
		Int("failures", len(run.Failures)).
		Dur("duration", run.Duration()).
		Msg("reconciliation run finished")
}
