// Package scheduler runs screenings on a cron cadence, persisting each
// report to the store and optionally to the archive.
package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/sifterlab/sifter/internal/pipeline"
	"github.com/sifterlab/sifter/internal/profile"
	"github.com/sifterlab/sifter/internal/storage/archive"
	"github.com/sifterlab/sifter/internal/storage/report"
	"go.uber.org/zap"
)

// UniverseFunc supplies the symbol universe for each scheduled run, so
// a refreshed universe file is picked up without a restart.
type UniverseFunc func(ctx context.Context) ([]string, error)

// Scheduler triggers screening runs on a cron schedule.
type Scheduler struct {
	cron     *cron.Cron
	runner   *pipeline.Runner
	universe UniverseFunc
	profile  profile.Profile
	store    report.Store
	archiver *archive.Archiver
	logger   *zap.Logger
}

// New creates a Scheduler. The archiver is optional; store and runner
// are not. Overlapping runs are skipped, not queued.
func New(runner *pipeline.Runner, universe UniverseFunc, prof profile.Profile, store report.Store, archiver *archive.Archiver, logger *zap.Logger) (*Scheduler, error) {
	if runner == nil {
		return nil, fmt.Errorf("scheduler: nil runner")
	}
	if universe == nil {
		return nil, fmt.Errorf("scheduler: nil universe source")
	}
	if store == nil {
		return nil, fmt.Errorf("scheduler: nil report store")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{
		cron:     cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		runner:   runner,
		universe: universe,
		profile:  prof,
		store:    store,
		archiver: archiver,
		logger:   logger,
	}, nil
}

// Register adds the screening job under the given cron expression,
// e.g. "30 16 * * 1-5" for weekdays after the close.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.cron.AddFunc(spec, func() {
		s.RunNow(context.Background())
	}); err != nil {
		return fmt.Errorf("register screening job %q: %w", spec, err)
	}
	return nil
}

// Start starts the cron loop.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started")
}

// Stop stops the cron loop and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// RunNow executes one screening immediately, outside the schedule.
// Failures are logged, never fatal to the loop.
func (s *Scheduler) RunNow(ctx context.Context) {
	symbols, err := s.universe(ctx)
	if err != nil {
		s.logger.Error("universe load failed", zap.Error(err))
		return
	}

	rep, err := s.runner.Run(ctx, symbols, s.profile)
	if err != nil {
		s.logger.Error("scheduled screening failed", zap.Error(err))
		return
	}

	if err := s.store.Save(ctx, rep); err != nil {
		s.logger.Error("report save failed", zap.String("run_id", rep.ID), zap.Error(err))
	}
	if s.archiver != nil {
		key, err := s.archiver.Save(ctx, rep)
		if err != nil {
			s.logger.Error("report archive failed", zap.String("run_id", rep.ID), zap.Error(err))
		} else {
			s.logger.Info("report archived", zap.String("run_id", rep.ID), zap.String("key", key))
		}
	}

	s.logger.Info("scheduled screening complete",
		zap.String("run_id", rep.ID),
		zap.Int("candidates", len(rep.Candidates)),
	)
}
