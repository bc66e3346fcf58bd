// Package pipeline orchestrates the five-stage screening funnel. Stages
// run in a fixed order, each narrowing the symbol set, so the most
// expensive data loads happen only for symbols that already cleared the
// cheaper filters.
package pipeline

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sifterlab/sifter/internal/core"
	"github.com/sifterlab/sifter/internal/metrics"
	"github.com/sifterlab/sifter/internal/profile"
	"github.com/sifterlab/sifter/internal/stage"
	"go.uber.org/zap"
)

// Runner sequences the stage evaluators over a symbol universe.
type Runner struct {
	provider   DataProvider
	evaluators map[core.Stage]stage.Evaluator
	logger     *zap.Logger
	metrics    *metrics.Registry
}

// New creates a Runner. Every stage in the funnel order must have an
// evaluator; anything else is a wiring bug, reported immediately.
func New(provider DataProvider, evaluators []stage.Evaluator, logger *zap.Logger) (*Runner, error) {
	if provider == nil {
		return nil, fmt.Errorf("pipeline: nil data provider")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	byStage := make(map[core.Stage]stage.Evaluator, len(evaluators))
	for _, ev := range evaluators {
		if _, dup := byStage[ev.Name()]; dup {
			return nil, fmt.Errorf("pipeline: duplicate evaluator for stage %s", ev.Name())
		}
		byStage[ev.Name()] = ev
	}
	for _, s := range core.StageOrder() {
		if _, ok := byStage[s]; !ok {
			return nil, fmt.Errorf("pipeline: missing evaluator for stage %s", s)
		}
	}

	return &Runner{
		provider:   provider,
		evaluators: byStage,
		logger:     logger,
	}, nil
}

// SetMetrics attaches a metrics registry. Optional.
func (r *Runner) SetMetrics(reg *metrics.Registry) {
	r.metrics = reg
}

// Run screens the universe through the funnel and returns the report.
//
// Per-symbol problems never surface here; the evaluators absorb them as
// auto-passes. The only error returns are cancellation (checked at
// stage boundaries, never mid-stage) and a failed data provider call,
// since without stage data a permissive pass-through would promote the
// entire survivor set unscreened.
func (r *Runner) Run(ctx context.Context, universe []string, prof profile.Profile) (*Report, error) {
	report := &Report{
		ID:        uuid.NewString(),
		Profile:   prof.Name,
		StartedAt: time.Now(),
	}

	survivors := dedupe(universe)
	report.UniverseSize = len(survivors)

	if len(survivors) == 0 {
		report.Warnings = append(report.Warnings, core.ErrEmptyUniverse.Message)
		report.FinishedAt = time.Now()
		r.logger.Warn("screening skipped", zap.String("reason", core.ErrEmptyUniverse.Code))
		return report, nil
	}

	r.logger.Info("screening run starting",
		zap.String("run_id", report.ID),
		zap.String("profile", prof.Name),
		zap.Int("universe", len(survivors)),
	)

	for _, stageName := range core.StageOrder() {
		if err := ctx.Err(); err != nil {
			report.Warnings = append(report.Warnings, fmt.Sprintf("run cancelled before stage %s", stageName))
			report.FinishedAt = time.Now()
			return report, err
		}

		data, err := r.provider.LoadStage(ctx, stageName, survivors)
		if err != nil {
			report.FinishedAt = time.Now()
			return report, core.WrapError(core.ErrProviderFailed,
				fmt.Errorf("stage %s: %w", stageName, err))
		}

		started := time.Now()
		result := r.evaluators[stageName].Evaluate(ctx, survivors, data, prof)
		elapsed := time.Since(started)

		report.Stages = append(report.Stages, StageOutcome{
			Stage:   stageName,
			Result:  result,
			Elapsed: elapsed,
		})
		if r.metrics != nil {
			r.metrics.ObserveStage(string(stageName),
				result.TotalInput, result.TotalPassed, len(result.AutoPassed), elapsed)
		}

		r.logger.Info("stage complete",
			zap.String("run_id", report.ID),
			zap.String("stage", string(stageName)),
			zap.Int("input", result.TotalInput),
			zap.Int("passed", result.TotalPassed),
			zap.Float64("filter_rate", result.FilterRate),
			zap.Duration("elapsed", elapsed),
		)

		if stageName == core.StageDaily {
			report.DailyTables = result.Augmented
		}

		if result.TotalPassed == 0 {
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("funnel emptied at stage %s", stageName))
			break
		}

		survivors = result.Passed
	}

	// The last executed stage's survivors are the candidates; when the
	// funnel emptied, that slice is already empty.
	last := report.Stages[len(report.Stages)-1].Result
	report.Candidates = append([]string(nil), last.Passed...)
	report.FinishedAt = time.Now()

	if r.metrics != nil {
		r.metrics.ObserveRun(len(report.Candidates), report.Elapsed())
	}

	r.logger.Info("screening run complete",
		zap.String("run_id", report.ID),
		zap.Int("candidates", len(report.Candidates)),
		zap.Duration("elapsed", report.Elapsed()),
	)

	return report, nil
}

func dedupe(symbols []string) []string {
	seen := make(map[string]struct{}, len(symbols))
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
