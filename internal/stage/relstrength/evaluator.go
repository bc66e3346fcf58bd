// Package relstrength implements the fourth funnel stage: the 4-week
// relative strength percentile rank against the broader market.
package relstrength

import (
	"context"

	"github.com/sifterlab/sifter/internal/core"
	"github.com/sifterlab/sifter/internal/profile"
	"github.com/sifterlab/sifter/internal/series"
	"github.com/sifterlab/sifter/internal/stage"
	"go.uber.org/zap"
)

// Evaluator screens on relative strength percentile.
type Evaluator struct {
	driver *stage.Driver
}

// New creates the relative strength evaluator.
func New(logger *zap.Logger, workers int) *Evaluator {
	return &Evaluator{driver: stage.NewDriver(logger, workers)}
}

func (e *Evaluator) Name() core.Stage {
	return core.StageRelStrength
}

// Evaluate passes a symbol when its 4-week RS percentile reached the
// threshold in any row of the window.
func (e *Evaluator) Evaluate(ctx context.Context, symbols []string, data map[string]*series.Table, prof profile.Profile) stage.Result {
	cfg := prof.RelStrength
	return e.driver.Run(ctx, e.Name(), cfg.Enabled, symbols, data, func(symbol string, tbl *series.Table) (stage.Outcome, error) {
		view, err := series.NewRelStrengthView(tbl)
		if err != nil {
			return stage.Outcome{}, err
		}

		hits := 0
		for i := 0; i < view.Len(); i++ {
			if view.Percentile(i) >= cfg.Threshold {
				hits++
			}
		}

		if hits == 0 {
			return stage.Outcome{}, nil
		}
		return stage.Outcome{Pass: true, Signal: 1.0, Rows: hits}, nil
	})
}
