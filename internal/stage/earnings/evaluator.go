// Package earnings implements the first funnel stage: quarter-over-quarter
// acceleration in revenue or EPS year-over-year growth.
package earnings

import (
	"context"

	"github.com/sifterlab/sifter/internal/core"
	"github.com/sifterlab/sifter/internal/profile"
	"github.com/sifterlab/sifter/internal/series"
	"github.com/sifterlab/sifter/internal/stage"
	"go.uber.org/zap"
)

// Evaluator screens for accelerating earnings.
type Evaluator struct {
	driver *stage.Driver
}

// New creates the earnings evaluator.
func New(logger *zap.Logger, workers int) *Evaluator {
	return &Evaluator{driver: stage.NewDriver(logger, workers)}
}

func (e *Evaluator) Name() core.Stage {
	return core.StageEarnings
}

// Evaluate scans every consecutive quarter pair and passes a symbol when
// any pair shows growth that is both above the floor and accelerating.
// Scanning the whole history, not just the latest pair, keeps historical
// backtests from being unfairly strict.
func (e *Evaluator) Evaluate(ctx context.Context, symbols []string, data map[string]*series.Table, prof profile.Profile) stage.Result {
	cfg := prof.Earnings
	return e.driver.Run(ctx, e.Name(), cfg.Enabled, symbols, data, func(symbol string, tbl *series.Table) (stage.Outcome, error) {
		view, err := series.NewEarningsView(tbl)
		if err != nil {
			return stage.Outcome{}, err
		}

		hits := 0
		for i := 1; i < view.Len(); i++ {
			prev := view.Quarter(i - 1)
			curr := view.Quarter(i)

			revAccel := prev.RevenueYoY >= cfg.MinPrevRevenueYoY && curr.RevenueYoY > prev.RevenueYoY
			epsAccel := prev.EPSYoY >= cfg.MinPrevEPSYoY && curr.EPSYoY > prev.EPSYoY
			if revAccel || epsAccel {
				hits++
			}
		}

		if hits == 0 {
			return stage.Outcome{}, nil
		}
		return stage.Outcome{Pass: true, Signal: 1.0, Rows: hits}, nil
	})
}
