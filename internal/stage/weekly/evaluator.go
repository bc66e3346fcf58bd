// Package weekly implements the third funnel stage: a stable price
// ceiling over a rising base, with the latest close holding inside the
// configured distance of the 52-week range.
package weekly

import (
	"context"

	"github.com/sifterlab/sifter/internal/core"
	"github.com/sifterlab/sifter/internal/profile"
	"github.com/sifterlab/sifter/internal/series"
	"github.com/sifterlab/sifter/internal/stage"
	"go.uber.org/zap"
)

// Evaluator screens weekly range structure.
type Evaluator struct {
	driver *stage.Driver
}

// New creates the weekly evaluator.
func New(logger *zap.Logger, workers int) *Evaluator {
	return &Evaluator{driver: stage.NewDriver(logger, workers)}
}

func (e *Evaluator) Name() core.Stage {
	return core.StageWeekly
}

// Evaluate passes a symbol when any week satisfies, all at once:
// the 1-year high equals the 2-year high (ceiling stable), the 2-year
// low sits below the 1-year low (base rising), the 52-week high has not
// run away from where it stood two weeks earlier, and the prior close
// keeps the configured distance from both ends of the 52-week range.
func (e *Evaluator) Evaluate(ctx context.Context, symbols []string, data map[string]*series.Table, prof profile.Profile) stage.Result {
	cfg := prof.Weekly
	return e.driver.Run(ctx, e.Name(), cfg.Enabled, symbols, data, func(symbol string, tbl *series.Table) (stage.Outcome, error) {
		view, err := series.NewWeeklyView(tbl)
		if err != nil {
			return stage.Outcome{}, err
		}

		hits := 0
		// Row i needs the 52-week high from two weeks back and the
		// previous week's close, so scanning starts at i = 2.
		for i := 2; i < view.Len(); i++ {
			bar := view.Bar(i)
			prevClose := view.Bar(i - 1).Close
			high52TwoBack := view.Bar(i - 2).High52W

			if bar.High1Y != bar.High2Y {
				continue
			}
			if bar.Low2Y >= bar.Low1Y {
				continue
			}
			if bar.High52W > high52TwoBack*cfg.HighStabilityFactor {
				continue
			}
			if prevClose <= bar.Low52W*cfg.LowDistanceFactor {
				continue
			}
			if prevClose <= bar.High52W*cfg.HighDistanceFactor {
				continue
			}
			hits++
		}

		if hits == 0 {
			return stage.Outcome{}, nil
		}
		return stage.Outcome{Pass: true, Signal: 1.0, Rows: hits}, nil
	})
}
