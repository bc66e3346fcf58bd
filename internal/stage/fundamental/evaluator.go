// Package fundamental implements the second funnel stage: market-cap
// band, revenue floor, and sustained year-over-year growth minimums.
package fundamental

import (
	"context"

	"github.com/sifterlab/sifter/internal/core"
	"github.com/sifterlab/sifter/internal/profile"
	"github.com/sifterlab/sifter/internal/series"
	"github.com/sifterlab/sifter/internal/stage"
	"go.uber.org/zap"
)

// Evaluator screens on fundamental quality.
type Evaluator struct {
	driver *stage.Driver
}

// New creates the fundamental evaluator.
func New(logger *zap.Logger, workers int) *Evaluator {
	return &Evaluator{driver: stage.NewDriver(logger, workers)}
}

func (e *Evaluator) Name() core.Stage {
	return core.StageFundamental
}

// Evaluate scans consecutive quarter pairs; a symbol passes when any
// quarter sits inside the market-cap band, clears the revenue floor, and
// shows two quarters of growth above the configured minimums on either
// the revenue or the EPS track.
func (e *Evaluator) Evaluate(ctx context.Context, symbols []string, data map[string]*series.Table, prof profile.Profile) stage.Result {
	cfg := prof.Fundamental
	return e.driver.Run(ctx, e.Name(), cfg.Enabled, symbols, data, func(symbol string, tbl *series.Table) (stage.Outcome, error) {
		view, err := series.NewFundamentalView(tbl)
		if err != nil {
			return stage.Outcome{}, err
		}

		hits := 0
		for i := 1; i < view.Len(); i++ {
			prev := view.Quarter(i - 1)
			curr := view.Quarter(i)

			if curr.MarketCap < cfg.MinMarketCap || curr.MarketCap > cfg.MaxMarketCap {
				continue
			}
			if curr.Revenue <= cfg.MinRevenue {
				continue
			}

			revTrack := curr.RevenueYoY >= cfg.MinRevenueYoY && prev.RevenueYoY >= cfg.MinPrevRevenueYoY
			epsTrack := curr.EPSYoY >= cfg.MinEPSYoY && prev.EPSYoY >= cfg.MinPrevEPSYoY
			if revTrack || epsTrack {
				hits++
			}
		}

		if hits == 0 {
			return stage.Outcome{}, nil
		}
		return stage.Outcome{Pass: true, Signal: 1.0, Rows: hits}, nil
	})
}
