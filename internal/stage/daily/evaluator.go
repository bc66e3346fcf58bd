// Package daily implements the final funnel stage: multi-timeframe
// breakout detection on daily bars. It is the only stage with a graded
// signal and the only one that emits derived columns for downstream
// day-by-day replay.
package daily

import (
	"context"

	"github.com/sifterlab/sifter/internal/core"
	"github.com/sifterlab/sifter/internal/indicator"
	"github.com/sifterlab/sifter/internal/profile"
	"github.com/sifterlab/sifter/internal/series"
	"github.com/sifterlab/sifter/internal/stage"
	"go.uber.org/zap"
)

const (
	// breakoutWeight is added per timeframe whose trailing high is exceeded.
	breakoutWeight = 0.5
	// trendWeight is added once per day when SMA20 sits above SMA50 on a
	// day that already produced a breakout.
	trendWeight = 0.5

	smaFast = 20
	smaSlow = 50
)

// Evaluator scores daily breakouts.
type Evaluator struct {
	driver *stage.Driver
}

// New creates the daily evaluator.
func New(logger *zap.Logger, workers int) *Evaluator {
	return &Evaluator{driver: stage.NewDriver(logger, workers)}
}

func (e *Evaluator) Name() core.Stage {
	return core.StageDaily
}

// Evaluate scores every day in the window and passes a symbol when the
// best daily score reaches the threshold. One qualifying day is enough;
// this is deliberately permissive so a backtest can replay entries from
// any day, not only the final one. The symbol's signal is the maximum
// daily score seen, in [0, 2.5+trend] depending on configured timeframes.
//
// Each symbol's returned Outcome carries an augmented copy of its table
// with buy_signal (the per-day score, 0 on days without a breakout),
// sell_signal (reserved, all zeros) and candidate_type columns.
func (e *Evaluator) Evaluate(ctx context.Context, symbols []string, data map[string]*series.Table, prof profile.Profile) stage.Result {
	cfg := prof.Daily
	return e.driver.Run(ctx, e.Name(), cfg.Enabled, symbols, data, func(symbol string, tbl *series.Table) (stage.Outcome, error) {
		view, err := series.NewDailyView(tbl)
		if err != nil {
			return stage.Outcome{}, err
		}
		return score(view, tbl, cfg)
	})
}

func score(view *series.DailyView, tbl *series.Table, cfg profile.DailyConfig) (stage.Outcome, error) {
	highs := view.Highs()
	closes := view.Closes()
	n := len(highs)

	// Trailing highest-high per timeframe. rollMax[tf][j] covers
	// highs[j : j+tf], so the high as of the day before day d with a
	// full window is rollMax[tf][d-tf], defined once d >= tf. Days
	// without a full window are skipped for that timeframe rather than
	// scored against a truncated one.
	rollMax := make(map[int][]float64, len(cfg.Timeframes))
	for _, tf := range cfg.Timeframes {
		rollMax[tf] = indicator.RollingMax(highs, tf)
	}

	// SMA columns for trend confirmation, aligned to day index.
	fast := indicator.SMA(closes, smaFast)
	slow := indicator.SMA(closes, smaSlow)

	buySignal := make([]float64, n)
	sellSignal := make([]float64, n)
	candType := make([]float64, n)

	var best float64
	hits := 0

	for d := 1; d < n; d++ {
		dayScore := 0.0
		breakout := false

		for _, tf := range cfg.Timeframes {
			if d < tf {
				continue
			}
			if highs[d] > rollMax[tf][d-tf] {
				dayScore += breakoutWeight
				breakout = true
			}
		}

		if !breakout {
			continue
		}
		hits++

		if d >= smaSlow-1 && fast[d-smaFast+1] > slow[d-smaSlow+1] {
			dayScore += trendWeight
		}

		buySignal[d] = dayScore
		if dayScore >= cfg.Threshold {
			candType[d] = float64(core.CandidateBreakout)
		}
		if dayScore > best {
			best = dayScore
		}
	}

	aug := tbl.Clone()
	if err := aug.SetColumn(series.ColBuySignal, buySignal); err != nil {
		return stage.Outcome{}, err
	}
	if err := aug.SetColumn(series.ColSellSignal, sellSignal); err != nil {
		return stage.Outcome{}, err
	}
	if err := aug.SetColumn(series.ColCandidateType, candType); err != nil {
		return stage.Outcome{}, err
	}

	return stage.Outcome{
		Pass:      best >= cfg.Threshold,
		Signal:    best,
		Rows:      hits,
		Augmented: aug,
	}, nil
}
