package stage

import (
	"context"
	"fmt"
	"runtime"
	"sort"

	"github.com/sifterlab/sifter/internal/core"
	"github.com/sifterlab/sifter/internal/series"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// SymbolFunc scans one symbol's table and returns its verdict.
type SymbolFunc func(symbol string, table *series.Table) (Outcome, error)

// Driver runs a stage's per-symbol scan across a symbol set, applying
// the shared policy in one place so it stays auditable:
//
//   - disabled stage: every symbol passes with signal 1.0
//   - missing or empty table: auto-pass, logged at debug
//   - scan error or panic: auto-pass for that symbol only, logged at warn
//
// Symbols are independent, so the scan fans out over a bounded worker
// pool. In-flight evaluations run to completion; cancellation is the
// pipeline's job at stage boundaries.
type Driver struct {
	logger  *zap.Logger
	workers int
}

// NewDriver creates a driver. A nil logger becomes a nop; workers <= 0
// defaults to the CPU count.
func NewDriver(logger *zap.Logger, workers int) *Driver {
	if logger == nil {
		logger = zap.NewNop()
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Driver{logger: logger, workers: workers}
}

type symbolVerdict struct {
	outcome  Outcome
	autoPass bool
}

// Run evaluates fn for every symbol and assembles the stage Result.
func (d *Driver) Run(ctx context.Context, stageName core.Stage, enabled bool, symbols []string, data map[string]*series.Table, fn SymbolFunc) Result {
	ordered := make([]string, len(symbols))
	copy(ordered, symbols)
	sort.Strings(ordered)

	if !enabled {
		d.logger.Debug("stage disabled, bypassing", zap.String("stage", string(stageName)))
		return bypassResult(stageName, ordered)
	}

	verdicts := make([]symbolVerdict, len(ordered))

	g := new(errgroup.Group)
	g.SetLimit(d.workers)
	for i, sym := range ordered {
		g.Go(func() error {
			verdicts[i] = d.evaluateSymbol(stageName, sym, data[sym], fn)
			return nil
		})
	}
	// Workers never return errors; auto-pass already absorbed them.
	_ = g.Wait()

	result := Result{
		Stage:      stageName,
		TotalInput: len(ordered),
		Signals:    make(map[string]float64, len(ordered)),
		RowHits:    make(map[string]int),
	}

	for i, sym := range ordered {
		v := verdicts[i]
		result.Signals[sym] = v.outcome.Signal
		if v.outcome.Rows > 0 {
			result.RowHits[sym] = v.outcome.Rows
		}
		if v.outcome.Augmented != nil {
			if result.Augmented == nil {
				result.Augmented = make(map[string]*series.Table)
			}
			result.Augmented[sym] = v.outcome.Augmented
		}
		if !v.outcome.Pass {
			continue
		}
		result.Passed = append(result.Passed, sym)
		if v.autoPass {
			result.AutoPassed = append(result.AutoPassed, sym)
		}
	}

	result.TotalPassed = len(result.Passed)
	if result.TotalInput > 0 {
		result.FilterRate = float64(result.TotalPassed) / float64(result.TotalInput)
	}

	return result
}

func (d *Driver) evaluateSymbol(stageName core.Stage, symbol string, table *series.Table, fn SymbolFunc) symbolVerdict {
	if table == nil {
		d.logger.Debug("no data table, auto-passing",
			zap.String("stage", string(stageName)),
			zap.String("symbol", symbol),
			zap.String("code", core.ErrSymbolDataMissing.Code),
		)
		return symbolVerdict{outcome: Outcome{Pass: true, Signal: 1.0}, autoPass: true}
	}
	if table.Empty() {
		d.logger.Debug("empty data table, auto-passing",
			zap.String("stage", string(stageName)),
			zap.String("symbol", symbol),
			zap.String("code", core.ErrSymbolDataEmpty.Code),
		)
		return symbolVerdict{outcome: Outcome{Pass: true, Signal: 1.0}, autoPass: true}
	}

	outcome, err := d.safeScan(symbol, table, fn)
	if err != nil {
		d.logger.Warn("symbol evaluation failed, auto-passing",
			zap.String("stage", string(stageName)),
			zap.String("symbol", symbol),
			zap.Error(core.WrapError(core.ErrSymbolEvalFailed, err)),
		)
		return symbolVerdict{outcome: Outcome{Pass: true, Signal: 1.0}, autoPass: true}
	}

	return symbolVerdict{outcome: outcome}
}

// safeScan shields the batch from a panicking scan on a malformed table.
func (d *Driver) safeScan(symbol string, table *series.Table, fn SymbolFunc) (outcome Outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in symbol scan: %v", r)
		}
	}()
	return fn(symbol, table)
}
