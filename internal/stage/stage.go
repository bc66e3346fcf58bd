// Package stage defines the shared evaluator contract for funnel stages
// and the driver that applies the permissive evaluation policy: disabled
// stages bypass, missing data auto-passes, and per-symbol failures never
// abort a batch. In a screening funnel a false reject from a data glitch
// is worse than a false pass handed to the next, stricter stage.
package stage

import (
	"context"
	"sort"

	"github.com/sifterlab/sifter/internal/core"
	"github.com/sifterlab/sifter/internal/profile"
	"github.com/sifterlab/sifter/internal/series"
)

// Result is the outcome of one stage run. It is immutable once built.
type Result struct {
	Stage       core.Stage         `json:"stage"`
	TotalInput  int                `json:"total_input"`
	TotalPassed int                `json:"total_passed"`
	FilterRate  float64            `json:"filter_rate"`
	Bypassed    bool               `json:"bypassed"`
	Passed      []string           `json:"passed"`
	Signals     map[string]float64 `json:"signals"`
	RowHits     map[string]int     `json:"row_hits,omitempty"`
	AutoPassed  []string           `json:"auto_passed,omitempty"`

	// Augmented carries tables enriched with derived columns. Only the
	// daily stage populates it, for day-by-day replay downstream.
	Augmented map[string]*series.Table `json:"-"`
}

// Contains reports whether symbol passed the stage.
func (r Result) Contains(symbol string) bool {
	i := sort.SearchStrings(r.Passed, symbol)
	return i < len(r.Passed) && r.Passed[i] == symbol
}

// Evaluator is the contract every funnel stage implements.
type Evaluator interface {
	Name() core.Stage
	Evaluate(ctx context.Context, symbols []string, data map[string]*series.Table, prof profile.Profile) Result
}

// Outcome is the verdict for a single symbol from a stage's row scan.
type Outcome struct {
	Pass   bool
	Signal float64
	// Rows counts how many rows/quarters satisfied the condition.
	Rows int
	// Augmented is the symbol's table with derived columns, if the
	// stage produces one.
	Augmented *series.Table
}

// bypassResult passes every input symbol with signal 1.0.
func bypassResult(stage core.Stage, symbols []string) Result {
	passed := make([]string, len(symbols))
	copy(passed, symbols)
	sort.Strings(passed)

	signals := make(map[string]float64, len(passed))
	for _, sym := range passed {
		signals[sym] = 1.0
	}

	return Result{
		Stage:       stage,
		TotalInput:  len(passed),
		TotalPassed: len(passed),
		FilterRate:  1.0,
		Bypassed:    true,
		Passed:      passed,
		Signals:     signals,
	}
}
