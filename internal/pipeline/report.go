package pipeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/sifterlab/sifter/internal/core"
	"github.com/sifterlab/sifter/internal/series"
	"github.com/sifterlab/sifter/internal/stage"
)

// StageOutcome pairs a stage result with its timing.
type StageOutcome struct {
	Stage   core.Stage    `json:"stage"`
	Result  stage.Result  `json:"result"`
	Elapsed time.Duration `json:"elapsed_ns"`
}

// Report is the full output of one screening run.
type Report struct {
	ID           string         `json:"id"`
	Profile      string         `json:"profile"`
	StartedAt    time.Time      `json:"started_at"`
	FinishedAt   time.Time      `json:"finished_at"`
	UniverseSize int            `json:"universe_size"`
	Candidates   []string       `json:"candidates"`
	Stages       []StageOutcome `json:"stages"`
	Warnings     []string       `json:"warnings,omitempty"`

	// DailyTables are the daily stage's augmented tables, carrying the
	// buy_signal column for day-by-day replay downstream. Excluded from
	// JSON: replaying engines consume them in process.
	DailyTables map[string]*series.Table `json:"-"`
}

// StageResult returns the result for a stage, if that stage ran.
func (r *Report) StageResult(s core.Stage) (stage.Result, bool) {
	for _, out := range r.Stages {
		if out.Stage == s {
			return out.Result, true
		}
	}
	return stage.Result{}, false
}

// SignalsFor collects a symbol's signal from every stage that saw it.
func (r *Report) SignalsFor(symbol string) map[core.Stage]float64 {
	signals := make(map[core.Stage]float64)
	for _, out := range r.Stages {
		if v, ok := out.Result.Signals[symbol]; ok {
			signals[out.Stage] = v
		}
	}
	return signals
}

// Elapsed returns the total run duration.
func (r *Report) Elapsed() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// Summary renders the funnel as human-readable lines: one per stage
// with counts and filter rate, then the final candidate count.
func (r *Report) Summary() string {
	var b strings.Builder
	for _, out := range r.Stages {
		marker := ""
		if out.Result.Bypassed {
			marker = " (bypassed)"
		}
		fmt.Fprintf(&b, "%-18s %5d -> %5d  (%.1f%%)%s\n",
			out.Stage, out.Result.TotalInput, out.Result.TotalPassed,
			out.Result.FilterRate*100, marker)
	}
	fmt.Fprintf(&b, "candidates: %d", len(r.Candidates))
	return b.String()
}
