package pipeline

import (
	"context"

	"github.com/sifterlab/sifter/internal/core"
	"github.com/sifterlab/sifter/internal/series"
)

// DataProvider supplies stage data for a symbol set. Implementations
// live outside this package; historical retrieval and storage are not
// the funnel's concern. A provider must return an empty (not missing)
// table for symbols it has no data for, so the evaluators can apply the
// auto-pass policy deliberately rather than by accident of a nil map.
//
// The orchestrator issues one batched call per stage, only for the
// symbols that survived the previous stage.
type DataProvider interface {
	LoadStage(ctx context.Context, stage core.Stage, symbols []string) (map[string]*series.Table, error)
}
