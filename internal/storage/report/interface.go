// Package report persists screening run reports so past funnels can be
// inspected and compared after the fact.
package report

import (
	"context"
	"time"

	"github.com/sifterlab/sifter/internal/pipeline"
)

// Store defines the interface for report persistence. The scheduler
// only writes; GetByID, List and Latest are the query surface for
// downstream consumers of watch-mode runs (status tooling, an API
// layer) that this module deliberately does not ship.
type Store interface {
	// Save persists a completed run report.
	Save(ctx context.Context, rep *pipeline.Report) error

	// GetByID retrieves a report by its run ID.
	GetByID(ctx context.Context, id string) (*pipeline.Report, error)

	// List retrieves reports matching the filter, newest first.
	List(ctx context.Context, filter ListFilter) ([]*pipeline.Report, error)

	// Latest returns the most recent report, if any.
	Latest(ctx context.Context) (*pipeline.Report, error)
}

// ListFilter defines criteria for listing reports.
type ListFilter struct {
	Profile   string
	Candidate string
	From      time.Time
	To        time.Time
	Limit     int
	Offset    int
}
