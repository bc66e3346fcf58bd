// Package archive provides cold storage for screening reports. Reports
// are serialized to JSON under date-partitioned keys so a bucket or
// directory listing groups runs by day. Archives are append-only.
package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"path"

	"github.com/sifterlab/sifter/internal/core"
	"github.com/sifterlab/sifter/internal/pipeline"
)

// Backend abstracts the byte store underneath the archive.
type Backend interface {
	// Write stores data at the given key.
	Write(ctx context.Context, key string, data []byte) error

	// Read retrieves data from the given key.
	Read(ctx context.Context, key string) ([]byte, error)

	// List returns all keys matching the prefix.
	List(ctx context.Context, prefix string) ([]string, error)

	// Exists checks whether data exists at the given key.
	Exists(ctx context.Context, key string) (bool, error)
}

// Archiver writes reports to a Backend.
type Archiver struct {
	backend Backend
}

// New creates an Archiver over the given backend.
func New(backend Backend) *Archiver {
	return &Archiver{backend: backend}
}

// Key returns the archive key for a report: reports/YYYY/MM/DD/<id>.json,
// partitioned by the run's start date.
func Key(rep *pipeline.Report) string {
	return path.Join("reports", rep.StartedAt.UTC().Format("2006/01/02"), rep.ID+".json")
}

// Save serializes the report and writes it to the backend, returning
// the key it was stored under.
func (a *Archiver) Save(ctx context.Context, rep *pipeline.Report) (string, error) {
	if rep == nil || rep.ID == "" {
		return "", core.ErrReportInvalid
	}

	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling report %s: %w", rep.ID, err)
	}

	key := Key(rep)
	if err := a.backend.Write(ctx, key, data); err != nil {
		return "", fmt.Errorf("archiving report %s: %w", rep.ID, err)
	}
	return key, nil
}

// Load reads a report back from the backend by key.
func (a *Archiver) Load(ctx context.Context, key string) (*pipeline.Report, error) {
	data, err := a.backend.Read(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("reading archive %s: %w", key, err)
	}

	var rep pipeline.Report
	if err := json.Unmarshal(data, &rep); err != nil {
		return nil, fmt.Errorf("decoding archive %s: %w", key, err)
	}
	return &rep, nil
}

// ListDay returns the keys of all reports archived for one UTC day.
// The day is given in the key format, e.g. "2024/06/03"; an empty day
// lists every archived report.
func (a *Archiver) ListDay(ctx context.Context, day string) ([]string, error) {
	return a.backend.List(ctx, path.Join("reports", day))
}
