// Package jsondir implements the pipeline's data provider against a
// directory tree of JSON files, one file per stage per symbol:
//
//	<root>/<stage>/<SYMBOL>.json
//
// Each file holds columnar data:
//
//	{"dates": ["2024-01-02", ...], "columns": {"close": [185.5, ...]}}
//
// A missing file is an empty table, not an error; the screening funnel
// treats absent data as insufficient evidence to reject. A present but
// malformed file is an error, since silently skipping corrupt data
// would auto-pass symbols for the wrong reason.
package jsondir

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sifterlab/sifter/internal/core"
	"github.com/sifterlab/sifter/internal/series"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// Provider loads stage tables from a local directory.
type Provider struct {
	root   string
	logger *zap.Logger
}

// New creates a Provider rooted at dir.
func New(dir string, logger *zap.Logger) (*Provider, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("data directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("data directory: %s is not a directory", dir)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Provider{root: dir, logger: logger}, nil
}

type symbolFile struct {
	Dates   []string             `json:"dates"`
	Columns map[string][]float64 `json:"columns"`
}

// LoadStage loads tables for all requested symbols. Symbols without a
// file get an empty table.
func (p *Provider) LoadStage(ctx context.Context, stage core.Stage, symbols []string) (map[string]*series.Table, error) {
	out := make(map[string]*series.Table, len(symbols))
	for _, sym := range symbols {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		tbl, err := p.loadSymbol(stage, sym)
		if err != nil {
			return nil, err
		}
		out[sym] = tbl
	}
	return out, nil
}

func (p *Provider) loadSymbol(stage core.Stage, symbol string) (*series.Table, error) {
	path := filepath.Join(p.root, string(stage), symbol+".json")

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		p.logger.Debug("no data file", zap.String("stage", string(stage)), zap.String("symbol", symbol))
		return series.NewTable(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var file symbolFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return buildTable(path, file)
}

func buildTable(path string, file symbolFile) (*series.Table, error) {
	for name, col := range file.Columns {
		if len(col) != len(file.Dates) {
			return nil, fmt.Errorf("%s: column %s has %d values for %d dates", path, name, len(col), len(file.Dates))
		}
	}

	tbl := series.NewTable()
	for i, raw := range file.Dates {
		date, err := time.Parse(dateLayout, raw)
		if err != nil {
			return nil, fmt.Errorf("%s: bad date %q: %w", path, raw, err)
		}
		row := make(map[string]float64, len(file.Columns))
		for name, col := range file.Columns {
			row[name] = col[i]
		}
		tbl.Append(date, row)
	}
	tbl.Sort()
	return tbl, nil
}
