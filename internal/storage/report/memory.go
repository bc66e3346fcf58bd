package report

import (
	"context"
	"sort"
	"sync"

	"github.com/sifterlab/sifter/internal/core"
	"github.com/sifterlab/sifter/internal/pipeline"
)

// MemoryStore is an in-memory report store. Oldest reports are dropped
// once the store exceeds its capacity.
type MemoryStore struct {
	reports []*pipeline.Report
	maxSize int
	mu      sync.RWMutex
}

// NewMemoryStore creates a new in-memory store with max capacity.
func NewMemoryStore(maxSize int) *MemoryStore {
	if maxSize <= 0 {
		maxSize = 100
	}
	return &MemoryStore{
		reports: make([]*pipeline.Report, 0, maxSize),
		maxSize: maxSize,
	}
}

// Save adds a report to the store.
func (m *MemoryStore) Save(ctx context.Context, rep *pipeline.Report) error {
	if rep == nil || rep.ID == "" {
		return core.ErrReportInvalid
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.reports = append(m.reports, rep)
	if len(m.reports) > m.maxSize {
		m.reports = m.reports[len(m.reports)-m.maxSize:]
	}
	return nil
}

// GetByID retrieves a report by run ID.
func (m *MemoryStore) GetByID(ctx context.Context, id string) (*pipeline.Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, rep := range m.reports {
		if rep.ID == id {
			return rep, nil
		}
	}
	return nil, core.ErrReportNotFound
}

// List returns reports matching the filter, newest first.
func (m *MemoryStore) List(ctx context.Context, filter ListFilter) ([]*pipeline.Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*pipeline.Report, 0)
	for i := len(m.reports) - 1; i >= 0; i-- {
		if m.matches(m.reports[i], filter) {
			result = append(result, m.reports[i])
		}
	}

	if filter.Offset > 0 {
		if filter.Offset >= len(result) {
			return []*pipeline.Report{}, nil
		}
		result = result[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(result) {
		result = result[:filter.Limit]
	}
	return result, nil
}

// Latest returns the most recently saved report.
func (m *MemoryStore) Latest(ctx context.Context) (*pipeline.Report, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.reports) == 0 {
		return nil, core.ErrReportNotFound
	}
	return m.reports[len(m.reports)-1], nil
}

func (m *MemoryStore) matches(rep *pipeline.Report, filter ListFilter) bool {
	if filter.Profile != "" && rep.Profile != filter.Profile {
		return false
	}
	if filter.Candidate != "" {
		// Candidates are kept sorted by the pipeline.
		i := sort.SearchStrings(rep.Candidates, filter.Candidate)
		if i >= len(rep.Candidates) || rep.Candidates[i] != filter.Candidate {
			return false
		}
	}
	if !filter.From.IsZero() && rep.StartedAt.Before(filter.From) {
		return false
	}
	if !filter.To.IsZero() && rep.StartedAt.After(filter.To) {
		return false
	}
	return true
}
