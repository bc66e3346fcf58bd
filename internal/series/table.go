// Package series provides the date-indexed table shared by all funnel
// stages. A Table holds one symbol's rows for one stage cadence
// (quarterly, weekly or daily); stage-specific views live in accessors.go.
package series

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// Table is a date-indexed collection of named float columns.
// Rows are kept in ascending date order.
type Table struct {
	dates   []time.Time
	columns map[string][]float64
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{columns: make(map[string][]float64)}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.dates)
}

// Empty reports whether the table has no rows.
func (t *Table) Empty() bool {
	return t.Len() == 0
}

// Dates returns the row dates in ascending order. The returned slice
// must not be modified.
func (t *Table) Dates() []time.Time {
	return t.dates
}

// Date returns the date of row i.
func (t *Table) Date(i int) time.Time {
	return t.dates[i]
}

// Append adds a row. Values for columns the table already knows but the
// row omits are filled with NaN, so column lengths always match row count.
func (t *Table) Append(date time.Time, values map[string]float64) {
	for name := range values {
		if _, ok := t.columns[name]; !ok {
			col := make([]float64, len(t.dates))
			for i := range col {
				col[i] = math.NaN()
			}
			t.columns[name] = col
		}
	}
	t.dates = append(t.dates, date)
	for name, col := range t.columns {
		if v, ok := values[name]; ok {
			t.columns[name] = append(col, v)
		} else {
			t.columns[name] = append(col, math.NaN())
		}
	}
}

// Sort reorders rows by ascending date. Append already keeps insertion
// order, so this is only needed after loading unordered input.
func (t *Table) Sort() {
	idx := make([]int, len(t.dates))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return t.dates[idx[a]].Before(t.dates[idx[b]])
	})

	dates := make([]time.Time, len(t.dates))
	for i, j := range idx {
		dates[i] = t.dates[j]
	}
	t.dates = dates

	for name, col := range t.columns {
		next := make([]float64, len(col))
		for i, j := range idx {
			next[i] = col[j]
		}
		t.columns[name] = next
	}
}

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	if t == nil {
		return false
	}
	_, ok := t.columns[name]
	return ok
}

// Column returns the named column, or an error when it is absent.
func (t *Table) Column(name string) ([]float64, error) {
	col, ok := t.columns[name]
	if !ok {
		return nil, fmt.Errorf("series: column %q not found", name)
	}
	return col, nil
}

// Value returns the value at row i of the named column.
func (t *Table) Value(name string, i int) (float64, error) {
	col, err := t.Column(name)
	if err != nil {
		return 0, err
	}
	if i < 0 || i >= len(col) {
		return 0, fmt.Errorf("series: row %d out of range for column %q (len %d)", i, name, len(col))
	}
	return col[i], nil
}

// SetColumn replaces or creates a column. The value count must match the
// row count.
func (t *Table) SetColumn(name string, values []float64) error {
	if len(values) != len(t.dates) {
		return fmt.Errorf("series: column %q has %d values for %d rows", name, len(values), len(t.dates))
	}
	t.columns[name] = values
	return nil
}

// ColumnNames returns the column names in sorted order.
func (t *Table) ColumnNames() []string {
	names := make([]string, 0, len(t.columns))
	for name := range t.columns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns a deep copy. Evaluators that derive output columns clone
// first so the input table is never mutated in place.
func (t *Table) Clone() *Table {
	c := NewTable()
	c.dates = append(c.dates, t.dates...)
	for name, col := range t.columns {
		dup := make([]float64, len(col))
		copy(dup, col)
		c.columns[name] = dup
	}
	return c
}
