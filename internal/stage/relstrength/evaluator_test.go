package relstrength

import (
	"context"
	"testing"
	"time"

	"github.com/sifterlab/sifter/internal/profile"
	"github.com/sifterlab/sifter/internal/series"
	"github.com/stretchr/testify/assert"
)

func rsTable(percentiles ...float64) *series.Table {
	tbl := series.NewTable()
	base := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	for i, p := range percentiles {
		tbl.Append(base.AddDate(0, 0, 7*i), map[string]float64{series.ColRS4W: p})
	}
	return tbl
}

func TestEvaluate_ThresholdReached(t *testing.T) {
	e := New(nil, 1)
	data := map[string]*series.Table{
		"STRONG": rsTable(40, 85, 60),
		"WEAK":   rsTable(40, 55, 60),
	}

	result := e.Evaluate(context.Background(), []string{"STRONG", "WEAK"}, data, profile.Balanced())

	assert.Equal(t, []string{"STRONG"}, result.Passed)
	assert.Equal(t, 1, result.RowHits["STRONG"])
}

func TestEvaluate_ExactThresholdPasses(t *testing.T) {
	e := New(nil, 1)
	data := map[string]*series.Table{"EDGE": rsTable(80)}

	result := e.Evaluate(context.Background(), []string{"EDGE"}, data, profile.Balanced())

	assert.True(t, result.Contains("EDGE"))
}

func TestEvaluate_CustomThreshold(t *testing.T) {
	e := New(nil, 1)
	prof := profile.Balanced()
	prof.RelStrength.Threshold = 95

	data := map[string]*series.Table{"STRONG": rsTable(85, 90)}
	result := e.Evaluate(context.Background(), []string{"STRONG"}, data, prof)

	assert.Empty(t, result.Passed)
}

func TestEvaluate_Disabled(t *testing.T) {
	e := New(nil, 1)
	prof := profile.Balanced()
	prof.RelStrength.Enabled = false

	result := e.Evaluate(context.Background(), []string{"A", "B"}, nil, prof)

	assert.True(t, result.Bypassed)
	assert.Equal(t, []string{"A", "B"}, result.Passed)
}

func TestEvaluate_MissingColumnAutoPasses(t *testing.T) {
	e := New(nil, 1)
	tbl := series.NewTable()
	tbl.Append(time.Now(), map[string]float64{"close": 100})

	result := e.Evaluate(context.Background(), []string{"NORS"}, map[string]*series.Table{"NORS": tbl}, profile.Balanced())

	assert.Equal(t, []string{"NORS"}, result.AutoPassed)
}
