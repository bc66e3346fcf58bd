package daily

import (
	"context"
	"testing"
	"time"

	"github.com/sifterlab/sifter/internal/profile"
	"github.com/sifterlab/sifter/internal/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dailyTable(highs, closes []float64) *series.Table {
	tbl := series.NewTable()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range highs {
		tbl.Append(base.AddDate(0, 0, i), map[string]float64{
			series.ColOpen:  closes[i],
			series.ColHigh:  highs[i],
			series.ColLow:   closes[i] * 0.98,
			series.ColClose: closes[i],
		})
	}
	return tbl
}

// breakoutSeries builds n days of flat highs with a spike on the last
// day, paired with a close trend set by slope.
func breakoutSeries(n int, slope float64) ([]float64, []float64) {
	highs := make([]float64, n)
	closes := make([]float64, n)
	for i := 0; i < n; i++ {
		highs[i] = 10
		closes[i] = 10 + slope*float64(i)
	}
	highs[n-1] = 20
	return highs, closes
}

func monthOnly(prof *profile.Profile) {
	prof.Daily.Timeframes = []int{21}
}

func TestEvaluate_BreakoutWithTrend(t *testing.T) {
	e := New(nil, 1)
	prof := profile.Balanced()
	monthOnly(&prof)

	highs, closes := breakoutSeries(60, 0.1) // rising closes: SMA20 > SMA50
	data := map[string]*series.Table{"X": dailyTable(highs, closes)}

	result := e.Evaluate(context.Background(), []string{"X"}, data, prof)

	require.Equal(t, []string{"X"}, result.Passed)
	assert.Equal(t, 1.0, result.Signals["X"], "0.5 breakout + 0.5 trend confirmation")
	assert.Equal(t, 1, result.RowHits["X"])

	aug := result.Augmented["X"]
	require.NotNil(t, aug)
	buy, err := aug.Column(series.ColBuySignal)
	require.NoError(t, err)
	assert.Equal(t, 1.0, buy[59])
	assert.Equal(t, 0.0, buy[58])

	tag, err := aug.Column(series.ColCandidateType)
	require.NoError(t, err)
	assert.Equal(t, 1.0, tag[59])
	assert.Equal(t, 0.0, tag[58])
}

func TestEvaluate_BreakoutWithoutTrend(t *testing.T) {
	e := New(nil, 1)
	prof := profile.Balanced()
	monthOnly(&prof)

	highs, closes := breakoutSeries(60, -0.1) // falling closes: SMA20 < SMA50
	data := map[string]*series.Table{"X": dailyTable(highs, closes)}

	result := e.Evaluate(context.Background(), []string{"X"}, data, prof)

	assert.Equal(t, 0.5, result.Signals["X"], "breakout weight only, no trend bonus")
	assert.True(t, result.Contains("X"), "0.5 meets the default threshold")
}

func TestEvaluate_MultipleTimeframesStack(t *testing.T) {
	e := New(nil, 1)
	prof := profile.Balanced()
	prof.Daily.Timeframes = []int{5, 10}

	highs, closes := breakoutSeries(30, 0)
	data := map[string]*series.Table{"X": dailyTable(highs, closes)}

	result := e.Evaluate(context.Background(), []string{"X"}, data, prof)

	// Both windows broke; too few days for SMA50 so no trend bonus
	assert.Equal(t, 1.0, result.Signals["X"])
}

func TestEvaluate_NoBreakout(t *testing.T) {
	e := New(nil, 1)
	prof := profile.Balanced()
	monthOnly(&prof)

	highs := make([]float64, 60)
	closes := make([]float64, 60)
	for i := range highs {
		highs[i], closes[i] = 10, 10
	}
	data := map[string]*series.Table{"FLAT": dailyTable(highs, closes)}

	result := e.Evaluate(context.Background(), []string{"FLAT"}, data, prof)

	assert.Empty(t, result.Passed)
	assert.Equal(t, 0.0, result.Signals["FLAT"])

	// Augmented table still comes back so downstream replay sees zeros
	aug := result.Augmented["FLAT"]
	require.NotNil(t, aug)
	buy, err := aug.Column(series.ColBuySignal)
	require.NoError(t, err)
	for _, v := range buy {
		assert.Equal(t, 0.0, v)
	}
}

func TestEvaluate_WindowShorterThanTimeframe(t *testing.T) {
	e := New(nil, 1)
	prof := profile.Balanced()
	monthOnly(&prof)

	// 10 days cannot fill a 21-day window, so the spike cannot score
	highs, closes := breakoutSeries(10, 0.1)
	data := map[string]*series.Table{"SHORT": dailyTable(highs, closes)}

	result := e.Evaluate(context.Background(), []string{"SHORT"}, data, prof)

	assert.Empty(t, result.Passed)
}

func TestEvaluate_InputTableNotMutated(t *testing.T) {
	e := New(nil, 1)
	prof := profile.Balanced()
	monthOnly(&prof)

	highs, closes := breakoutSeries(60, 0.1)
	tbl := dailyTable(highs, closes)
	data := map[string]*series.Table{"X": tbl}

	_ = e.Evaluate(context.Background(), []string{"X"}, data, prof)

	assert.False(t, tbl.HasColumn(series.ColBuySignal), "evaluator must augment a copy, not the input")
}

func TestEvaluate_Disabled(t *testing.T) {
	e := New(nil, 1)
	prof := profile.Balanced()
	prof.Daily.Enabled = false

	result := e.Evaluate(context.Background(), []string{"ANY"}, nil, prof)

	assert.True(t, result.Bypassed)
	assert.Equal(t, 1.0, result.Signals["ANY"])
}

func TestEvaluate_MissingColumnsAutoPasses(t *testing.T) {
	e := New(nil, 1)
	tbl := series.NewTable()
	tbl.Append(time.Now(), map[string]float64{"close": 10})

	result := e.Evaluate(context.Background(), []string{"NOHL"}, map[string]*series.Table{"NOHL": tbl}, profile.Balanced())

	assert.Equal(t, []string{"NOHL"}, result.AutoPassed)
}
