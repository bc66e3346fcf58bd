package series

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEarningsView(t *testing.T) {
	tbl := NewTable()
	tbl.Append(day(0), map[string]float64{ColRevenueYoY: 0.2, ColEPSYoY: 0.3})

	v, err := NewEarningsView(tbl)
	require.NoError(t, err)
	require.Equal(t, 1, v.Len())

	q := v.Quarter(0)
	assert.Equal(t, 0.2, q.RevenueYoY)
	assert.Equal(t, 0.3, q.EPSYoY)
	assert.Equal(t, day(0), q.Date)
}

func TestNewEarningsView_MissingColumn(t *testing.T) {
	tbl := NewTable()
	tbl.Append(day(0), map[string]float64{ColRevenueYoY: 0.2})

	_, err := NewEarningsView(tbl)
	assert.Error(t, err)
}

func TestNewFundamentalView(t *testing.T) {
	tbl := NewTable()
	tbl.Append(day(0), map[string]float64{
		ColMarketCap:  1e9,
		ColRevenue:    5e7,
		ColRevenueYoY: 0.25,
		ColEPSYoY:     0.15,
	})

	v, err := NewFundamentalView(tbl)
	require.NoError(t, err)

	q := v.Quarter(0)
	assert.Equal(t, 1e9, q.MarketCap)
	assert.Equal(t, 5e7, q.Revenue)

	// Fundamental view is stricter than the earnings one
	bare := NewTable()
	bare.Append(day(0), map[string]float64{ColRevenueYoY: 0.25, ColEPSYoY: 0.15})
	_, err = NewFundamentalView(bare)
	assert.Error(t, err)
}

func TestNewWeeklyView(t *testing.T) {
	tbl := NewTable()
	tbl.Append(day(0), map[string]float64{
		ColClose: 100, ColHigh52W: 120, ColLow52W: 70,
		ColHigh1Y: 120, ColHigh2Y: 120, ColLow1Y: 80, ColLow2Y: 60,
	})

	v, err := NewWeeklyView(tbl)
	require.NoError(t, err)

	b := v.Bar(0)
	assert.Equal(t, 100.0, b.Close)
	assert.Equal(t, 120.0, b.High1Y)
	assert.Equal(t, 60.0, b.Low2Y)
}

func TestNewRelStrengthView(t *testing.T) {
	tbl := NewTable()
	tbl.Append(day(0), map[string]float64{ColRS4W: 87})

	v, err := NewRelStrengthView(tbl)
	require.NoError(t, err)
	assert.Equal(t, 87.0, v.Percentile(0))

	_, err = NewRelStrengthView(NewTable())
	assert.Error(t, err)
}

func TestNewDailyView(t *testing.T) {
	tbl := NewTable()
	tbl.Append(day(0), map[string]float64{ColOpen: 9, ColHigh: 11, ColLow: 8, ColClose: 10})
	tbl.Append(day(1), map[string]float64{ColOpen: 10, ColHigh: 12, ColLow: 9, ColClose: 11})

	v, err := NewDailyView(tbl)
	require.NoError(t, err)
	assert.Equal(t, []float64{11, 12}, v.Highs())
	assert.Equal(t, []float64{10, 11}, v.Closes())
}
