package series

import (
	"fmt"
	"time"
)

// Column names shared with the data provider. Providers populate the
// input columns; the daily evaluator writes the derived ones back into
// the augmented table it returns.
const (
	// Quarterly fundamentals
	ColRevenueYoY = "rev_yoy"
	ColEPSYoY     = "eps_yoy"
	ColMarketCap  = "market_cap"
	ColRevenue    = "revenue"

	// Weekly bars
	ColClose   = "close"
	ColHigh52W = "high_52w"
	ColLow52W  = "low_52w"
	ColHigh1Y  = "high_1y"
	ColHigh2Y  = "high_2y"
	ColLow1Y   = "low_1y"
	ColLow2Y   = "low_2y"

	// Relative strength
	ColRS4W = "rs_4w"

	// Daily bars
	ColOpen = "open"
	ColHigh = "high"
	ColLow  = "low"

	// Derived daily outputs
	ColBuySignal     = "buy_signal"
	ColSellSignal    = "sell_signal"
	ColCandidateType = "candidate_type"
)

func requireColumns(t *Table, names ...string) error {
	for _, name := range names {
		if !t.HasColumn(name) {
			return fmt.Errorf("series: required column %q missing", name)
		}
	}
	return nil
}

// EarningsQuarter is one quarterly row as seen by the earnings stage.
type EarningsQuarter struct {
	Date       time.Time
	RevenueYoY float64
	EPSYoY     float64
}

// EarningsView reads the columns the earnings stage needs.
type EarningsView struct {
	t *Table
}

// NewEarningsView validates the required columns and returns a view.
func NewEarningsView(t *Table) (*EarningsView, error) {
	if err := requireColumns(t, ColRevenueYoY, ColEPSYoY); err != nil {
		return nil, err
	}
	return &EarningsView{t: t}, nil
}

func (v *EarningsView) Len() int { return v.t.Len() }

func (v *EarningsView) Quarter(i int) EarningsQuarter {
	rev, _ := v.t.Value(ColRevenueYoY, i)
	eps, _ := v.t.Value(ColEPSYoY, i)
	return EarningsQuarter{Date: v.t.Date(i), RevenueYoY: rev, EPSYoY: eps}
}

// FundamentalQuarter is one quarterly row as seen by the fundamental stage.
type FundamentalQuarter struct {
	Date       time.Time
	MarketCap  float64
	Revenue    float64
	RevenueYoY float64
	EPSYoY     float64
}

// FundamentalView reads the columns the fundamental stage needs.
type FundamentalView struct {
	t *Table
}

// NewFundamentalView validates the required columns and returns a view.
func NewFundamentalView(t *Table) (*FundamentalView, error) {
	if err := requireColumns(t, ColMarketCap, ColRevenue, ColRevenueYoY, ColEPSYoY); err != nil {
		return nil, err
	}
	return &FundamentalView{t: t}, nil
}

func (v *FundamentalView) Len() int { return v.t.Len() }

func (v *FundamentalView) Quarter(i int) FundamentalQuarter {
	cap, _ := v.t.Value(ColMarketCap, i)
	rev, _ := v.t.Value(ColRevenue, i)
	revYoY, _ := v.t.Value(ColRevenueYoY, i)
	epsYoY, _ := v.t.Value(ColEPSYoY, i)
	return FundamentalQuarter{
		Date:       v.t.Date(i),
		MarketCap:  cap,
		Revenue:    rev,
		RevenueYoY: revYoY,
		EPSYoY:     epsYoY,
	}
}

// WeeklyBar is one weekly row with its rolling range statistics.
type WeeklyBar struct {
	Date    time.Time
	Close   float64
	High52W float64
	Low52W  float64
	High1Y  float64
	High2Y  float64
	Low1Y   float64
	Low2Y   float64
}

// WeeklyView reads the columns the weekly stage needs.
type WeeklyView struct {
	t *Table
}

// NewWeeklyView validates the required columns and returns a view.
func NewWeeklyView(t *Table) (*WeeklyView, error) {
	err := requireColumns(t, ColClose, ColHigh52W, ColLow52W, ColHigh1Y, ColHigh2Y, ColLow1Y, ColLow2Y)
	if err != nil {
		return nil, err
	}
	return &WeeklyView{t: t}, nil
}

func (v *WeeklyView) Len() int { return v.t.Len() }

func (v *WeeklyView) Bar(i int) WeeklyBar {
	c, _ := v.t.Value(ColClose, i)
	h52, _ := v.t.Value(ColHigh52W, i)
	l52, _ := v.t.Value(ColLow52W, i)
	h1, _ := v.t.Value(ColHigh1Y, i)
	h2, _ := v.t.Value(ColHigh2Y, i)
	l1, _ := v.t.Value(ColLow1Y, i)
	l2, _ := v.t.Value(ColLow2Y, i)
	return WeeklyBar{
		Date: v.t.Date(i), Close: c,
		High52W: h52, Low52W: l52,
		High1Y: h1, High2Y: h2, Low1Y: l1, Low2Y: l2,
	}
}

// RelStrengthView reads the 4-week relative strength percentile rank.
type RelStrengthView struct {
	t *Table
}

// NewRelStrengthView validates the required column and returns a view.
func NewRelStrengthView(t *Table) (*RelStrengthView, error) {
	if err := requireColumns(t, ColRS4W); err != nil {
		return nil, err
	}
	return &RelStrengthView{t: t}, nil
}

func (v *RelStrengthView) Len() int { return v.t.Len() }

func (v *RelStrengthView) Percentile(i int) float64 {
	p, _ := v.t.Value(ColRS4W, i)
	return p
}

// DailyView reads daily OHLC bars.
type DailyView struct {
	t *Table
}

// NewDailyView validates the required columns and returns a view.
func NewDailyView(t *Table) (*DailyView, error) {
	if err := requireColumns(t, ColOpen, ColHigh, ColLow, ColClose); err != nil {
		return nil, err
	}
	return &DailyView{t: t}, nil
}

func (v *DailyView) Len() int { return v.t.Len() }

// Highs returns the high column. The slice must not be modified.
func (v *DailyView) Highs() []float64 {
	col, _ := v.t.Column(ColHigh)
	return col
}

// Closes returns the close column. The slice must not be modified.
func (v *DailyView) Closes() []float64 {
	col, _ := v.t.Column(ColClose)
	return col
}
