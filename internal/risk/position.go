package risk

import "time"

// Position is one open holding. The execution layer creates it on a
// fill and destroys it on the closing fill; in between, UpdatePosition
// refreshes the price-derived fields on every tick.
type Position struct {
	Symbol     string    `json:"symbol"`
	Quantity   int64     `json:"quantity"`
	EntryPrice float64   `json:"entry_price"`
	Price      float64   `json:"price"`
	StopLoss   float64   `json:"stop_loss"`
	GainRatio  float64   `json:"gain_ratio"`
	RiskUnit   float64   `json:"risk_unit"`
	MinStopPct float64   `json:"min_stop_pct"`
	PL         float64   `json:"pl"`
	PLPct      float64   `json:"pl_pct"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewPosition records a filled entry. The gain ratio starts at
// break-even and the stop at its floor below the entry price.
func NewPosition(symbol string, quantity int64, entryPrice, riskUnit, minStopPct float64) Position {
	pos := Position{
		Symbol:     symbol,
		Quantity:   quantity,
		EntryPrice: entryPrice,
		Price:      entryPrice,
		GainRatio:  1.0,
		RiskUnit:   riskUnit,
		MinStopPct: minStopPct,
		UpdatedAt:  time.Now(),
	}
	pos.StopLoss = ComputeStopLoss(pos.GainRatio, 0, entryPrice, riskUnit, minStopPct)
	return pos
}

// UpdatePosition applies a new price: the gain ratio compounds by the
// tick's return, the stop is refreshed through ComputeStopLoss, and the
// unrealized P&L figures are recomputed from the entry. Pure with
// respect to its inputs; callers with concurrent price sources must
// serialize updates per symbol or the stop's monotonicity is lost.
func UpdatePosition(pos Position, newPrice float64) Position {
	if pos.Price > 0 {
		pos.GainRatio *= 1 + (newPrice-pos.Price)/pos.Price
	}
	pos.Price = newPrice
	pos.StopLoss = ComputeStopLoss(pos.GainRatio, pos.StopLoss, pos.EntryPrice, pos.RiskUnit, pos.MinStopPct)
	pos.PL = (newPrice - pos.EntryPrice) * float64(pos.Quantity)
	if pos.EntryPrice > 0 {
		pos.PLPct = (newPrice - pos.EntryPrice) / pos.EntryPrice
	}
	pos.UpdatedAt = time.Now()
	return pos
}

// Stopped reports whether the current price has reached the stop.
func (p Position) Stopped() bool {
	return p.StopLoss > 0 && p.Price <= p.StopLoss
}
