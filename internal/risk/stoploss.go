// Package risk implements position risk management: the stepped
// trailing stop-loss and slot-based position sizing. All functions are
// pure; the caller owns position persistence and must serialize updates
// per symbol.
package risk

import "math"

// ComputeStopLoss returns the new stop price for a position given its
// cumulative gain ratio (1.0 = break-even).
//
// The stop advances as a staircase, not a constant-percentage trail:
// profit must clear a full additional risk unit before the stop ratchets
// up by one unit. Below one risk unit of profit the stop sits at a flat
// floor under the entry price. The returned stop never decreases and
// never falls below entry × (1 − minStopPct).
func ComputeStopLoss(gainRatio, currentStop, entryPrice, riskUnit, minStopPct float64) float64 {
	floor := entryPrice * (1 - minStopPct)

	var candidate float64
	if gainRatio < 1+riskUnit {
		candidate = floor
	} else {
		units := math.Floor((gainRatio - 1) / riskUnit)
		candidate = entryPrice * (1 + (units-1)*riskUnit)
	}

	if candidate < floor {
		candidate = floor
	}
	return math.Max(candidate, currentStop)
}
