package risk

import "github.com/shopspring/decimal"

// PositionSize is the outcome of a sizing decision. Value and
// PctOfBalance reflect the realized, whole-share quantity rather than
// the unrounded target, so the caller's accounting matches what an
// order for Quantity shares would actually cost.
type PositionSize struct {
	Value        decimal.Decimal
	Quantity     int64
	PctOfBalance decimal.Decimal
}

// Zero reports whether the sizing produced no tradable quantity.
func (p PositionSize) Zero() bool {
	return p.Quantity == 0
}

// SizePosition sizes a new position against available capital. The
// target fraction of balance is min(1/maxSlots, maxSinglePositionPct);
// the quantity is the largest whole-share count that fits it. When no
// slots remain, or price or balance is non-positive, the result is a
// zero quantity.
func SizePosition(balance, price decimal.Decimal, maxSlots, openSlotsUsed int, maxSinglePositionPct float64) PositionSize {
	if maxSlots <= 0 || openSlotsUsed >= maxSlots {
		return PositionSize{Value: decimal.Zero, PctOfBalance: decimal.Zero}
	}
	if !price.IsPositive() || !balance.IsPositive() {
		return PositionSize{Value: decimal.Zero, PctOfBalance: decimal.Zero}
	}

	slotFraction := decimal.New(1, 0).Div(decimal.NewFromInt(int64(maxSlots)))
	maxFraction := decimal.NewFromFloat(maxSinglePositionPct)
	targetFraction := slotFraction
	if maxFraction.LessThan(slotFraction) {
		targetFraction = maxFraction
	}

	targetValue := balance.Mul(targetFraction)
	quantity := targetValue.Div(price).IntPart()
	if quantity <= 0 {
		return PositionSize{Value: decimal.Zero, PctOfBalance: decimal.Zero}
	}

	value := price.Mul(decimal.NewFromInt(quantity))
	return PositionSize{
		Value:        value,
		Quantity:     quantity,
		PctOfBalance: value.Div(balance),
	}
}
