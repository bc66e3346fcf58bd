package risk

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSizePosition(t *testing.T) {
	size := SizePosition(decimal.NewFromInt(100000), decimal.NewFromInt(250), 10, 0, 0.4)

	assert.Equal(t, int64(40), size.Quantity)
	assert.True(t, size.Value.Equal(decimal.NewFromInt(10000)), "got %s", size.Value)
	assert.True(t, size.PctOfBalance.Equal(decimal.NewFromFloat(0.10)), "got %s", size.PctOfBalance)
	assert.False(t, size.Zero())
}

func TestSizePosition_MaxSinglePositionCaps(t *testing.T) {
	// With only two slots, 1/2 would be 50% of balance; the per-position
	// cap takes over.
	size := SizePosition(decimal.NewFromInt(100000), decimal.NewFromInt(100), 2, 0, 0.25)

	assert.Equal(t, int64(250), size.Quantity)
	assert.True(t, size.Value.Equal(decimal.NewFromInt(25000)), "got %s", size.Value)
}

func TestSizePosition_RoundingRealized(t *testing.T) {
	// 10000 / 333 = 30.03 shares; the realized value reflects 30 whole
	// shares, not the unrounded target.
	size := SizePosition(decimal.NewFromInt(100000), decimal.NewFromInt(333), 10, 0, 0.4)

	assert.Equal(t, int64(30), size.Quantity)
	assert.True(t, size.Value.Equal(decimal.NewFromInt(9990)), "got %s", size.Value)
	assert.True(t, size.PctOfBalance.LessThan(decimal.NewFromFloat(0.10)))
}

func TestSizePosition_NoSlots(t *testing.T) {
	size := SizePosition(decimal.NewFromInt(100000), decimal.NewFromInt(250), 10, 10, 0.4)
	assert.True(t, size.Zero())
	assert.True(t, size.Value.IsZero())

	size = SizePosition(decimal.NewFromInt(100000), decimal.NewFromInt(250), 0, 0, 0.4)
	assert.True(t, size.Zero())
}

func TestSizePosition_PriceExceedsTarget(t *testing.T) {
	size := SizePosition(decimal.NewFromInt(1000), decimal.NewFromInt(500), 10, 0, 0.4)
	assert.True(t, size.Zero(), "a share dearer than the slot target yields no position")

	size = SizePosition(decimal.Zero, decimal.NewFromInt(500), 10, 0, 0.4)
	assert.True(t, size.Zero())
}
