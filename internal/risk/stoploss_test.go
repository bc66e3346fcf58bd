package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeStopLoss_Staircase(t *testing.T) {
	tests := []struct {
		name      string
		gainRatio float64
		want      float64
	}{
		{"below one risk unit sits on the floor", 1.03, 97.00},
		{"one banked unit moves stop to entry", 1.06, 100.00},
		{"just under two units stays at entry", 1.0999, 100.00},
		{"two banked units", 1.11, 105.00},
		{"underwater position keeps the floor", 0.95, 97.00},
		{"exactly one risk unit", 1.05, 100.00},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeStopLoss(tt.gainRatio, 0, 100, 0.05, 0.03)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestComputeStopLoss_Monotonic(t *testing.T) {
	gains := []float64{1.0, 1.04, 1.12, 1.02, 0.98, 1.30, 1.07}

	stop := 0.0
	for _, g := range gains {
		next := ComputeStopLoss(g, stop, 100, 0.05, 0.03)
		assert.GreaterOrEqual(t, next, stop, "stop decreased at gain %v", g)
		assert.GreaterOrEqual(t, next, 97.0, "stop fell below the floor at gain %v", g)
		stop = next
	}
	// The 1.30 peak banked six units; the pullback to 1.07 must not give any back.
	assert.InDelta(t, 125.0, stop, 1e-9)
}

func TestComputeStopLoss_FloorClamp(t *testing.T) {
	// One banked unit always lands at or above the entry price.
	got := ComputeStopLoss(1.011, 0, 100, 0.01, 0.03)
	assert.InDelta(t, 100.0, got, 1e-9)

	// The stop never goes below the floor for any gain ratio.
	for _, g := range []float64{0.5, 0.9, 0.999, 1.0, 1.0499} {
		got = ComputeStopLoss(g, 0, 100, 0.05, 0.03)
		assert.InDelta(t, 97.0, got, 1e-9, "gain %v", g)
	}
}

func TestComputeStopLoss_CurrentStopWins(t *testing.T) {
	got := ComputeStopLoss(1.02, 110, 100, 0.05, 0.03)
	assert.Equal(t, 110.0, got)
}
