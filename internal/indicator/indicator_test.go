package indicator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSMA(t *testing.T) {
	prices := []float64{1, 2, 3, 4, 5}

	result := SMA(prices, 3)
	assert.Equal(t, []float64{2, 3, 4}, result)
}

func TestSMA_InsufficientData(t *testing.T) {
	assert.Empty(t, SMA([]float64{1, 2}, 3))
	assert.Empty(t, SMA(nil, 3))
	assert.Empty(t, SMA([]float64{1, 2, 3}, 0))
}

func TestRollingMax(t *testing.T) {
	values := []float64{3, 1, 4, 1, 5, 9, 2, 6}

	result := RollingMax(values, 3)
	assert.Equal(t, []float64{4, 4, 5, 9, 9, 9}, result)
}

func TestRollingMax_WindowOne(t *testing.T) {
	values := []float64{2, 7, 1}
	assert.Equal(t, values, RollingMax(values, 1))
}

func TestRollingMax_Descending(t *testing.T) {
	values := []float64{9, 8, 7, 6}
	assert.Equal(t, []float64{9, 8, 7}, RollingMax(values, 2))
}

func TestRollingMax_InsufficientData(t *testing.T) {
	assert.Empty(t, RollingMax([]float64{1}, 2))
	assert.Empty(t, RollingMax(nil, 2))
}
