package indicator

// SMA calculates Simple Moving Average
// Returns slice of length: len(prices) - period + 1
func SMA(prices []float64, period int) []float64 {
	if period <= 0 || len(prices) < period {
		return []float64{}
	}

	result := make([]float64, 0, len(prices)-period+1)

	// Calculate first SMA
	var sum float64
	for i := 0; i < period; i++ {
		sum += prices[i]
	}
	result = append(result, sum/float64(period))

	// Rolling calculation
	for i := period; i < len(prices); i++ {
		sum = sum - prices[i-period] + prices[i]
		result = append(result, sum/float64(period))
	}

	return result
}

// RollingMax calculates the highest value over a trailing window.
// Returns slice of length: len(values) - window + 1, aligned like SMA:
// result[i] is the max of values[i : i+window].
func RollingMax(values []float64, window int) []float64 {
	if window <= 0 || len(values) < window {
		return []float64{}
	}

	result := make([]float64, 0, len(values)-window+1)

	// Monotonically decreasing deque of indices
	deque := make([]int, 0, window)
	for i, v := range values {
		for len(deque) > 0 && values[deque[len(deque)-1]] <= v {
			deque = deque[:len(deque)-1]
		}
		deque = append(deque, i)

		if deque[0] <= i-window {
			deque = deque[1:]
		}

		if i >= window-1 {
			result = append(result, values[deque[0]])
		}
	}

	return result
}
