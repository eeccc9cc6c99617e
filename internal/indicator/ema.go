package indicator

import (
	"errors"
	"math"
)

// CalculateEMA computes the exponential moving average series with the
// usual 2/(period+1) multiplier, seeded with a simple average of the
// first `period` defined values. A NaN prefix in the input (for
// example a MACD line still warming up) is skipped, so the seed always
// starts at the first defined index.
func CalculateEMA(values []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, errors.New("period must be positive")
	}
	n := len(values)
	out := nanSlice(n)

	start := 0
	for start < n && math.IsNaN(values[start]) {
		start++
	}
	if n-start < period {
		return out, nil
	}

	sum := 0.0
	for i := start; i < start+period; i++ {
		sum += values[i]
	}
	prev := sum / float64(period)
	out[start+period-1] = prev

	k := 2.0 / float64(period+1)
	for i := start + period; i < n; i++ {
		prev = (values[i]-prev)*k + prev
		out[i] = prev
	}
	return out, nil
}

// CalculateSMA computes the simple average of the trailing `period`
// values.
func CalculateSMA(values []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(values) < period {
		return 0, errors.New("not enough data for SMA calculation")
	}
	sum := 0.0
	for i := len(values) - period; i < len(values); i++ {
		sum += values[i]
	}
	return sum / float64(period), nil
}
