package indicator

import (
	"errors"
	"math"
)

// MACDResult holds the MACD line, its signal line, and the histogram.
// The line is defined from index slow-1, the signal and histogram from
// index slow+signal-2; earlier entries are NaN.
type MACDResult struct {
	Line      []float64
	Signal    []float64
	Histogram []float64
}

// CalculateMACD computes MACD over the close series: the line is
// EMA(fast) minus EMA(slow), the signal line is an EMA of the line
// itself, and the histogram is their difference.
func CalculateMACD(closes []float64, fast, slow, signal int) (*MACDResult, error) {
	if fast <= 0 || slow <= 0 || signal <= 0 {
		return nil, errors.New("periods must be positive")
	}
	if fast >= slow {
		return nil, errors.New("fast period must be shorter than slow period")
	}

	fastEMA, err := CalculateEMA(closes, fast)
	if err != nil {
		return nil, err
	}
	slowEMA, err := CalculateEMA(closes, slow)
	if err != nil {
		return nil, err
	}

	n := len(closes)
	res := &MACDResult{Line: nanSlice(n), Histogram: nanSlice(n)}
	for i := 0; i < n; i++ {
		if !math.IsNaN(fastEMA[i]) && !math.IsNaN(slowEMA[i]) {
			res.Line[i] = fastEMA[i] - slowEMA[i]
		}
	}

	res.Signal, err = CalculateEMA(res.Line, signal)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		if !math.IsNaN(res.Line[i]) && !math.IsNaN(res.Signal[i]) {
			res.Histogram[i] = res.Line[i] - res.Signal[i]
		}
	}
	return res, nil
}
