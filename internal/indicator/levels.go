package indicator

import (
	"errors"
	"math"

	"TradePulse/internal/model"
)

// CalculateRange scans the most recent `window` bars and returns the
// highest high (resistance) and lowest low (support). A series shorter
// than the window has no defined levels and returns an error rather
// than a partial range.
func CalculateRange(bars []model.OHLCV, window int) (high, low float64, err error) {
	if window <= 0 {
		return 0, 0, errors.New("window must be positive")
	}
	if len(bars) < window {
		return 0, 0, errors.New("not enough bars for range calculation")
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for i := len(bars) - window; i < len(bars); i++ {
		if bars[i].High > high {
			high = bars[i].High
		}
		if bars[i].Low < low {
			low = bars[i].Low
		}
	}
	return high, low, nil
}

// RollingRange returns per-bar windowed extremes: highs[i] and lows[i]
// cover bars[i-window+1 .. i]. The first window-1 entries are NaN.
func RollingRange(bars []model.OHLCV, window int) (highs, lows []float64, err error) {
	if window <= 0 {
		return nil, nil, errors.New("window must be positive")
	}
	n := len(bars)
	highs = nanSlice(n)
	lows = nanSlice(n)
	for i := window - 1; i < n; i++ {
		h := math.Inf(-1)
		l := math.Inf(1)
		for j := i - window + 1; j <= i; j++ {
			if bars[j].High > h {
				h = bars[j].High
			}
			if bars[j].Low < l {
				l = bars[j].Low
			}
		}
		highs[i] = h
		lows[i] = l
	}
	return highs, lows, nil
}
