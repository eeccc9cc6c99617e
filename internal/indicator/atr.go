package indicator

import (
	"errors"
	"math"

	"TradePulse/internal/model"
)

// CalculateTrueRange returns the per-bar true range: the largest of
// high-low, |high-prevClose| and |low-prevClose|. The first bar has no
// previous close, so its true range is just high-low.
func CalculateTrueRange(bars []model.OHLCV) []float64 {
	tr := make([]float64, len(bars))
	if len(bars) == 0 {
		return tr
	}
	tr[0] = bars[0].High - bars[0].Low
	for i := 1; i < len(bars); i++ {
		hl := bars[i].High - bars[i].Low
		hc := math.Abs(bars[i].High - bars[i-1].Close)
		lc := math.Abs(bars[i].Low - bars[i-1].Close)
		tr[i] = math.Max(hl, math.Max(hc, lc))
	}
	return tr
}

// CalculateATR computes the Wilder-smoothed average true range,
// seeded with a simple average of the first `period` true ranges. The
// first period-1 entries are NaN.
func CalculateATR(bars []model.OHLCV, period int) ([]float64, error) {
	if period <= 0 {
		return nil, errors.New("period must be positive")
	}
	out := nanSlice(len(bars))
	if len(bars) < period {
		return out, nil
	}

	tr := CalculateTrueRange(bars)
	sum := 0.0
	for i := 0; i < period; i++ {
		sum += tr[i]
	}
	prev := sum / float64(period)
	out[period-1] = prev

	for i := period; i < len(bars); i++ {
		prev = (prev*float64(period-1) + tr[i]) / float64(period)
		out[i] = prev
	}
	return out, nil
}
