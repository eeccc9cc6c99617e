package indicator

import (
	"errors"

	"TradePulse/internal/model"
)

// SupertrendResult holds the band series and the per-bar direction.
// Entries before the first ATR value (index period-1) are NaN with
// direction TrendNone.
type SupertrendResult struct {
	Line      []float64 // lower band while the trend is up, upper while down
	UpperBand []float64
	LowerBand []float64
	Direction []model.TrendDirection
}

// CalculateSupertrend computes the Supertrend bands and direction.
// Basic bands are (high+low)/2 +/- multiplier*ATR. Final bands only
// ratchet in the trend-confirming direction: the upper band may move
// down but never back up unless the previous close already broke
// above it, and the lower band mirrors that. Direction flips down
// when the close reaches the lower band, up when it reaches the upper
// band, and carries over otherwise.
func CalculateSupertrend(bars []model.OHLCV, period int, multiplier float64) (*SupertrendResult, error) {
	if period <= 0 {
		return nil, errors.New("period must be positive")
	}
	if multiplier <= 0 {
		return nil, errors.New("multiplier must be positive")
	}

	n := len(bars)
	res := &SupertrendResult{
		Line:      nanSlice(n),
		UpperBand: nanSlice(n),
		LowerBand: nanSlice(n),
		Direction: make([]model.TrendDirection, n),
	}
	atr, err := CalculateATR(bars, period)
	if err != nil {
		return nil, err
	}
	if n < period {
		return res, nil
	}

	for i := period - 1; i < n; i++ {
		mid := (bars[i].High + bars[i].Low) / 2
		basicUpper := mid + multiplier*atr[i]
		basicLower := mid - multiplier*atr[i]

		if i == period-1 {
			// First bar with a defined ATR: bands start at the
			// basic bands and the trend seeds up unless the close
			// already sits at or below the lower band.
			res.UpperBand[i] = basicUpper
			res.LowerBand[i] = basicLower
			if bars[i].Close <= res.LowerBand[i] {
				res.Direction[i] = model.TrendDown
			} else {
				res.Direction[i] = model.TrendUp
			}
		} else {
			if basicUpper < res.UpperBand[i-1] || bars[i-1].Close > res.UpperBand[i-1] {
				res.UpperBand[i] = basicUpper
			} else {
				res.UpperBand[i] = res.UpperBand[i-1]
			}
			if basicLower > res.LowerBand[i-1] || bars[i-1].Close < res.LowerBand[i-1] {
				res.LowerBand[i] = basicLower
			} else {
				res.LowerBand[i] = res.LowerBand[i-1]
			}

			switch {
			case bars[i].Close <= res.LowerBand[i]:
				res.Direction[i] = model.TrendDown
			case bars[i].Close >= res.UpperBand[i]:
				res.Direction[i] = model.TrendUp
			default:
				res.Direction[i] = res.Direction[i-1]
			}
		}

		if res.Direction[i] == model.TrendUp {
			res.Line[i] = res.LowerBand[i]
		} else {
			res.Line[i] = res.UpperBand[i]
		}
	}
	return res, nil
}
