// Package indicator computes technical indicator series (RSI, ATR,
// Supertrend, MACD) over ordered OHLCV bars. All series functions are
// pure: they return slices aligned index-for-index with the input,
// with NaN over the warm-up prefix where the indicator is undefined.
package indicator

import (
	"errors"
	"fmt"
	"math"

	"TradePulse/internal/model"
)

var (
	// ErrInsufficientData is returned for an empty series. A series
	// that is merely shorter than an indicator's lookback is not an
	// error; it yields undefined readings instead.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrInvalidInput is returned for malformed bars or parameters.
	ErrInvalidInput = errors.New("invalid input")
)

// ValidateSeries rejects malformed bars before any computation:
// timestamps must be strictly increasing, prices and volume must be
// finite and non-negative, and high must not be below low.
func ValidateSeries(bars []model.OHLCV) error {
	for i, b := range bars {
		if i > 0 && !bars[i-1].Time.Before(b.Time) {
			return fmt.Errorf("%w: bar %d time %s is not after bar %d time %s",
				ErrInvalidInput, i, b.Time.Format("2006-01-02T15:04:05"), i-1, bars[i-1].Time.Format("2006-01-02T15:04:05"))
		}
		for _, v := range [5]float64{b.Open, b.High, b.Low, b.Close, b.Volume} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: bar %d contains a non-finite value", ErrInvalidInput, i)
			}
			if v < 0 {
				return fmt.Errorf("%w: bar %d contains a negative value", ErrInvalidInput, i)
			}
		}
		if b.High < b.Low {
			return fmt.Errorf("%w: bar %d high %.4f below low %.4f", ErrInvalidInput, i, b.High, b.Low)
		}
	}
	return nil
}

// Compute runs every indicator over the series and assembles one
// reading per bar. Readings inside an indicator's warm-up window carry
// the corresponding validity flag unset; values never leak as NaN.
func Compute(bars []model.OHLCV, p Params) ([]model.IndicatorReading, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}
	if len(bars) == 0 {
		return nil, ErrInsufficientData
	}
	if err := ValidateSeries(bars); err != nil {
		return nil, err
	}

	closes := extractCloses(bars)
	rsi, err := CalculateRSI(closes, p.RSIPeriod)
	if err != nil {
		return nil, err
	}
	st, err := CalculateSupertrend(bars, p.ATRPeriod, p.ATRMultiplier)
	if err != nil {
		return nil, err
	}
	macd, err := CalculateMACD(closes, p.MACDFast, p.MACDSlow, p.MACDSignal)
	if err != nil {
		return nil, err
	}

	readings := make([]model.IndicatorReading, len(bars))
	for i := range bars {
		r := model.IndicatorReading{Time: bars[i].Time, Direction: st.Direction[i]}
		if !math.IsNaN(rsi[i]) {
			r.RSI = rsi[i]
			r.RSIValid = true
		}
		if st.Direction[i] != model.TrendNone {
			r.Supertrend = st.Line[i]
			r.UpperBand = st.UpperBand[i]
			r.LowerBand = st.LowerBand[i]
		}
		if !math.IsNaN(macd.Histogram[i]) {
			r.MACD = macd.Line[i]
			r.MACDSignal = macd.Signal[i]
			r.Histogram = macd.Histogram[i]
			r.MACDValid = true
		}
		readings[i] = r
	}
	return readings, nil
}

func extractCloses(bars []model.OHLCV) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}

func nanSlice(n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = math.NaN()
	}
	return s
}
