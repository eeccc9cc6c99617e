package model

import "time"

// TrendDirection is the Supertrend state for one bar.
type TrendDirection int

const (
	TrendNone TrendDirection = 0
	TrendUp   TrendDirection = 1
	TrendDown TrendDirection = -1
)

func (d TrendDirection) String() string {
	switch d {
	case TrendUp:
		return "up"
	case TrendDown:
		return "down"
	default:
		return "none"
	}
}

// IndicatorReading holds all computed indicator values for one bar.
// Values are only meaningful once the corresponding validity flag is
// set; before that the indicator is still inside its warm-up window.
type IndicatorReading struct {
	Time time.Time

	RSI      float64
	RSIValid bool

	Supertrend float64 // active band: lower while up, upper while down
	UpperBand  float64
	LowerBand  float64
	Direction  TrendDirection

	MACD       float64
	MACDSignal float64
	Histogram  float64
	MACDValid  bool
}

// SupertrendValid reports whether the Supertrend fields are defined.
func (r IndicatorReading) SupertrendValid() bool {
	return r.Direction != TrendNone
}

// Complete reports whether every indicator has left warm-up.
func (r IndicatorReading) Complete() bool {
	return r.RSIValid && r.SupertrendValid() && r.MACDValid
}
