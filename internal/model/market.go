package model

import "time"

// OHLCV represents a single candlestick bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// TickerReport bundles everything one scan produced for a symbol:
// the raw bars, the per-bar indicator readings, and the assessment
// of the latest reading.
type TickerReport struct {
	Symbol       string
	CurrentPrice float64
	FetchedAt    time.Time
	Bars         []OHLCV
	Readings     []IndicatorReading
	Assessment   Assessment

	// Windowed extremes of the fetched bars; zero when the series is
	// shorter than the configured window.
	Support    float64
	Resistance float64
}

// Latest returns the most recent indicator reading, if any.
func (r *TickerReport) Latest() (IndicatorReading, bool) {
	if len(r.Readings) == 0 {
		return IndicatorReading{}, false
	}
	return r.Readings[len(r.Readings)-1], true
}
