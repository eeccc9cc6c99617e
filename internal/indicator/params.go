package indicator

import "fmt"

// Params holds every indicator period in one place so a series can be
// recomputed identically from the same inputs.
type Params struct {
	RSIPeriod     int
	ATRPeriod     int
	ATRMultiplier float64
	MACDFast      int
	MACDSlow      int
	MACDSignal    int
}

// DefaultParams returns the standard settings: RSI 14, ATR 10 with a
// 3x band multiplier, MACD 12/26/9.
func DefaultParams() Params {
	return Params{
		RSIPeriod:     14,
		ATRPeriod:     10,
		ATRMultiplier: 3.0,
		MACDFast:      12,
		MACDSlow:      26,
		MACDSignal:    9,
	}
}

// Validate checks every period against its allowed range.
func (p Params) Validate() error {
	if p.RSIPeriod < 2 {
		return fmt.Errorf("rsi period must be at least 2, got %d", p.RSIPeriod)
	}
	if p.ATRPeriod < 2 {
		return fmt.Errorf("atr period must be at least 2, got %d", p.ATRPeriod)
	}
	if p.ATRMultiplier <= 0 {
		return fmt.Errorf("atr multiplier must be positive, got %g", p.ATRMultiplier)
	}
	if p.MACDFast < 2 || p.MACDSlow < 2 {
		return fmt.Errorf("macd periods must be at least 2, got %d/%d", p.MACDFast, p.MACDSlow)
	}
	if p.MACDFast >= p.MACDSlow {
		return fmt.Errorf("macd fast period %d must be shorter than slow period %d", p.MACDFast, p.MACDSlow)
	}
	if p.MACDSignal < 1 {
		return fmt.Errorf("macd signal period must be at least 1, got %d", p.MACDSignal)
	}
	return nil
}

// MinBars is the series length at which every indicator has left its
// warm-up window: RSI needs period+1 bars, ATR needs period, and the
// MACD histogram needs slow+signal-1.
func (p Params) MinBars() int {
	n := p.RSIPeriod + 1
	if p.ATRPeriod > n {
		n = p.ATRPeriod
	}
	if m := p.MACDSlow + p.MACDSignal - 1; m > n {
		n = m
	}
	return n
}

// Key renders the params as a stable string for cache keys.
func (p Params) Key() string {
	return fmt.Sprintf("rsi%d_atr%dx%g_macd%d-%d-%d",
		p.RSIPeriod, p.ATRPeriod, p.ATRMultiplier, p.MACDFast, p.MACDSlow, p.MACDSignal)
}
