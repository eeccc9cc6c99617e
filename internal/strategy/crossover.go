package strategy

import "TradePulse/internal/model"

// Crossing helpers compare two consecutive readings. They are the
// event-based counterparts of the level-based combiner: the backtester
// enters on the bar where a condition starts holding, not on every bar
// it holds.

// MACDCrossedAbove reports a bullish MACD cross between prev and cur.
func MACDCrossedAbove(prev, cur model.IndicatorReading) bool {
	return prev.MACDValid && cur.MACDValid &&
		prev.MACD <= prev.MACDSignal && cur.MACD > cur.MACDSignal
}

// MACDCrossedBelow reports a bearish MACD cross between prev and cur.
func MACDCrossedBelow(prev, cur model.IndicatorReading) bool {
	return prev.MACDValid && cur.MACDValid &&
		prev.MACD >= prev.MACDSignal && cur.MACD < cur.MACDSignal
}

// TrendFlippedUp reports a Supertrend flip from down to up.
func TrendFlippedUp(prev, cur model.IndicatorReading) bool {
	return prev.Direction == model.TrendDown && cur.Direction == model.TrendUp
}

// TrendFlippedDown reports a Supertrend flip from up to down.
func TrendFlippedDown(prev, cur model.IndicatorReading) bool {
	return prev.Direction == model.TrendUp && cur.Direction == model.TrendDown
}

// RSICrossedBelow reports the RSI dropping through level.
func RSICrossedBelow(prev, cur model.IndicatorReading, level float64) bool {
	return prev.RSIValid && cur.RSIValid &&
		prev.RSI >= level && cur.RSI < level
}

// RSICrossedAbove reports the RSI rising through level.
func RSICrossedAbove(prev, cur model.IndicatorReading, level float64) bool {
	return prev.RSIValid && cur.RSIValid &&
		prev.RSI <= level && cur.RSI > level
}
