package strategy

import (
	"fmt"

	"TradePulse/internal/model"
)

// Thresholds holds the RSI zones the combiner votes on. The buy zone
// is the band just above oversold where a bounce is still early; the
// sell zone mirrors it below overbought.
type Thresholds struct {
	RSIBuyMin  float64
	RSIBuyMax  float64
	RSISellMin float64
	RSISellMax float64
}

// DefaultThresholds returns the standard zones: buy 30-40, sell 60-70.
func DefaultThresholds() Thresholds {
	return Thresholds{
		RSIBuyMin:  30,
		RSIBuyMax:  40,
		RSISellMin: 60,
		RSISellMax: 70,
	}
}

// Validate checks both zones are well-formed bands inside [0,100].
func (t Thresholds) Validate() error {
	if t.RSIBuyMin < 0 || t.RSIBuyMax > 100 || t.RSIBuyMin >= t.RSIBuyMax {
		return fmt.Errorf("rsi buy zone [%g,%g] is not a valid band", t.RSIBuyMin, t.RSIBuyMax)
	}
	if t.RSISellMin < 0 || t.RSISellMax > 100 || t.RSISellMin >= t.RSISellMax {
		return fmt.Errorf("rsi sell zone [%g,%g] is not a valid band", t.RSISellMin, t.RSISellMax)
	}
	return nil
}

// Evaluate classifies one reading. Three buy conditions (RSI inside
// the buy zone, trend up, MACD above its signal line) and three
// mirrored sell conditions each contribute a vote; all three on one
// side makes a strong signal, exactly two a plain one, anything else
// is neutral. A reading still inside any indicator's warm-up window
// never produces a non-neutral signal.
func Evaluate(r model.IndicatorReading, t Thresholds) model.Assessment {
	a := model.Assessment{Signal: model.SignalNeutral}

	if r.RSIValid {
		a.RSIBuyZone = r.RSI >= t.RSIBuyMin && r.RSI <= t.RSIBuyMax
		a.RSISellZone = r.RSI >= t.RSISellMin && r.RSI <= t.RSISellMax
	}
	a.TrendUp = r.Direction == model.TrendUp
	a.TrendDown = r.Direction == model.TrendDown
	if r.MACDValid {
		a.MACDBullish = r.MACD > r.MACDSignal
		a.MACDBearish = r.MACD < r.MACDSignal
	}

	a.BuyVotes = countVotes(a.RSIBuyZone, a.TrendUp, a.MACDBullish)
	a.SellVotes = countVotes(a.RSISellZone, a.TrendDown, a.MACDBearish)

	if !r.Complete() {
		return a
	}

	switch {
	case a.BuyVotes == 3:
		a.Signal = model.SignalStrongBuy
	case a.SellVotes == 3:
		a.Signal = model.SignalStrongSell
	case a.BuyVotes == 2 && a.BuyVotes > a.SellVotes:
		a.Signal = model.SignalBuy
	case a.SellVotes == 2 && a.SellVotes > a.BuyVotes:
		a.Signal = model.SignalSell
	}
	return a
}

func countVotes(conditions ...bool) int {
	n := 0
	for _, c := range conditions {
		if c {
			n++
		}
	}
	return n
}
