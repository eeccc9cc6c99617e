package strategy

import (
	"testing"

	"TradePulse/internal/model"
)

func TestMACDCrossings(t *testing.T) {
	below := reading(50, model.TrendUp, -0.5, 0.2)
	above := reading(50, model.TrendUp, 0.6, 0.2)

	if !MACDCrossedAbove(below, above) {
		t.Error("expected a bullish cross")
	}
	if MACDCrossedAbove(above, above) {
		t.Error("staying above is not a cross")
	}
	if !MACDCrossedBelow(above, below) {
		t.Error("expected a bearish cross")
	}

	invalid := above
	invalid.MACDValid = false
	if MACDCrossedAbove(invalid, above) || MACDCrossedBelow(above, invalid) {
		t.Error("crossings must not fire on warm-up readings")
	}
}

func TestTrendFlips(t *testing.T) {
	up := reading(50, model.TrendUp, 0, 0)
	down := reading(50, model.TrendDown, 0, 0)
	none := reading(50, model.TrendNone, 0, 0)

	if !TrendFlippedUp(down, up) {
		t.Error("down->up should flip up")
	}
	if !TrendFlippedDown(up, down) {
		t.Error("up->down should flip down")
	}
	if TrendFlippedUp(up, up) || TrendFlippedDown(down, down) {
		t.Error("an unchanged trend is not a flip")
	}
	if TrendFlippedUp(none, up) {
		t.Error("leaving warm-up is not a flip")
	}
}

func TestRSICrossings(t *testing.T) {
	at35 := reading(35, model.TrendUp, 0, 0)
	at28 := reading(28, model.TrendUp, 0, 0)
	at31 := reading(31, model.TrendUp, 0, 0)

	if !RSICrossedBelow(at35, at28, 30) {
		t.Error("35 -> 28 crosses below 30")
	}
	if RSICrossedBelow(at28, at28, 30) {
		t.Error("staying below is not a cross")
	}
	if !RSICrossedAbove(at28, at31, 30) {
		t.Error("28 -> 31 crosses above 30")
	}
	if RSICrossedAbove(at31, at35, 30) {
		t.Error("staying above is not a cross")
	}
}
