package strategy

import (
	"testing"

	"TradePulse/internal/model"
)

func reading(rsi float64, dir model.TrendDirection, macd, signal float64) model.IndicatorReading {
	return model.IndicatorReading{
		RSI:        rsi,
		RSIValid:   true,
		Direction:  dir,
		Supertrend: 100,
		MACD:       macd,
		MACDSignal: signal,
		MACDValid:  true,
	}
}

func TestEvaluate_Classification(t *testing.T) {
	cases := []struct {
		name string
		r    model.IndicatorReading
		want model.Signal
	}{
		{"all three buy conditions", reading(35, model.TrendUp, 1.2, 0.8), model.SignalStrongBuy},
		{"all three sell conditions", reading(65, model.TrendDown, -1.2, -0.8), model.SignalStrongSell},
		{"two buy conditions", reading(50, model.TrendUp, 1.2, 0.8), model.SignalBuy},
		{"rsi zone plus trend only", reading(35, model.TrendUp, -0.5, 0.5), model.SignalBuy},
		{"two sell conditions", reading(50, model.TrendDown, -1.2, -0.8), model.SignalSell},
		{"buy zone outvoted by sell side", reading(35, model.TrendDown, -1.0, 1.0), model.SignalSell},
		{"nothing aligned", reading(50, model.TrendUp, -1.0, 1.0), model.SignalNeutral},
		{"macd equal to signal votes neither way", reading(35, model.TrendUp, 1.0, 1.0), model.SignalBuy},
		{"buy zone boundaries inclusive low", reading(30, model.TrendUp, 1.0, 0.5), model.SignalStrongBuy},
		{"buy zone boundaries inclusive high", reading(40, model.TrendUp, 1.0, 0.5), model.SignalStrongBuy},
		{"just outside the buy zone", reading(40.01, model.TrendUp, 1.0, 0.5), model.SignalBuy},
		{"sell zone boundaries inclusive", reading(70, model.TrendDown, -1.0, -0.5), model.SignalStrongSell},
	}

	th := DefaultThresholds()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := Evaluate(tc.r, th)
			if a.Signal != tc.want {
				t.Errorf("Evaluate() = %s, want %s (votes %d/%d)", a.Signal, tc.want, a.BuyVotes, a.SellVotes)
			}
		})
	}
}

func TestEvaluate_UndefinedComponentsForceNeutral(t *testing.T) {
	th := DefaultThresholds()

	// Two buy conditions hold, but the RSI is still warming up: the
	// votes are reported, the signal must stay neutral.
	r := reading(0, model.TrendUp, 1.2, 0.8)
	r.RSIValid = false
	a := Evaluate(r, th)
	if a.Signal != model.SignalNeutral {
		t.Errorf("undefined RSI produced %s, want neutral", a.Signal)
	}
	if a.BuyVotes != 2 {
		t.Errorf("BuyVotes = %d, want 2", a.BuyVotes)
	}

	r = reading(35, model.TrendNone, 1.2, 0.8)
	if got := Evaluate(r, th).Signal; got != model.SignalNeutral {
		t.Errorf("undefined trend produced %s, want neutral", got)
	}

	r = reading(35, model.TrendUp, 0, 0)
	r.MACDValid = false
	if got := Evaluate(r, th).Signal; got != model.SignalNeutral {
		t.Errorf("undefined MACD produced %s, want neutral", got)
	}

	if got := Evaluate(model.IndicatorReading{}, th).Signal; got != model.SignalNeutral {
		t.Errorf("empty reading produced %s, want neutral", got)
	}
}

func TestEvaluate_VoteBreakdown(t *testing.T) {
	a := Evaluate(reading(35, model.TrendUp, 1.2, 0.8), DefaultThresholds())
	if !a.RSIBuyZone || !a.TrendUp || !a.MACDBullish {
		t.Errorf("breakdown not reported: %+v", a)
	}
	if a.RSISellZone || a.TrendDown || a.MACDBearish {
		t.Errorf("sell conditions wrongly set: %+v", a)
	}
	if a.BuyVotes != 3 || a.SellVotes != 0 {
		t.Errorf("votes = %d/%d, want 3/0", a.BuyVotes, a.SellVotes)
	}
}

func TestEvaluate_TiedVotesStayNeutral(t *testing.T) {
	// Overlapping zones can put the RSI in both bands at once; with
	// the trend voting buy and MACD voting sell the sides tie 2-2.
	th := Thresholds{RSIBuyMin: 30, RSIBuyMax: 70, RSISellMin: 30, RSISellMax: 70}
	a := Evaluate(reading(50, model.TrendUp, -1.0, 1.0), th)
	if a.BuyVotes != 2 || a.SellVotes != 2 {
		t.Fatalf("votes = %d/%d, want 2/2", a.BuyVotes, a.SellVotes)
	}
	if a.Signal != model.SignalNeutral {
		t.Errorf("tied votes produced %s, want neutral", a.Signal)
	}
}

func TestEvaluate_CustomThresholds(t *testing.T) {
	th := Thresholds{RSIBuyMin: 20, RSIBuyMax: 30, RSISellMin: 70, RSISellMax: 80}

	if got := Evaluate(reading(25, model.TrendUp, 1.0, 0.5), th).Signal; got != model.SignalStrongBuy {
		t.Errorf("custom buy zone: got %s, want strong_buy", got)
	}
	// 35 sits in the default buy zone but outside the custom one.
	if got := Evaluate(reading(35, model.TrendUp, 1.0, 0.5), th).Signal; got != model.SignalBuy {
		t.Errorf("outside custom buy zone: got %s, want buy", got)
	}
}

func TestThresholds_Validate(t *testing.T) {
	if err := DefaultThresholds().Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}

	bad := []Thresholds{
		{RSIBuyMin: 40, RSIBuyMax: 30, RSISellMin: 60, RSISellMax: 70},
		{RSIBuyMin: -5, RSIBuyMax: 30, RSISellMin: 60, RSISellMax: 70},
		{RSIBuyMin: 30, RSIBuyMax: 40, RSISellMin: 70, RSISellMax: 101},
		{RSIBuyMin: 30, RSIBuyMax: 40, RSISellMin: 70, RSISellMax: 70},
	}
	for i, th := range bad {
		if err := th.Validate(); err == nil {
			t.Errorf("case %d: expected a validation error for %+v", i, th)
		}
	}
}
