package notifier

import (
	"strings"
	"testing"
	"time"

	"TradePulse/internal/model"
)

func sampleReport() *model.TickerReport {
	return &model.TickerReport{
		Symbol:       "NVDA",
		CurrentPrice: 120.5,
		FetchedAt:    time.Date(2024, 3, 5, 15, 30, 0, 0, time.UTC),
		Readings: []model.IndicatorReading{{
			Time:       time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
			RSI:        34.2,
			RSIValid:   true,
			Supertrend: 118.9,
			Direction:  model.TrendUp,
			MACD:       1.3,
			MACDSignal: 0.9,
			Histogram:  0.4,
			MACDValid:  true,
		}},
		Assessment: model.Assessment{
			Signal:   model.SignalStrongBuy,
			BuyVotes: 3, RSIBuyZone: true, TrendUp: true, MACDBullish: true,
		},
	}
}

func TestFormatSignalAlert(t *testing.T) {
	msg := FormatSignalAlert(sampleReport())

	for _, want := range []string{
		"NVDA", "STRONG BUY", "$120.50",
		"RSI: 34.2 (buy zone)",
		"Supertrend: UP, line 118.90",
		"MACD: 1.300 / signal 0.900 (bullish)",
		"Votes: 3 buy, 0 sell",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("alert missing %q:\n%s", want, msg)
		}
	}
	if strings.Contains(msg, "NaN") {
		t.Errorf("alert leaked NaN:\n%s", msg)
	}
}

func TestFormatSignalAlertSkipsWarmupLines(t *testing.T) {
	r := sampleReport()
	r.Readings = []model.IndicatorReading{{Time: r.FetchedAt}}
	r.Assessment = model.Assessment{Signal: model.SignalNeutral}

	msg := FormatSignalAlert(r)
	for _, absent := range []string{"RSI:", "Supertrend:", "MACD:"} {
		if strings.Contains(msg, absent) {
			t.Errorf("warm-up alert must omit %q:\n%s", absent, msg)
		}
	}
}

func TestFormatScanSummary(t *testing.T) {
	msg := FormatScanSummary([]*model.TickerReport{sampleReport()}, []string{"XYZ"})

	if !strings.Contains(msg, "NVDA") || !strings.Contains(msg, "STRONG BUY") {
		t.Errorf("summary missing actionable line:\n%s", msg)
	}
	if !strings.Contains(msg, "failed: XYZ") {
		t.Errorf("summary missing failures:\n%s", msg)
	}
}

func TestFormatPortfolioStatus(t *testing.T) {
	state := model.PortfolioState{
		Holdings: []model.Holding{{
			Symbol: "NVDA", Shares: 10, AvgCost: 100, CurrentPrice: 120.5, PeakPrice: 125,
		}},
		BuyingPower: 98795,
		UpdatedAt:   time.Date(2024, 3, 5, 15, 4, 0, 0, time.UTC),
	}

	msg := FormatPortfolioStatus(state)
	for _, want := range []string{
		"NVDA: 10 sh @ $120.50",
		"PnL +205.00",
		"Buying power: $98795.00",
		"Total value: $100000.00",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("status missing %q:\n%s", want, msg)
		}
	}

	empty := FormatPortfolioStatus(model.PortfolioState{BuyingPower: 100000})
	if !strings.Contains(empty, "No open positions") {
		t.Errorf("empty portfolio message:\n%s", empty)
	}
}

func TestFormatDailyBriefing(t *testing.T) {
	state := model.PortfolioState{BuyingPower: 100000}
	msg := FormatDailyBriefing(state, []*model.TickerReport{sampleReport()}, 3)

	for _, want := range []string{"Daily Briefing", "Signals in the last 24h: 3", "NVDA"} {
		if !strings.Contains(msg, want) {
			t.Errorf("briefing missing %q:\n%s", want, msg)
		}
	}
}

func TestFormatTrailingStopAlert(t *testing.T) {
	h := model.Holding{Symbol: "TSLA", Shares: 5, AvgCost: 200, CurrentPrice: 216, PeakPrice: 240}
	msg := FormatTrailingStopAlert(h, 216, 10)

	for _, want := range []string{"TSLA", "trailing stop", "peak: $240.00", "stop: $216.00"} {
		if !strings.Contains(msg, want) {
			t.Errorf("stop alert missing %q:\n%s", want, msg)
		}
	}
}

func TestFormatHelpListsCommands(t *testing.T) {
	msg := FormatHelp()
	for _, cmd := range []string{"/scan", "/signals", "/portfolio", "/buy", "/sell", "/watchlist", "/help"} {
		if !strings.Contains(msg, cmd) {
			t.Errorf("help missing %s", cmd)
		}
	}
}
