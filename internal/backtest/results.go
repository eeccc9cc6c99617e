package backtest

import (
	"math"
	"time"

	"TradePulse/internal/model"
)

// Results summarizes one backtest run.
type Results struct {
	Strategy       Strategy
	Start          time.Time
	End            time.Time
	Days           int
	InitialCapital float64
	FinalEquity    float64

	TotalReturnPct  float64
	AnnualReturnPct float64 // linear extrapolation of the total return
	SharpeRatio     float64
	MaxDrawdownPct  float64
	WinRatePct      float64
	ProfitFactor    float64 // +Inf for a profitable run with no losing trade

	Trades []Trade
	Equity []float64 // per-bar account value
}

func newResults(strat Strategy, bars []model.OHLCV, opts Options, equity []float64, trades []Trade) *Results {
	n := len(bars)
	r := &Results{
		Strategy:       strat,
		Start:          bars[0].Time,
		End:            bars[n-1].Time,
		InitialCapital: opts.InitialCapital,
		FinalEquity:    equity[n-1],
		Trades:         trades,
		Equity:         equity,
	}

	days := int(r.End.Sub(r.Start).Hours() / 24)
	if days < 1 {
		days = 1
	}
	r.Days = days

	r.TotalReturnPct = (r.FinalEquity/opts.InitialCapital - 1) * 100
	r.AnnualReturnPct = r.TotalReturnPct / float64(days) * 365
	r.MaxDrawdownPct = maxDrawdown(equity)
	r.SharpeRatio = sharpeRatio(trades)

	wins := 0
	var grossProfit, grossLoss float64
	for _, t := range trades {
		if t.PnL > 0 {
			wins++
			grossProfit += t.PnL
		} else {
			grossLoss -= t.PnL
		}
	}
	if len(trades) > 0 {
		r.WinRatePct = float64(wins) / float64(len(trades)) * 100
	}
	switch {
	case grossLoss > 0:
		r.ProfitFactor = grossProfit / grossLoss
	case grossProfit > 0:
		r.ProfitFactor = math.Inf(1)
	}
	return r
}

// maxDrawdown is the deepest peak-to-trough equity drop in percent.
func maxDrawdown(equity []float64) float64 {
	peak := math.Inf(-1)
	maxDD := 0.0
	for _, e := range equity {
		if e > peak {
			peak = e
		}
		if peak > 0 {
			if dd := (peak - e) / peak * 100; dd > maxDD {
				maxDD = dd
			}
		}
	}
	return maxDD
}

// sharpeRatio is the mean per-trade return over its population standard
// deviation. Zero when there are too few trades to measure spread.
func sharpeRatio(trades []Trade) float64 {
	if len(trades) < 2 {
		return 0
	}

	mean := 0.0
	for _, t := range trades {
		mean += t.ReturnPct
	}
	mean /= float64(len(trades))

	variance := 0.0
	for _, t := range trades {
		d := t.ReturnPct - mean
		variance += d * d
	}
	variance /= float64(len(trades))
	if variance == 0 {
		return 0
	}
	return mean / math.Sqrt(variance)
}
