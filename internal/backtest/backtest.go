// Package backtest replays signal rules over historical bars: one
// position at a time, long or short, where an opposite signal closes
// the position and flips it. Fills happen at the bar close with
// slippage applied against the trade and commission charged on both
// notionals.
package backtest

import (
	"fmt"
	"math"
	"time"

	"TradePulse/internal/indicator"
	"TradePulse/internal/model"
	"TradePulse/internal/strategy"
)

// Strategy selects the entry rules to replay.
type Strategy string

const (
	StrategyCombined Strategy = "combined"
	StrategyTrend    Strategy = "trend"
	StrategyMeanRev  Strategy = "meanrev"
	StrategyBreakout Strategy = "breakout"
)

// ParseStrategy maps a CLI name to a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	switch s := Strategy(name); s {
	case StrategyCombined, StrategyTrend, StrategyMeanRev, StrategyBreakout:
		return s, nil
	}
	return "", fmt.Errorf("unknown strategy %q (want combined, trend, meanrev or breakout)", name)
}

// Rule levels and windows for the non-combined strategies.
const (
	meanRevOversold   = 25.0
	meanRevOverbought = 75.0

	breakoutWindow  = 20
	volumeAvgWindow = 10
)

// Options control the execution model.
type Options struct {
	InitialCapital float64
	PositionSize   float64 // fraction of capital committed per entry
	Commission     float64 // fraction charged on each leg
	Slippage       float64 // fraction applied against the fill price
	Thresholds     strategy.Thresholds
}

// DefaultOptions returns the standard execution assumptions.
func DefaultOptions() Options {
	return Options{
		InitialCapital: 100000,
		PositionSize:   0.10,
		Commission:     0.001,
		Slippage:       0.0005,
		Thresholds:     strategy.DefaultThresholds(),
	}
}

func (o Options) Validate() error {
	if o.InitialCapital <= 0 {
		return fmt.Errorf("initial capital must be positive, got %g", o.InitialCapital)
	}
	if o.PositionSize <= 0 || o.PositionSize > 1 {
		return fmt.Errorf("position size must be in (0, 1], got %g", o.PositionSize)
	}
	if o.Commission < 0 || o.Commission >= 1 {
		return fmt.Errorf("commission must be in [0, 1), got %g", o.Commission)
	}
	if o.Slippage < 0 || o.Slippage >= 1 {
		return fmt.Errorf("slippage must be in [0, 1), got %g", o.Slippage)
	}
	return o.Thresholds.Validate()
}

// Side labels the direction of a trade.
type Side string

const (
	SideLong  Side = "long"
	SideShort Side = "short"
)

// Trade is one completed round trip.
type Trade struct {
	EntryTime  time.Time
	ExitTime   time.Time
	EntryPrice float64
	ExitPrice  float64
	Shares     float64
	Side       Side
	PnL        float64 // net of commission on both legs
	ReturnPct  float64
}

type position struct {
	side   Side
	shares float64
	entry  float64
	opened time.Time
}

// Run replays the strategy over the bars. Readings must be the
// indicator series computed from the same bars, index for index.
func Run(bars []model.OHLCV, readings []model.IndicatorReading, strat Strategy, opts Options) (*Results, error) {
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: empty series", indicator.ErrInsufficientData)
	}
	if len(readings) != len(bars) {
		return nil, fmt.Errorf("%w: %d readings for %d bars",
			indicator.ErrInvalidInput, len(readings), len(bars))
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	signals, err := ruleSeries(bars, readings, strat, opts.Thresholds)
	if err != nil {
		return nil, err
	}

	capital := opts.InitialCapital
	equity := make([]float64, len(bars))
	var trades []Trade
	var pos *position

	closeAt := func(i int) {
		var px, pnl float64
		if pos.side == SideLong {
			px = bars[i].Close * (1 - opts.Slippage)
			pnl = (px - pos.entry) * pos.shares
		} else {
			px = bars[i].Close * (1 + opts.Slippage)
			pnl = (pos.entry - px) * pos.shares
		}
		entryValue := pos.entry * pos.shares
		pnl -= (entryValue + px*pos.shares) * opts.Commission
		capital += pnl

		trades = append(trades, Trade{
			EntryTime:  pos.opened,
			ExitTime:   bars[i].Time,
			EntryPrice: pos.entry,
			ExitPrice:  px,
			Shares:     pos.shares,
			Side:       pos.side,
			PnL:        pnl,
			ReturnPct:  pnl / entryValue * 100,
		})
		pos = nil
	}

	openAt := func(i int, side Side) {
		px := bars[i].Close
		if side == SideLong {
			px *= 1 + opts.Slippage
		} else {
			px *= 1 - opts.Slippage
		}
		qty := math.Floor(capital * opts.PositionSize / px)
		if qty < 1 {
			return
		}
		pos = &position{side: side, shares: qty, entry: px, opened: bars[i].Time}
	}

	for i := range bars {
		// A signal in the direction already held changes nothing; an
		// opposite signal closes the position and flips it. No point
		// opening on the final bar just to force-close it.
		switch {
		case signals[i] > 0 && (pos == nil || pos.side == SideShort):
			if pos != nil {
				closeAt(i)
			}
			if i < len(bars)-1 {
				openAt(i, SideLong)
			}
		case signals[i] < 0 && (pos == nil || pos.side == SideLong):
			if pos != nil {
				closeAt(i)
			}
			if i < len(bars)-1 {
				openAt(i, SideShort)
			}
		}

		equity[i] = capital
		if pos != nil {
			if pos.side == SideLong {
				equity[i] += (bars[i].Close - pos.entry) * pos.shares
			} else {
				equity[i] += (pos.entry - bars[i].Close) * pos.shares
			}
		}
	}
	if pos != nil {
		closeAt(len(bars) - 1)
		equity[len(bars)-1] = capital
	}

	return newResults(strat, bars, opts, equity, trades), nil
}

// ruleSeries marks each bar with +1 (long signal), -1 (short signal)
// or 0 (hold).
func ruleSeries(bars []model.OHLCV, readings []model.IndicatorReading, strat Strategy, th strategy.Thresholds) ([]int, error) {
	n := len(bars)
	signals := make([]int, n)

	switch strat {
	case StrategyCombined:
		// Event votes: RSI crossing its bound, supertrend flipping,
		// MACD crossing its signal line. Two of three agreeing on the
		// same bar makes the signal.
		for i := 1; i < n; i++ {
			prev, cur := readings[i-1], readings[i]
			buy, sell := 0, 0
			if strategy.RSICrossedBelow(prev, cur, th.RSIBuyMin) {
				buy++
			} else if strategy.RSICrossedAbove(prev, cur, th.RSISellMax) {
				sell++
			}
			if strategy.TrendFlippedUp(prev, cur) {
				buy++
			} else if strategy.TrendFlippedDown(prev, cur) {
				sell++
			}
			if strategy.MACDCrossedAbove(prev, cur) {
				buy++
			} else if strategy.MACDCrossedBelow(prev, cur) {
				sell++
			}
			if buy >= 2 {
				signals[i] = 1
			} else if sell >= 2 {
				signals[i] = -1
			}
		}

	case StrategyTrend:
		for i, r := range readings {
			if !r.MACDValid {
				continue
			}
			if r.Direction == model.TrendUp && r.MACD > r.MACDSignal {
				signals[i] = 1
			} else if r.Direction == model.TrendDown && r.MACD < r.MACDSignal {
				signals[i] = -1
			}
		}

	case StrategyMeanRev:
		for i, r := range readings {
			if !r.RSIValid {
				continue
			}
			if r.RSI < meanRevOversold {
				signals[i] = 1
			} else if r.RSI > meanRevOverbought {
				signals[i] = -1
			}
		}

	case StrategyBreakout:
		highs, lows, err := indicator.RollingRange(bars, breakoutWindow)
		if err != nil {
			return nil, err
		}
		volumes := make([]float64, n)
		for i, b := range bars {
			volumes[i] = b.Volume
		}
		for i := 1; i < n; i++ {
			avg, err := indicator.CalculateSMA(volumes[:i+1], volumeAvgWindow)
			if err != nil || bars[i].Volume <= avg {
				continue
			}
			if !math.IsNaN(highs[i-1]) && bars[i].Close > highs[i-1] {
				signals[i] = 1
			} else if !math.IsNaN(lows[i-1]) && bars[i].Close < lows[i-1] {
				signals[i] = -1
			}
		}

	default:
		return nil, fmt.Errorf("unknown strategy %q", strat)
	}
	return signals, nil
}
