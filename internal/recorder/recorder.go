package recorder

import (
	"time"

	"TradePulse/internal/model"
)

// SignalEvent holds one evaluated ticker scan worth persisting.
type SignalEvent struct {
	Symbol     string
	Signal     model.Signal
	Price      float64
	RSI        float64
	RSIValid   bool
	Supertrend float64
	Trend      model.TrendDirection
	MACD       float64
	MACDSignal float64
	MACDValid  bool
	BuyVotes   int
	SellVotes  int
	Notified   bool
}

// TradeEvent records a paper trade applied to the portfolio.
type TradeEvent struct {
	Symbol           string
	Side             string // "BUY" or "SELL"
	Shares           float64
	Price            float64
	Amount           float64
	BuyingPowerAfter float64
	Note             string
}

// SnapshotEvent records the portfolio totals after a scan cycle.
type SnapshotEvent struct {
	TotalValue    float64
	BuyingPower   float64
	HoldingsCount int
	UnrealizedPnL float64
}

// Recorder persists historical data for analysis.
type Recorder interface {
	RecordSignal(evt *SignalEvent) error
	RecordTrade(evt *TradeEvent) error
	RecordSnapshot(evt *SnapshotEvent) error
	CountSignalsSince(since time.Time) (int, error)
	Close() error
}
