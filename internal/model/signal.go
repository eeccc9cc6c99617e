package model

// Signal is the discrete trading signal derived from one reading.
type Signal string

const (
	SignalStrongBuy  Signal = "strong_buy"
	SignalBuy        Signal = "buy"
	SignalNeutral    Signal = "neutral"
	SignalSell       Signal = "sell"
	SignalStrongSell Signal = "strong_sell"
)

// Actionable reports whether the signal is worth alerting on.
func (s Signal) Actionable() bool {
	return s != SignalNeutral && s != ""
}

// Assessment is the combiner's output: the signal plus the condition
// breakdown that produced it, for formatting and recording.
type Assessment struct {
	Signal    Signal
	BuyVotes  int
	SellVotes int

	RSIBuyZone  bool
	RSISellZone bool
	TrendUp     bool
	TrendDown   bool
	MACDBullish bool
	MACDBearish bool
}
