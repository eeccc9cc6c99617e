package model

import "time"

// Holding is one open position.
type Holding struct {
	Symbol       string    `json:"symbol"`
	Shares       float64   `json:"shares"`
	AvgCost      float64   `json:"avg_cost"`
	CurrentPrice float64   `json:"current_price"`
	PeakPrice    float64   `json:"peak_price"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// MarketValue is shares times the last marked price.
func (h Holding) MarketValue() float64 {
	return h.Shares * h.CurrentPrice
}

// UnrealizedPnL is the open profit or loss at the last marked price.
func (h Holding) UnrealizedPnL() float64 {
	return (h.CurrentPrice - h.AvgCost) * h.Shares
}

// PortfolioState is the persisted portfolio snapshot.
type PortfolioState struct {
	Holdings    []Holding `json:"holdings"`
	BuyingPower float64   `json:"buying_power"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TotalValue is buying power plus the marked value of every holding.
func (s PortfolioState) TotalValue() float64 {
	total := s.BuyingPower
	for _, h := range s.Holdings {
		total += h.MarketValue()
	}
	return total
}

// TotalUnrealizedPnL sums the open profit or loss across holdings.
func (s PortfolioState) TotalUnrealizedPnL() float64 {
	var total float64
	for _, h := range s.Holdings {
		total += h.UnrealizedPnL()
	}
	return total
}
