package portfolio

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"TradePulse/internal/model"
)

// Manager handles paper-trading operations with concurrency safety.
// Every mutation is persisted to the state file before it returns.
type Manager struct {
	mu       sync.Mutex
	state    *model.PortfolioState
	filePath string
	log      zerolog.Logger
}

// NewManager creates a Manager, loading or initializing state from disk.
func NewManager(filePath string, initialBuyingPower float64, log zerolog.Logger) (*Manager, error) {
	state, err := LoadState(filePath)
	if err != nil {
		return nil, err
	}

	// Initialize if fresh state
	if state.BuyingPower == 0 && len(state.Holdings) == 0 {
		state.BuyingPower = initialBuyingPower
	}

	m := &Manager{state: state, filePath: filePath, log: log}
	if err := m.save(); err != nil {
		return nil, err
	}
	return m, nil
}

// GetState returns a copy of the current portfolio state.
func (m *Manager) GetState() model.PortfolioState {
	m.mu.Lock()
	defer m.mu.Unlock()

	state := *m.state
	state.Holdings = append([]model.Holding(nil), m.state.Holdings...)
	return state
}

// Buy records a paper purchase, averaging into any existing position.
func (m *Manager) Buy(symbol string, shares, price float64) (model.Holding, error) {
	if shares <= 0 || price <= 0 {
		return model.Holding{}, fmt.Errorf("shares and price must be positive")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	cost := shares * price
	if cost > m.state.BuyingPower {
		return model.Holding{}, fmt.Errorf("insufficient buying power: need %.2f, have %.2f",
			cost, m.state.BuyingPower)
	}

	now := time.Now()
	i := m.find(symbol)
	if i < 0 {
		m.state.Holdings = append(m.state.Holdings, model.Holding{
			Symbol:       symbol,
			Shares:       shares,
			AvgCost:      price,
			CurrentPrice: price,
			PeakPrice:    price,
			UpdatedAt:    now,
		})
		i = len(m.state.Holdings) - 1
	} else {
		h := &m.state.Holdings[i]
		total := h.Shares + shares
		h.AvgCost = (h.AvgCost*h.Shares + cost) / total
		h.Shares = total
		h.CurrentPrice = price
		if price > h.PeakPrice {
			h.PeakPrice = price
		}
		h.UpdatedAt = now
	}
	m.state.BuyingPower -= cost

	if err := m.save(); err != nil {
		m.log.Error().Err(err).Msg("failed to save portfolio state")
	}
	return m.state.Holdings[i], nil
}

// Sell records a paper sale and returns the remaining position plus the
// realized profit or loss. Selling the full position removes it.
func (m *Manager) Sell(symbol string, shares, price float64) (model.Holding, float64, error) {
	if shares <= 0 || price <= 0 {
		return model.Holding{}, 0, fmt.Errorf("shares and price must be positive")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.find(symbol)
	if i < 0 {
		return model.Holding{}, 0, fmt.Errorf("no position in %s", symbol)
	}
	h := &m.state.Holdings[i]
	if shares > h.Shares {
		return model.Holding{}, 0, fmt.Errorf("cannot sell %s shares of %s, holding %s",
			trim(shares), symbol, trim(h.Shares))
	}

	realized := (price - h.AvgCost) * shares
	h.Shares -= shares
	h.CurrentPrice = price
	h.UpdatedAt = time.Now()
	m.state.BuyingPower += shares * price

	sold := *h
	if h.Shares == 0 {
		m.state.Holdings = append(m.state.Holdings[:i], m.state.Holdings[i+1:]...)
	}

	if err := m.save(); err != nil {
		m.log.Error().Err(err).Msg("failed to save portfolio state")
	}
	return sold, realized, nil
}

// MarkPrices updates current and peak prices from the latest quotes.
// Symbols without a quote are left untouched.
func (m *Manager) MarkPrices(prices map[string]float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	changed := false
	for i := range m.state.Holdings {
		h := &m.state.Holdings[i]
		p, ok := prices[h.Symbol]
		if !ok || p <= 0 {
			continue
		}
		h.CurrentPrice = p
		if p > h.PeakPrice {
			h.PeakPrice = p
		}
		h.UpdatedAt = now
		changed = true
	}

	if changed {
		if err := m.save(); err != nil {
			m.log.Error().Err(err).Msg("failed to save portfolio state")
		}
	}
}

// StopAlert is a holding whose price fell through its trailing stop.
type StopAlert struct {
	Holding   model.Holding
	StopPrice float64
}

// TrailingStopAlerts returns every holding trading at or below
// peak*(1-pct/100). Read-only; alert throttling is the caller's concern.
func (m *Manager) TrailingStopAlerts(pct float64) []StopAlert {
	m.mu.Lock()
	defer m.mu.Unlock()

	var alerts []StopAlert
	for _, h := range m.state.Holdings {
		if h.PeakPrice <= 0 {
			continue
		}
		stop := h.PeakPrice * (1 - pct/100)
		if h.CurrentPrice > 0 && h.CurrentPrice <= stop {
			alerts = append(alerts, StopAlert{Holding: h, StopPrice: stop})
		}
	}
	return alerts
}

// Symbols lists the symbols currently held.
func (m *Manager) Symbols() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, 0, len(m.state.Holdings))
	for _, h := range m.state.Holdings {
		out = append(out, h.Symbol)
	}
	return out
}

func (m *Manager) find(symbol string) int {
	for i := range m.state.Holdings {
		if m.state.Holdings[i].Symbol == symbol {
			return i
		}
	}
	return -1
}

func (m *Manager) save() error {
	return SaveState(m.filePath, m.state)
}

func trim(v float64) string {
	return fmt.Sprintf("%g", v)
}
