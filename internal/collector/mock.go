package collector

import (
	"math"
	"math/rand"
	"time"

	"TradePulse/internal/model"
)

// MockFetcher returns deterministic synthetic data for development
// and testing. Generated bars follow a seeded random walk, so the
// same request always yields the same series.
type MockFetcher struct {
	Price float64       // current price; defaults to 100
	Bars  []model.OHLCV // overrides the generated series when set
	Start time.Time     // first bar date; defaults to `days` ago
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(_ string, days int) ([]model.OHLCV, error) {
	if m.Bars != nil {
		return m.Bars, nil
	}
	return generateMockBars(m.basePrice(), days, m.startDate(days)), nil
}

func (m *MockFetcher) FetchCurrentPrice(_ string) (float64, error) {
	if m.Price != 0 {
		return m.Price, nil
	}
	if len(m.Bars) > 0 {
		return m.Bars[len(m.Bars)-1].Close, nil
	}
	return 100, nil
}

func (m *MockFetcher) basePrice() float64 {
	if m.Price != 0 {
		return m.Price
	}
	return 100
}

func (m *MockFetcher) startDate(days int) time.Time {
	if !m.Start.IsZero() {
		return m.Start
	}
	return time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, -days)
}

func generateMockBars(basePrice float64, count int, start time.Time) []model.OHLCV {
	rng := rand.New(rand.NewSource(42))
	bars := make([]model.OHLCV, count)
	price := basePrice
	for i := range bars {
		open := price
		close := price * (1 + (rng.Float64()-0.48)*0.02)
		bars[i] = model.OHLCV{
			Time:   start.AddDate(0, 0, i),
			Open:   open,
			High:   math.Max(open, close) * 1.005,
			Low:    math.Min(open, close) * 0.995,
			Close:  close,
			Volume: 1_000_000 * (0.5 + rng.Float64()),
		}
		price = close
	}
	return bars
}
