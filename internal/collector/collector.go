package collector

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"TradePulse/internal/cache"
	"TradePulse/internal/indicator"
	"TradePulse/internal/metrics"
	"TradePulse/internal/model"
	"TradePulse/internal/strategy"
)

// Collector orchestrates data fetching, indicator computation and
// signal evaluation for one symbol at a time.
type Collector struct {
	Fetcher      Fetcher
	Params       indicator.Params
	Thresholds   strategy.Thresholds
	Memo         *cache.Memo // optional; readings are recomputed every call when nil
	Lookback     int         // daily bars to request
	LevelsWindow int         // optional; adds support/resistance to reports
	Log          zerolog.Logger
}

// New creates a Collector without memoization; assign Memo to enable it.
func New(fetcher Fetcher, params indicator.Params, thresholds strategy.Thresholds, lookback int, log zerolog.Logger) *Collector {
	return &Collector{
		Fetcher:    fetcher,
		Params:     params,
		Thresholds: thresholds,
		Lookback:   lookback,
		Log:        log,
	}
}

// Collect fetches bars, computes readings and classifies the latest
// one. A failing realtime quote degrades to the last close instead of
// failing the whole scan.
func (c *Collector) Collect(symbol string) (*model.TickerReport, error) {
	bars, err := c.Fetcher.FetchDailyBars(symbol, c.Lookback)
	if err != nil {
		metrics.FetchErrorsTotal.WithLabelValues(c.Fetcher.Name()).Inc()
		return nil, fmt.Errorf("fetch daily bars: %w", err)
	}

	readings, err := c.readings(symbol, bars)
	if err != nil {
		return nil, fmt.Errorf("compute indicators: %w", err)
	}

	price, err := c.Fetcher.FetchCurrentPrice(symbol)
	if err != nil || price == 0 {
		if len(bars) > 0 {
			price = bars[len(bars)-1].Close
		}
		if err != nil {
			metrics.FetchErrorsTotal.WithLabelValues(c.Fetcher.Name()).Inc()
			c.Log.Warn().Err(err).Str("symbol", symbol).Msg("current price unavailable, using last close")
		}
	}

	report := &model.TickerReport{
		Symbol:       symbol,
		CurrentPrice: price,
		FetchedAt:    time.Now(),
		Bars:         bars,
		Readings:     readings,
	}
	report.Assessment = model.Assessment{Signal: model.SignalNeutral}
	if latest, ok := report.Latest(); ok {
		report.Assessment = strategy.Evaluate(latest, c.Thresholds)
	}
	if c.LevelsWindow > 0 && len(bars) >= c.LevelsWindow {
		if high, low, err := indicator.CalculateRange(bars, c.LevelsWindow); err == nil {
			report.Resistance = high
			report.Support = low
		}
	}
	return report, nil
}

func (c *Collector) readings(symbol string, bars []model.OHLCV) ([]model.IndicatorReading, error) {
	if c.Memo == nil {
		return indicator.Compute(bars, c.Params)
	}

	key := c.Params.Key()
	hash := cache.SeriesHash(bars)
	if cached, ok := c.Memo.Get(symbol, key, hash); ok {
		metrics.CacheHitsTotal.Inc()
		return cached, nil
	}
	metrics.CacheMissesTotal.Inc()

	readings, err := indicator.Compute(bars, c.Params)
	if err != nil {
		return nil, err
	}
	c.Memo.Put(symbol, key, hash, readings)
	return readings, nil
}
