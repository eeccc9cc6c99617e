package collector

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/adshao/go-binance/v2/futures"
	"golang.org/x/time/rate"

	"TradePulse/internal/model"
)

// BinanceFetcher implements Fetcher over Binance futures klines. The
// public kline endpoints work without credentials; keys are only
// needed when the exchange account is rate-limited per API key.
type BinanceFetcher struct {
	client  *futures.Client
	limiter *rate.Limiter
	timeout time.Duration
}

// NewBinanceFetcher creates a rate-limited Binance fetcher.
func NewBinanceFetcher(apiKey, secretKey string) *BinanceFetcher {
	httpClient := &http.Client{
		Timeout: 10 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 100,
			IdleConnTimeout:     90 * time.Second,
		},
	}
	client := futures.NewClient(apiKey, secretKey)
	client.HTTPClient = httpClient

	return &BinanceFetcher{
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(10), 20),
		timeout: 30 * time.Second,
	}
}

func (f *BinanceFetcher) Name() string { return "binance" }

func (f *BinanceFetcher) FetchDailyBars(symbol string, days int) ([]model.OHLCV, error) {
	// Binance caps a single kline request at 1500 candles.
	limit := days
	if limit > 1500 {
		limit = 1500
	}

	ctx, cancel := context.WithTimeout(context.Background(), f.timeout)
	defer cancel()

	klines, err := f.klinesWithRetry(ctx, symbol, "1d", limit)
	if err != nil {
		return nil, fmt.Errorf("binance klines: %w", err)
	}

	bars := make([]model.OHLCV, 0, len(klines))
	for _, k := range klines {
		bars = append(bars, model.OHLCV{
			Time:   time.Unix(k.OpenTime/1000, 0),
			Open:   parseFloat(k.Open),
			High:   parseFloat(k.High),
			Low:    parseFloat(k.Low),
			Close:  parseFloat(k.Close),
			Volume: parseFloat(k.Volume),
		})
	}
	if len(bars) > days {
		bars = bars[len(bars)-days:]
	}
	return bars, nil
}

func (f *BinanceFetcher) FetchCurrentPrice(symbol string) (float64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), f.timeout)
	defer cancel()

	if err := f.limiter.Wait(ctx); err != nil {
		return 0, err
	}
	prices, err := f.client.NewListPricesService().Symbol(symbol).Do(ctx)
	if err != nil {
		return 0, fmt.Errorf("binance price: %w", err)
	}
	if len(prices) == 0 {
		return 0, fmt.Errorf("binance: no price for %s", symbol)
	}
	return parseFloat(prices[0].Price), nil
}

// klinesWithRetry waits for the rate limiter and retries transient
// failures with exponential backoff.
func (f *BinanceFetcher) klinesWithRetry(ctx context.Context, symbol, interval string, limit int) ([]*futures.Kline, error) {
	const maxRetries = 3
	backoff := 100 * time.Millisecond

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		klines, err := f.client.NewKlinesService().
			Symbol(symbol).
			Interval(interval).
			Limit(limit).
			Do(ctx)
		if err == nil {
			return klines, nil
		}
		lastErr = err

		wait := time.Duration(math.Pow(2, float64(attempt))) * backoff
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}
	return nil, lastErr
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
