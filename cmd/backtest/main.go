// cmd/backtest replays the indicator engine and a signal rule over
// historical daily bars and prints a performance report.
//
// Usage:
//
//	go run ./cmd/backtest -symbol AAPL -days 365 -strategy combined
package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/joho/godotenv"

	"TradePulse/internal/backtest"
	"TradePulse/internal/collector"
	"TradePulse/internal/config"
	"TradePulse/internal/indicator"
	"TradePulse/internal/util"
)

func main() {
	_ = godotenv.Load()

	symbol := flag.String("symbol", "SPY", "ticker to backtest")
	days := flag.Int("days", 365, "days of history to fetch")
	stratName := flag.String("strategy", "combined", "entry rule: combined, trend, meanrev or breakout")
	capital := flag.Float64("capital", 100000, "initial capital")
	cfgPath := flag.String("config", "configs/config.yaml", "config file path")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	log := util.NewLogger(cfg.LogLevel)

	strat, err := backtest.ParseStrategy(*stratName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	params := cfg.IndicatorParams()
	if err := params.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "indicators: %v\n", err)
		os.Exit(1)
	}

	var fetcher collector.Fetcher
	switch cfg.Data.Provider {
	case "binance":
		fetcher = collector.NewBinanceFetcher(cfg.Data.BinanceKey, cfg.Data.BinanceSecret)
	case "mock":
		fetcher = &collector.MockFetcher{}
	default:
		fetcher = collector.NewYahooFetcher(cfg.Proxy)
	}

	log.Info().Str("symbol", *symbol).Int("days", *days).Str("provider", fetcher.Name()).Msg("fetching history")
	bars, err := fetcher.FetchDailyBars(*symbol, *days)
	if err != nil {
		log.Fatal().Err(err).Str("symbol", *symbol).Msg("fetch history")
	}

	readings, err := indicator.Compute(bars, params)
	if err != nil {
		log.Fatal().Err(err).Msg("compute indicators")
	}

	defined := 0
	for _, r := range readings {
		if r.Complete() {
			defined++
		}
	}
	latest := readings[len(readings)-1]
	fmt.Printf("%s: %d bars, %d complete readings\n", *symbol, len(bars), defined)
	if latest.Complete() {
		fmt.Printf("latest: close %.2f  rsi %.1f  trend %s  macd %+.3f  signal %+.3f\n",
			bars[len(bars)-1].Close, latest.RSI, latest.Direction, latest.MACD, latest.MACDSignal)
	}

	opts := backtest.DefaultOptions()
	opts.InitialCapital = *capital
	opts.Thresholds = cfg.SignalThresholds()

	res, err := backtest.Run(bars, readings, strat, opts)
	if err != nil {
		log.Fatal().Err(err).Msg("backtest run")
	}
	printReport(*symbol, res)
}

func printReport(symbol string, res *backtest.Results) {
	line := "+----------------------------------------------+"
	fmt.Println(line)
	fmt.Printf("| %-44s |\n", fmt.Sprintf("%s — %s strategy", symbol, res.Strategy))
	fmt.Printf("| %-44s |\n", fmt.Sprintf("%s to %s (%d days)",
		res.Start.Format("2006-01-02"), res.End.Format("2006-01-02"), res.Days))
	fmt.Println(line)
	row := func(label, value string) { fmt.Printf("| %-22s %21s |\n", label, value) }
	row("Initial capital", fmt.Sprintf("$%.2f", res.InitialCapital))
	row("Final equity", fmt.Sprintf("$%.2f", res.FinalEquity))
	row("Total return", fmt.Sprintf("%+.2f%%", res.TotalReturnPct))
	row("Annualized return", fmt.Sprintf("%+.2f%%", res.AnnualReturnPct))
	row("Sharpe ratio", fmt.Sprintf("%.2f", res.SharpeRatio))
	row("Max drawdown", fmt.Sprintf("%.2f%%", res.MaxDrawdownPct))
	row("Trades", fmt.Sprintf("%d", len(res.Trades)))
	row("Win rate", fmt.Sprintf("%.1f%%", res.WinRatePct))
	if math.IsInf(res.ProfitFactor, 1) {
		row("Profit factor", "inf")
	} else {
		row("Profit factor", fmt.Sprintf("%.2f", res.ProfitFactor))
	}
	if len(res.Trades) > 0 {
		best, worst, holdDays := tradeStats(res)
		row("Best trade", fmt.Sprintf("%+.2f%%", best))
		row("Worst trade", fmt.Sprintf("%+.2f%%", worst))
		row("Avg holding", fmt.Sprintf("%.1f days", holdDays))
	}
	fmt.Println(line)
}

func tradeStats(res *backtest.Results) (best, worst, avgHoldDays float64) {
	best = math.Inf(-1)
	worst = math.Inf(1)
	var hold float64
	for _, t := range res.Trades {
		if t.ReturnPct > best {
			best = t.ReturnPct
		}
		if t.ReturnPct < worst {
			worst = t.ReturnPct
		}
		hold += t.ExitTime.Sub(t.EntryTime).Hours() / 24
	}
	return best, worst, hold / float64(len(res.Trades))
}
