package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"TradePulse/internal/cache"
	"TradePulse/internal/collector"
	"TradePulse/internal/config"
	"TradePulse/internal/metrics"
	"TradePulse/internal/notifier"
	"TradePulse/internal/portfolio"
	"TradePulse/internal/recorder"
	"TradePulse/internal/scheduler"
	"TradePulse/internal/util"
)

func main() {
	_ = godotenv.Load()

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		bootLog := util.NewLogger("info")
		bootLog.Fatal().Err(err).Msg("load config")
	}
	log := util.NewLogger(cfg.LogLevel)
	log.Info().Str("config", cfgPath).Msg("TradePulse starting")

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config validation")
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
	log.Info().Str("provider", fetcher.Name()).Strs("symbols", cfg.Data.Symbols).Msg("data source ready")

	col := collector.New(fetcher, cfg.IndicatorParams(), cfg.SignalThresholds(), cfg.Data.LookbackDays,
		log.With().Str("component", "collector").Logger())
	col.Memo = cache.NewMemo()
	col.LevelsWindow = cfg.Indicators.LevelsWindow

	pm, err := portfolio.NewManager(cfg.Portfolio.StateFile, cfg.Portfolio.BuyingPower,
		log.With().Str("component", "portfolio").Logger())
	if err != nil {
		log.Fatal().Err(err).Msg("init portfolio manager")
	}

	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy,
		log.With().Str("component", "telegram").Logger())

	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath,
			log.With().Str("component", "recorder").Logger())
		if err != nil {
			log.Warn().Err(err).Msg("sqlite recorder unavailable, using noop")
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	if cfg.Metrics.Addr != "" {
		srv := metrics.Serve(cfg.Metrics.Addr)
		defer srv.Close()
		log.Info().Str("addr", cfg.Metrics.Addr).Msg("metrics endpoint up")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.NewScheduler(ctx, col, pm, tn, rec,
		log.With().Str("component", "scheduler").Logger())
	sched.Watchlist = cfg.Data.Symbols
	sched.Throttle = notifier.NewThrottle(
		time.Duration(cfg.Signals.AlertCooldownMinutes)*time.Minute,
		cfg.Signals.MaxAlertsPerDay,
	)
	sched.TrailingStopPct = cfg.Portfolio.TrailingStopPct
	if err := sched.RegisterAll(cfg.Schedule.ScanCron, cfg.Schedule.BriefingCron); err != nil {
		log.Fatal().Err(err).Msg("register cron tasks")
	}
	sched.Start()
	defer sched.Stop()

	go tn.StartPolling(ctx, sched.HandleCommand)
	log.Info().Msg("telegram polling started")

	if os.Getenv("RUN_ON_START") == "true" {
		log.Info().Msg("RUN_ON_START enabled, scanning now")
		go sched.ScanNow()
	}

	log.Info().Msg("TradePulse is running")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info().Msg("shutdown signal received, stopping")
	cancel()
	log.Info().Msg("TradePulse stopped")
}
