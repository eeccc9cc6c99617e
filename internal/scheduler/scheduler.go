package scheduler

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"TradePulse/internal/collector"
	"TradePulse/internal/metrics"
	"TradePulse/internal/model"
	"TradePulse/internal/notifier"
	"TradePulse/internal/portfolio"
	"TradePulse/internal/recorder"
)

// Scheduler manages the cron tasks and chat commands.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Portfolio *portfolio.Manager
	Notifier  *notifier.TelegramNotifier
	Recorder  recorder.Recorder
	Ctx       context.Context
	Log       zerolog.Logger

	// Assigned by the caller before RegisterAll.
	Watchlist       []string
	Throttle        *notifier.Throttle // nil means unthrottled
	TrailingStopPct float64            // <=0 disables stop alerts
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector, pm *portfolio.Manager, tn *notifier.TelegramNotifier, rec recorder.Recorder, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Portfolio: pm,
		Notifier:  tn,
		Recorder:  rec,
		Ctx:       ctx,
		Log:       log,
	}
}

// RegisterAll registers the watchlist scan and the daily briefing.
func (s *Scheduler) RegisterAll(scanCron, briefingCron string) error {
	if _, err := s.Cron.AddFunc(scanCron, s.scanTask); err != nil {
		return fmt.Errorf("register scan task: %w", err)
	}
	if _, err := s.Cron.AddFunc(briefingCron, s.briefingTask); err != nil {
		return fmt.Errorf("register briefing task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.Log.Info().Msg("scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	s.Log.Info().Msg("scheduler stopped")
}

// ScanNow executes the watchlist scan immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) ScanNow() {
	s.scanTask()
}

func (s *Scheduler) collectAll() (reports []*model.TickerReport, failed []string) {
	for _, symbol := range s.Watchlist {
		report, err := s.Collector.Collect(symbol)
		if err != nil {
			s.Log.Error().Err(err).Str("symbol", symbol).Msg("scan failed")
			failed = append(failed, symbol)
			continue
		}
		metrics.ScansTotal.WithLabelValues(symbol).Inc()
		reports = append(reports, report)
	}
	return reports, failed
}

func (s *Scheduler) scanTask() {
	s.Log.Info().Int("symbols", len(s.Watchlist)).Msg("running watchlist scan")
	reports, _ := s.collectAll()

	prices := make(map[string]float64, len(reports))
	for _, r := range reports {
		prices[r.Symbol] = r.CurrentPrice
	}
	// Holdings that dropped off the watchlist still need fresh marks.
	for _, symbol := range s.Portfolio.Symbols() {
		if _, ok := prices[symbol]; ok {
			continue
		}
		px, err := s.Collector.Fetcher.FetchCurrentPrice(symbol)
		if err != nil {
			s.Log.Error().Err(err).Str("symbol", symbol).Msg("mark held symbol")
			continue
		}
		prices[symbol] = px
	}
	s.Portfolio.MarkPrices(prices)

	for _, r := range reports {
		metrics.SignalsTotal.WithLabelValues(r.Symbol, string(r.Assessment.Signal)).Inc()

		notified := false
		if r.Assessment.Signal.Actionable() {
			if s.allow(r.Symbol, string(r.Assessment.Signal)) {
				s.trySend(notifier.FormatSignalAlert(r))
				metrics.AlertsTotal.WithLabelValues("sent").Inc()
				notified = true
			} else {
				metrics.AlertsTotal.WithLabelValues("throttled").Inc()
			}
		}
		if err := s.Recorder.RecordSignal(signalEvent(r, notified)); err != nil {
			s.Log.Error().Err(err).Str("symbol", r.Symbol).Msg("record signal")
		}
	}
}

func (s *Scheduler) stopAlerts() {
	if s.TrailingStopPct <= 0 {
		return
	}
	for _, alert := range s.Portfolio.TrailingStopAlerts(s.TrailingStopPct) {
		if !s.allow(alert.Holding.Symbol, "trailing_stop") {
			continue
		}
		s.trySend(notifier.FormatTrailingStopAlert(alert.Holding, alert.StopPrice, s.TrailingStopPct))
		metrics.AlertsTotal.WithLabelValues("sent").Inc()
	}
}

func (s *Scheduler) briefingTask() {
	s.Log.Info().Msg("running daily briefing")
	reports, failed := s.collectAll()

	prices := make(map[string]float64, len(reports))
	for _, r := range reports {
		prices[r.Symbol] = r.CurrentPrice
	}
	s.Portfolio.MarkPrices(prices)

	signalsToday, err := s.Recorder.CountSignalsSince(time.Now().Add(-24 * time.Hour))
	if err != nil {
		s.Log.Error().Err(err).Msg("count recent signals")
	}

	msg := notifier.FormatDailyBriefing(s.Portfolio.GetState(), reports, signalsToday)
	if len(failed) > 0 {
		msg += fmt.Sprintf("\n⚠️ failed: %s", strings.Join(failed, ", "))
	}
	s.trySend(msg)

	s.stopAlerts()

	state := s.Portfolio.GetState()
	if err := s.Recorder.RecordSnapshot(&recorder.SnapshotEvent{
		TotalValue:    state.TotalValue(),
		BuyingPower:   state.BuyingPower,
		HoldingsCount: len(state.Holdings),
		UnrealizedPnL: state.TotalUnrealizedPnL(),
	}); err != nil {
		s.Log.Error().Err(err).Msg("record snapshot")
	}
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return notifier.FormatHelp()
	}

	switch fields[0] {
	case "/scan":
		if len(fields) > 1 {
			return s.scanOne(strings.ToUpper(fields[1]))
		}
		reports, failed := s.collectAll()
		return notifier.FormatScanSummary(reports, failed)

	case "/signals":
		reports, _ := s.collectAll()
		var actionable []*model.TickerReport
		for _, r := range reports {
			if r.Assessment.Signal.Actionable() {
				actionable = append(actionable, r)
			}
		}
		if len(actionable) == 0 {
			return "No actionable signals right now."
		}
		return notifier.FormatScanSummary(actionable, nil)

	case "/portfolio":
		return notifier.FormatPortfolioStatus(s.Portfolio.GetState())

	case "/buy":
		return s.tradeCommand(fields, "BUY")

	case "/sell":
		return s.tradeCommand(fields, "SELL")

	case "/watchlist":
		return "Watchlist: " + strings.Join(s.Watchlist, ", ")

	default:
		return notifier.FormatHelp()
	}
}

func (s *Scheduler) scanOne(symbol string) string {
	report, err := s.Collector.Collect(symbol)
	if err != nil {
		return fmt.Sprintf("❌ scan %s: %v", symbol, err)
	}
	metrics.ScansTotal.WithLabelValues(symbol).Inc()
	return notifier.FormatSignalAlert(report)
}

func (s *Scheduler) tradeCommand(fields []string, side string) string {
	if len(fields) != 4 {
		return fmt.Sprintf("Usage: %s SYMBOL SHARES PRICE", fields[0])
	}
	symbol := strings.ToUpper(fields[1])
	shares, err := strconv.ParseFloat(fields[2], 64)
	price, perr := strconv.ParseFloat(fields[3], 64)
	if err != nil || perr != nil {
		return fmt.Sprintf("Usage: %s SYMBOL SHARES PRICE", fields[0])
	}

	var h model.Holding
	var realized float64
	if side == "BUY" {
		h, err = s.Portfolio.Buy(symbol, shares, price)
	} else {
		h, realized, err = s.Portfolio.Sell(symbol, shares, price)
	}
	if err != nil {
		return fmt.Sprintf("❌ %v", err)
	}

	state := s.Portfolio.GetState()
	if rerr := s.Recorder.RecordTrade(&recorder.TradeEvent{
		Symbol:           symbol,
		Side:             side,
		Shares:           shares,
		Price:            price,
		Amount:           shares * price,
		BuyingPowerAfter: state.BuyingPower,
		Note:             "manual",
	}); rerr != nil {
		s.Log.Error().Err(rerr).Str("symbol", symbol).Msg("record trade")
	}

	if side == "BUY" {
		return fmt.Sprintf("✅ Bought %g %s @ $%.2f\nPosition: %g sh @ $%.2f avg\nBuying power: $%.2f",
			shares, symbol, price, h.Shares, h.AvgCost, state.BuyingPower)
	}
	return fmt.Sprintf("✅ Sold %g %s @ $%.2f (realized %+.2f)\nRemaining: %g sh\nBuying power: $%.2f",
		shares, symbol, price, realized, h.Shares, state.BuyingPower)
}

func signalEvent(r *model.TickerReport, notified bool) *recorder.SignalEvent {
	evt := &recorder.SignalEvent{
		Symbol:    r.Symbol,
		Signal:    r.Assessment.Signal,
		Price:     r.CurrentPrice,
		BuyVotes:  r.Assessment.BuyVotes,
		SellVotes: r.Assessment.SellVotes,
		Notified:  notified,
	}
	if latest, ok := r.Latest(); ok {
		evt.RSI = latest.RSI
		evt.RSIValid = latest.RSIValid
		evt.Supertrend = latest.Supertrend
		evt.Trend = latest.Direction
		evt.MACD = latest.MACD
		evt.MACDSignal = latest.MACDSignal
		evt.MACDValid = latest.MACDValid
	}
	return evt
}

func (s *Scheduler) allow(symbol, kind string) bool {
	if s.Throttle == nil {
		return true
	}
	return s.Throttle.Allow(symbol, kind, time.Now())
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		s.Log.Error().Err(err).Msg("send notification")
	}
}
