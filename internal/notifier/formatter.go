package notifier

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"TradePulse/internal/model"
)

func signalBadge(s model.Signal) string {
	switch s {
	case model.SignalStrongBuy:
		return "🟢🟢"
	case model.SignalBuy:
		return "🟢"
	case model.SignalSell:
		return "🔴"
	case model.SignalStrongSell:
		return "🔴🔴"
	default:
		return "⚪"
	}
}

func signalLabel(s model.Signal) string {
	if s == "" {
		s = model.SignalNeutral
	}
	return strings.ToUpper(strings.ReplaceAll(string(s), "_", " "))
}

func fmtShares(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatSignalAlert formats one actionable ticker assessment into a Telegram message.
func FormatSignalAlert(r *model.TickerReport) string {
	var b strings.Builder

	a := r.Assessment
	b.WriteString(fmt.Sprintf("%s <b>%s: %s</b> @ $%.2f\n\n",
		signalBadge(a.Signal), r.Symbol, signalLabel(a.Signal), r.CurrentPrice))

	latest, ok := r.Latest()
	if ok {
		if latest.RSIValid {
			zone := ""
			if a.RSIBuyZone {
				zone = " (buy zone)"
			} else if a.RSISellZone {
				zone = " (sell zone)"
			}
			b.WriteString(fmt.Sprintf("RSI: %.1f%s\n", latest.RSI, zone))
		}
		if latest.SupertrendValid() {
			b.WriteString(fmt.Sprintf("Supertrend: %s, line %.2f\n",
				strings.ToUpper(latest.Direction.String()), latest.Supertrend))
		}
		if latest.MACDValid {
			bias := "flat"
			if a.MACDBullish {
				bias = "bullish"
			} else if a.MACDBearish {
				bias = "bearish"
			}
			b.WriteString(fmt.Sprintf("MACD: %.3f / signal %.3f (%s)\n",
				latest.MACD, latest.MACDSignal, bias))
		}
	}
	if r.Resistance > 0 {
		b.WriteString(fmt.Sprintf("Range: %.2f to %.2f\n", r.Support, r.Resistance))
	}

	b.WriteString(fmt.Sprintf("\nVotes: %d buy, %d sell\n", a.BuyVotes, a.SellVotes))
	b.WriteString(fmt.Sprintf("As of %s", r.FetchedAt.Format("2006-01-02 15:04")))
	return b.String()
}

// FormatScanSummary formats one line per scanned ticker, plus any failures.
func FormatScanSummary(reports []*model.TickerReport, failed []string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>Watchlist Scan</b> | %s\n\n", time.Now().Format("15:04")))

	for _, r := range reports {
		line := fmt.Sprintf("%s %s  $%.2f", signalBadge(r.Assessment.Signal), r.Symbol, r.CurrentPrice)
		if latest, ok := r.Latest(); ok && latest.RSIValid {
			line += fmt.Sprintf("  RSI %.1f", latest.RSI)
		}
		if r.Assessment.Signal.Actionable() {
			line += "  " + signalLabel(r.Assessment.Signal)
		}
		b.WriteString(line + "\n")
	}

	if len(failed) > 0 {
		b.WriteString(fmt.Sprintf("\n⚠️ failed: %s\n", strings.Join(failed, ", ")))
	}
	return b.String()
}

// FormatDailyBriefing formats the morning overview: portfolio totals,
// recent signal activity and a one-line watchlist rundown.
func FormatDailyBriefing(state model.PortfolioState, reports []*model.TickerReport, signalsToday int) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("☀️ <b>Daily Briefing</b> | %s\n\n", time.Now().Format("2006-01-02")))

	pnl := state.TotalUnrealizedPnL()
	b.WriteString(fmt.Sprintf("Portfolio: $%.2f (PnL %+.2f)\n", state.TotalValue(), pnl))
	b.WriteString(fmt.Sprintf("Buying power: $%.2f | positions: %d\n", state.BuyingPower, len(state.Holdings)))
	b.WriteString(fmt.Sprintf("Signals in the last 24h: %d\n", signalsToday))

	if len(reports) > 0 {
		b.WriteString("\n<b>Watchlist:</b>\n")
		for _, r := range reports {
			b.WriteString(fmt.Sprintf("%s %s  $%.2f\n",
				signalBadge(r.Assessment.Signal), r.Symbol, r.CurrentPrice))
		}
	}
	return b.String()
}

// FormatPortfolioStatus formats the current holdings and balances for display.
func FormatPortfolioStatus(state model.PortfolioState) string {
	var b strings.Builder
	b.WriteString("💼 <b>Portfolio</b>\n\n")

	if len(state.Holdings) == 0 {
		b.WriteString("No open positions.\n")
	}
	for _, h := range state.Holdings {
		b.WriteString(fmt.Sprintf("%s: %s sh @ $%.2f (cost %.2f) PnL %+.2f\n",
			h.Symbol, fmtShares(h.Shares), h.CurrentPrice, h.AvgCost, h.UnrealizedPnL()))
	}

	b.WriteString(fmt.Sprintf("\nBuying power: $%.2f\n", state.BuyingPower))
	b.WriteString(fmt.Sprintf("Total value: $%.2f\n", state.TotalValue()))
	if !state.UpdatedAt.IsZero() {
		b.WriteString(fmt.Sprintf("Updated: %s\n", state.UpdatedAt.Format("2006-01-02 15:04")))
	}
	return b.String()
}

// FormatTrailingStopAlert warns that a holding fell through its trailing stop.
func FormatTrailingStopAlert(h model.Holding, stopPrice, pct float64) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("⛔ <b>%s trailing stop hit</b>\n\n", h.Symbol))
	b.WriteString(fmt.Sprintf("Price: $%.2f | peak: $%.2f | stop: $%.2f (-%.0f%%)\n",
		h.CurrentPrice, h.PeakPrice, stopPrice, pct))
	b.WriteString(fmt.Sprintf("Position: %s sh, PnL %+.2f\n", fmtShares(h.Shares), h.UnrealizedPnL()))
	b.WriteString("Consider closing the position.")
	return b.String()
}

// FormatHelp lists the supported chat commands.
func FormatHelp() string {
	return strings.Join([]string{
		"<b>Commands</b>",
		"/scan [SYMBOL] - scan the watchlist or one ticker",
		"/signals - latest assessment per ticker",
		"/portfolio - holdings and balances",
		"/buy SYMBOL SHARES PRICE - record a paper buy",
		"/sell SYMBOL SHARES PRICE - record a paper sell",
		"/watchlist - configured tickers",
		"/help - this message",
	}, "\n")
}
