package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"TradePulse/internal/model"
)

func openTestRecorder(t *testing.T) *SQLiteRecorder {
	t.Helper()
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "test.db"), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewSQLiteRecorder: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func (r *SQLiteRecorder) countRows(t *testing.T, table string) int {
	t.Helper()
	var n int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

func TestSQLiteRecorderRoundTrip(t *testing.T) {
	r := openTestRecorder(t)

	evt := &SignalEvent{
		Symbol: "NVDA", Signal: model.SignalStrongBuy, Price: 120.5,
		RSI: 34.2, RSIValid: true,
		Supertrend: 118.9, Trend: model.TrendUp,
		MACD: 1.3, MACDSignal: 0.9, MACDValid: true,
		BuyVotes: 3, SellVotes: 0, Notified: true,
	}
	if err := r.RecordSignal(evt); err != nil {
		t.Fatalf("RecordSignal: %v", err)
	}
	if err := r.RecordTrade(&TradeEvent{
		Symbol: "NVDA", Side: "BUY", Shares: 10, Price: 120.5,
		Amount: 1205, BuyingPowerAfter: 98795, Note: "signal entry",
	}); err != nil {
		t.Fatalf("RecordTrade: %v", err)
	}
	if err := r.RecordSnapshot(&SnapshotEvent{
		TotalValue: 100000, BuyingPower: 98795, HoldingsCount: 1, UnrealizedPnL: 0,
	}); err != nil {
		t.Fatalf("RecordSnapshot: %v", err)
	}

	if n := r.countRows(t, "signal_events"); n != 1 {
		t.Errorf("signal_events rows = %d, want 1", n)
	}
	if n := r.countRows(t, "portfolio_trades"); n != 1 {
		t.Errorf("portfolio_trades rows = %d, want 1", n)
	}
	if n := r.countRows(t, "portfolio_snapshots"); n != 1 {
		t.Errorf("portfolio_snapshots rows = %d, want 1", n)
	}

	var sym, sig string
	var rsi float64
	var notified int
	err := r.db.QueryRow(
		"SELECT symbol, signal, rsi, notified FROM signal_events",
	).Scan(&sym, &sig, &rsi, &notified)
	if err != nil {
		t.Fatalf("query signal_events: %v", err)
	}
	if sym != "NVDA" || sig != "strong_buy" || rsi != 34.2 || notified != 1 {
		t.Errorf("stored row = %s %s %.1f %d", sym, sig, rsi, notified)
	}
}

func TestCountSignalsSinceSkipsNeutral(t *testing.T) {
	r := openTestRecorder(t)

	events := []*SignalEvent{
		{Symbol: "AAPL", Signal: model.SignalBuy},
		{Symbol: "TSLA", Signal: model.SignalNeutral},
		{Symbol: "SPY", Signal: model.SignalStrongSell},
	}
	for _, evt := range events {
		if err := r.RecordSignal(evt); err != nil {
			t.Fatalf("RecordSignal: %v", err)
		}
	}

	n, err := r.CountSignalsSince(time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("CountSignalsSince: %v", err)
	}
	if n != 2 {
		t.Errorf("actionable signals = %d, want 2", n)
	}

	n, err = r.CountSignalsSince(time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("CountSignalsSince: %v", err)
	}
	if n != 0 {
		t.Errorf("future cutoff returned %d signals", n)
	}
}

func TestRecordSignalStoresNullForUndefined(t *testing.T) {
	r := openTestRecorder(t)

	// Warm-up scans carry no indicator values; columns must be NULL, not 0.
	evt := &SignalEvent{Symbol: "O", Signal: model.SignalNeutral, Price: 55.1}
	if err := r.RecordSignal(evt); err != nil {
		t.Fatalf("RecordSignal: %v", err)
	}

	var rsiNull, stNull, macdNull bool
	err := r.db.QueryRow(
		"SELECT rsi IS NULL, supertrend IS NULL, macd IS NULL FROM signal_events",
	).Scan(&rsiNull, &stNull, &macdNull)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if !rsiNull || !stNull || !macdNull {
		t.Errorf("undefined indicators stored as values: rsi=%v st=%v macd=%v",
			rsiNull, stNull, macdNull)
	}
}

func TestNoopRecorder(t *testing.T) {
	n := NewNoopRecorder()
	if err := n.RecordSignal(&SignalEvent{}); err != nil {
		t.Errorf("RecordSignal: %v", err)
	}
	if err := n.RecordTrade(&TradeEvent{}); err != nil {
		t.Errorf("RecordTrade: %v", err)
	}
	if err := n.RecordSnapshot(&SnapshotEvent{}); err != nil {
		t.Errorf("RecordSnapshot: %v", err)
	}
	if c, err := n.CountSignalsSince(time.Time{}); err != nil || c != 0 {
		t.Errorf("CountSignalsSince = %d, %v", c, err)
	}
	if err := n.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}
