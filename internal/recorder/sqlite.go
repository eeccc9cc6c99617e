package recorder

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"TradePulse/internal/model"
)

// SQLiteRecorder persists historical data to a SQLite database.
type SQLiteRecorder struct {
	db  *sql.DB
	mu  sync.Mutex
	log zerolog.Logger
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string, log zerolog.Logger) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for better concurrent read performance (dashboards read while the bot writes).
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, log: log}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS signal_events (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp   INTEGER NOT NULL,
			symbol      TEXT NOT NULL,
			signal      TEXT NOT NULL,
			price       REAL,
			rsi         REAL,
			supertrend  REAL,
			trend       INTEGER,
			macd        REAL,
			macd_signal REAL,
			buy_votes   INTEGER,
			sell_votes  INTEGER,
			notified    INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_signal_ts ON signal_events(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_signal_symbol ON signal_events(symbol)`,

		`CREATE TABLE IF NOT EXISTS portfolio_trades (
			id                 INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp          INTEGER NOT NULL,
			symbol             TEXT NOT NULL,
			side               TEXT NOT NULL,
			shares             REAL,
			price              REAL,
			amount             REAL,
			buying_power_after REAL,
			note               TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_trade_ts ON portfolio_trades(timestamp)`,

		`CREATE TABLE IF NOT EXISTS portfolio_snapshots (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp      INTEGER NOT NULL,
			total_value    REAL,
			buying_power   REAL,
			holdings_count INTEGER,
			unrealized_pnl REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshot_ts ON portfolio_snapshots(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// nullable maps an undefined indicator value to SQL NULL instead of a
// misleading zero.
func nullable(v float64, ok bool) any {
	if !ok {
		return nil
	}
	return v
}

func (r *SQLiteRecorder) RecordSignal(evt *SignalEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	notified := 0
	if evt.Notified {
		notified = 1
	}

	_, err := r.db.Exec(`INSERT INTO signal_events
		(timestamp, symbol, signal, price, rsi, supertrend, trend,
		 macd, macd_signal, buy_votes, sell_votes, notified)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), evt.Symbol, string(evt.Signal), evt.Price,
		nullable(evt.RSI, evt.RSIValid),
		nullable(evt.Supertrend, evt.Trend != model.TrendNone),
		int(evt.Trend),
		nullable(evt.MACD, evt.MACDValid),
		nullable(evt.MACDSignal, evt.MACDValid),
		evt.BuyVotes, evt.SellVotes, notified,
	)
	return err
}

func (r *SQLiteRecorder) RecordTrade(evt *TradeEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO portfolio_trades
		(timestamp, symbol, side, shares, price, amount, buying_power_after, note)
		VALUES (?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), evt.Symbol, evt.Side,
		evt.Shares, evt.Price, evt.Amount,
		evt.BuyingPowerAfter, evt.Note,
	)
	return err
}

func (r *SQLiteRecorder) RecordSnapshot(evt *SnapshotEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO portfolio_snapshots
		(timestamp, total_value, buying_power, holdings_count, unrealized_pnl)
		VALUES (?,?,?,?,?)`,
		time.Now().Unix(), evt.TotalValue, evt.BuyingPower,
		evt.HoldingsCount, evt.UnrealizedPnL,
	)
	return err
}

// CountSignalsSince reports how many actionable signals were stored at or
// after the given time. Used by the daily briefing.
func (r *SQLiteRecorder) CountSignalsSince(since time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int
	err := r.db.QueryRow(
		`SELECT COUNT(*) FROM signal_events WHERE timestamp >= ? AND signal != ?`,
		since.Unix(), string(model.SignalNeutral),
	).Scan(&n)
	return n, err
}

func (r *SQLiteRecorder) Close() error {
	r.log.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}
