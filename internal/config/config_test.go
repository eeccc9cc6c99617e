package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Data.Provider != "yahoo" {
		t.Errorf("default provider = %q", cfg.Data.Provider)
	}
	if len(cfg.Data.Symbols) != 8 {
		t.Errorf("default watchlist has %d symbols, want 8", len(cfg.Data.Symbols))
	}
	p := cfg.IndicatorParams()
	if p.RSIPeriod != 14 || p.ATRPeriod != 10 || p.ATRMultiplier != 3.0 {
		t.Errorf("default params = %+v", p)
	}
	if p.MACDFast != 12 || p.MACDSlow != 26 || p.MACDSignal != 9 {
		t.Errorf("default MACD params = %+v", p)
	}
	th := cfg.SignalThresholds()
	if th.RSIBuyMin != 30 || th.RSIBuyMax != 40 || th.RSISellMin != 60 || th.RSISellMax != 70 {
		t.Errorf("default thresholds = %+v", th)
	}
	if cfg.Signals.AlertCooldownMinutes != 15 || cfg.Signals.MaxAlertsPerDay != 20 {
		t.Errorf("default alert limits = %d/%d", cfg.Signals.AlertCooldownMinutes, cfg.Signals.MaxAlertsPerDay)
	}
	if cfg.Portfolio.BuyingPower != 100000 || cfg.Portfolio.TrailingStopPct != 10 {
		t.Errorf("default portfolio = %+v", cfg.Portfolio)
	}
	// An unset path means run without the SQLite recorder.
	if cfg.Database.SQLitePath != "" {
		t.Errorf("sqlite path defaulted to %q, want empty", cfg.Database.SQLitePath)
	}
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
telegram:
  bot_token: file-token
  chat_id: "12345"
data:
  provider: mock
  symbols: [AAPL, MSFT]
  lookback_days: 90
indicators:
  rsi_period: 7
  atr_multiplier: 2.5
signals:
  rsi_buy_min: 25
  rsi_buy_max: 35
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TELEGRAM_BOT_TOKEN", "env-token")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SQLITE_PATH", "/tmp/signals.db")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Telegram.BotToken != "env-token" {
		t.Errorf("env must override file, got %q", cfg.Telegram.BotToken)
	}
	if cfg.Telegram.ChatID != "12345" {
		t.Errorf("chat id = %q", cfg.Telegram.ChatID)
	}
	if cfg.Data.Provider != "mock" || len(cfg.Data.Symbols) != 2 || cfg.Data.LookbackDays != 90 {
		t.Errorf("data section = %+v", cfg.Data)
	}
	if cfg.Indicators.RSIPeriod != 7 || cfg.Indicators.ATRMultiplier != 2.5 {
		t.Errorf("indicator overrides = %+v", cfg.Indicators)
	}
	if cfg.Indicators.MACDSlow != 26 {
		t.Errorf("unset fields keep defaults, MACDSlow = %d", cfg.Indicators.MACDSlow)
	}
	if cfg.Signals.RSIBuyMin != 25 || cfg.Signals.RSIBuyMax != 35 {
		t.Errorf("threshold overrides = %+v", cfg.Signals)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("log level = %q", cfg.LogLevel)
	}
	if cfg.Database.SQLitePath != "/tmp/signals.db" {
		t.Errorf("sqlite path = %q", cfg.Database.SQLitePath)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		if err != nil {
			t.Fatal(err)
		}
		cfg.Telegram.BotToken = "token"
		cfg.Telegram.ChatID = "chat"
		return cfg
	}

	if err := base().Validate(); err != nil {
		t.Errorf("complete config must validate: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing token", func(c *Config) { c.Telegram.BotToken = "" }},
		{"missing chat id", func(c *Config) { c.Telegram.ChatID = "" }},
		{"unknown provider", func(c *Config) { c.Data.Provider = "bloomberg" }},
		{"empty watchlist", func(c *Config) { c.Data.Symbols = nil }},
		{"bad rsi period", func(c *Config) { c.Indicators.RSIPeriod = 1 }},
		{"macd fast >= slow", func(c *Config) { c.Indicators.MACDFast = 26 }},
		{"inverted buy zone", func(c *Config) { c.Signals.RSIBuyMin = 50; c.Signals.RSIBuyMax = 40 }},
		{"bad trailing stop", func(c *Config) { c.Portfolio.TrailingStopPct = 100 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}
