package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"TradePulse/internal/indicator"
	"TradePulse/internal/strategy"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Data struct {
		Provider      string   `yaml:"provider"` // yahoo, binance or mock
		Symbols       []string `yaml:"symbols"`
		LookbackDays  int      `yaml:"lookback_days"`
		BinanceKey    string   `yaml:"binance_api_key"`
		BinanceSecret string   `yaml:"binance_secret_key"`
	} `yaml:"data"`
	Indicators struct {
		RSIPeriod     int     `yaml:"rsi_period"`
		ATRPeriod     int     `yaml:"atr_period"`
		ATRMultiplier float64 `yaml:"atr_multiplier"`
		MACDFast      int     `yaml:"macd_fast"`
		MACDSlow      int     `yaml:"macd_slow"`
		MACDSignal    int     `yaml:"macd_signal"`
		LevelsWindow  int     `yaml:"levels_window"`
	} `yaml:"indicators"`
	Signals struct {
		RSIBuyMin            float64 `yaml:"rsi_buy_min"`
		RSIBuyMax            float64 `yaml:"rsi_buy_max"`
		RSISellMin           float64 `yaml:"rsi_sell_min"`
		RSISellMax           float64 `yaml:"rsi_sell_max"`
		AlertCooldownMinutes int     `yaml:"alert_cooldown_minutes"`
		MaxAlertsPerDay      int     `yaml:"max_alerts_per_day"`
	} `yaml:"signals"`
	Schedule struct {
		ScanCron     string `yaml:"scan_cron"`
		BriefingCron string `yaml:"briefing_cron"`
	} `yaml:"schedule"`
	Portfolio struct {
		StateFile       string  `yaml:"state_file"`
		BuyingPower     float64 `yaml:"buying_power"`
		TrailingStopPct float64 `yaml:"trailing_stop_pct"`
	} `yaml:"portfolio"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Metrics struct {
		Addr string `yaml:"addr"`
	} `yaml:"metrics"`
	LogLevel string `yaml:"log_level"`
	Proxy    string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment
// variable overrides and fills in defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("DATA_PROVIDER"); v != "" {
		cfg.Data.Provider = v
	}
	if v := os.Getenv("BINANCE_API_KEY"); v != "" {
		cfg.Data.BinanceKey = v
	}
	if v := os.Getenv("BINANCE_SECRET_KEY"); v != "" {
		cfg.Data.BinanceSecret = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("CRON_SCAN"); v != "" {
		cfg.Schedule.ScanCron = v
	}
	if v := os.Getenv("METRICS_ADDR"); v != "" {
		cfg.Metrics.Addr = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("BUYING_POWER"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Portfolio.BuyingPower = f
		}
	}

	// Defaults
	if cfg.Data.Provider == "" {
		cfg.Data.Provider = "yahoo"
	}
	if len(cfg.Data.Symbols) == 0 {
		cfg.Data.Symbols = []string{"PLTR", "NVDA", "O", "AGNC", "AAPL", "TSLA", "SPY", "QQQ"}
	}
	if cfg.Data.LookbackDays == 0 {
		cfg.Data.LookbackDays = 180
	}
	if cfg.Indicators.RSIPeriod == 0 {
		cfg.Indicators.RSIPeriod = 14
	}
	if cfg.Indicators.ATRPeriod == 0 {
		cfg.Indicators.ATRPeriod = 10
	}
	if cfg.Indicators.ATRMultiplier == 0 {
		cfg.Indicators.ATRMultiplier = 3.0
	}
	if cfg.Indicators.MACDFast == 0 {
		cfg.Indicators.MACDFast = 12
	}
	if cfg.Indicators.MACDSlow == 0 {
		cfg.Indicators.MACDSlow = 26
	}
	if cfg.Indicators.MACDSignal == 0 {
		cfg.Indicators.MACDSignal = 9
	}
	if cfg.Indicators.LevelsWindow == 0 {
		cfg.Indicators.LevelsWindow = 20
	}
	if cfg.Signals.RSIBuyMin == 0 {
		cfg.Signals.RSIBuyMin = 30
	}
	if cfg.Signals.RSIBuyMax == 0 {
		cfg.Signals.RSIBuyMax = 40
	}
	if cfg.Signals.RSISellMin == 0 {
		cfg.Signals.RSISellMin = 60
	}
	if cfg.Signals.RSISellMax == 0 {
		cfg.Signals.RSISellMax = 70
	}
	if cfg.Signals.AlertCooldownMinutes == 0 {
		cfg.Signals.AlertCooldownMinutes = 15
	}
	if cfg.Signals.MaxAlertsPerDay == 0 {
		cfg.Signals.MaxAlertsPerDay = 20
	}
	if cfg.Schedule.ScanCron == "" {
		cfg.Schedule.ScanCron = "0 */30 9-16 * * 1-5"
	}
	if cfg.Schedule.BriefingCron == "" {
		cfg.Schedule.BriefingCron = "0 25 9 * * 1-5"
	}
	if cfg.Portfolio.StateFile == "" {
		cfg.Portfolio.StateFile = "data/portfolio.json"
	}
	if cfg.Portfolio.BuyingPower == 0 {
		cfg.Portfolio.BuyingPower = 100000
	}
	if cfg.Portfolio.TrailingStopPct == 0 {
		cfg.Portfolio.TrailingStopPct = 10
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	return cfg, nil
}

// IndicatorParams converts the indicator section into engine params.
func (c *Config) IndicatorParams() indicator.Params {
	return indicator.Params{
		RSIPeriod:     c.Indicators.RSIPeriod,
		ATRPeriod:     c.Indicators.ATRPeriod,
		ATRMultiplier: c.Indicators.ATRMultiplier,
		MACDFast:      c.Indicators.MACDFast,
		MACDSlow:      c.Indicators.MACDSlow,
		MACDSignal:    c.Indicators.MACDSignal,
	}
}

// SignalThresholds converts the signals section into combiner zones.
func (c *Config) SignalThresholds() strategy.Thresholds {
	return strategy.Thresholds{
		RSIBuyMin:  c.Signals.RSIBuyMin,
		RSIBuyMax:  c.Signals.RSIBuyMax,
		RSISellMin: c.Signals.RSISellMin,
		RSISellMax: c.Signals.RSISellMax,
	}
}

// Validate checks that all required fields are set and consistent.
// The bot daemon needs everything; the backtest CLI only calls the
// param-level validators.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required")
	}
	switch c.Data.Provider {
	case "yahoo", "binance", "mock":
	default:
		return fmt.Errorf("data.provider %q must be yahoo, binance or mock", c.Data.Provider)
	}
	if len(c.Data.Symbols) == 0 {
		return fmt.Errorf("data.symbols must not be empty")
	}
	if c.Data.LookbackDays <= 0 {
		return fmt.Errorf("data.lookback_days must be positive")
	}
	if err := c.IndicatorParams().Validate(); err != nil {
		return fmt.Errorf("indicators: %w", err)
	}
	if err := c.SignalThresholds().Validate(); err != nil {
		return fmt.Errorf("signals: %w", err)
	}
	if c.Indicators.LevelsWindow <= 0 {
		return fmt.Errorf("indicators.levels_window must be positive")
	}
	if c.Signals.AlertCooldownMinutes < 0 {
		return fmt.Errorf("signals.alert_cooldown_minutes must not be negative")
	}
	if c.Signals.MaxAlertsPerDay <= 0 {
		return fmt.Errorf("signals.max_alerts_per_day must be positive")
	}
	if c.Portfolio.BuyingPower < 0 {
		return fmt.Errorf("portfolio.buying_power must not be negative")
	}
	if c.Portfolio.TrailingStopPct <= 0 || c.Portfolio.TrailingStopPct >= 100 {
		return fmt.Errorf("portfolio.trailing_stop_pct must be between 0 and 100")
	}
	return nil
}
