package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ScansTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "tradepulse_scans_total", Help: "Watchlist symbol scans"},
		[]string{"symbol"},
	)
	FetchErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "tradepulse_fetch_errors_total", Help: "Market data fetch failures"},
		[]string{"source"},
	)
	SignalsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "tradepulse_signals_total", Help: "Signals produced per symbol and action"},
		[]string{"symbol", "action"},
	)
	AlertsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "tradepulse_alerts_total", Help: "Alert deliveries by result"},
		[]string{"result"},
	)
	CacheHitsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "tradepulse_cache_hits_total", Help: "Reading memo hits"},
	)
	CacheMissesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "tradepulse_cache_misses_total", Help: "Reading memo misses"},
	)
)

func init() {
	prometheus.MustRegister(
		ScansTotal, FetchErrorsTotal, SignalsTotal, AlertsTotal,
		CacheHitsTotal, CacheMissesTotal,
	)
}

// Serve exposes /metrics on addr and returns the server so callers
// can close it on shutdown.
func Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() { _ = srv.ListenAndServe() }()
	return srv
}
