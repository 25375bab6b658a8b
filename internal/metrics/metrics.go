package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	QuotesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "quotes_total", Help: "Count of option quotes ingested"},
		[]string{"symbol"},
	)
	QuotesSkippedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "quotes_skipped_total", Help: "Quotes dropped before evaluation"},
		[]string{"reason"},
	)
	OrdersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "orders_total", Help: "Buy orders submitted"},
		[]string{"symbol", "type"},
	)
	OrderErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "order_errors_total", Help: "Failed order submissions"},
	)
)

func init() {
	prometheus.MustRegister(QuotesTotal, QuotesSkippedTotal, OrdersTotal, OrderErrorsTotal)
}

func Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() { _ = srv.ListenAndServe() }()
	return srv
}
