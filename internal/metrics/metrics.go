package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallet_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wallet_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"method", "path"},
	)

	BalanceOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallet_balance_operations_total",
			Help: "Load and transfer attempts by outcome",
		},
		[]string{"operation", "outcome"},
	)

	AmountMovedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallet_amount_moved_total",
			Help: "Sum of committed amounts in the smallest currency unit",
		},
		[]string{"operation"},
	)

	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallet_notifications_total",
			Help: "Notification writes by result",
		},
		[]string{"result"},
	)
)

func RecordBalanceOperation(operation, outcome string) {
	BalanceOperationsTotal.WithLabelValues(operation, outcome).Inc()
}

func RecordAmountMoved(operation string, amount int64) {
	AmountMovedTotal.WithLabelValues(operation).Add(float64(amount))
}

func RecordNotification(result string) {
	NotificationsTotal.WithLabelValues(result).Inc()
}

// Middleware records count and latency per route pattern.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		path := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			path = rctx.RoutePattern()
		}

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		HTTPRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(status)).Inc()
		HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}
