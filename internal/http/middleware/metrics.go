package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

var requestCount = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "dompet_http_requests_total",
		Help: "How many HTTP requests processed, partitioned by status code, method and route.",
	},
	[]string{"code", "method", "route"},
)

var requestDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "dompet_http_request_duration_seconds",
		Help:    "The HTTP request latencies in seconds.",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"code", "method", "route"},
)

// Collectors returns the HTTP metrics for registration by the binary.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{requestCount, requestDuration}
}

// Metrics records request counts and latencies. The chi route pattern is used
// as the label so ids in paths do not blow up cardinality.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		code := strconv.Itoa(status)
		requestDuration.WithLabelValues(code, r.Method, route).Observe(time.Since(start).Seconds())
		requestCount.WithLabelValues(code, r.Method, route).Inc()
	})
}
