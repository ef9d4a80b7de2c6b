package metrics

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	messagesIngested = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_ingested_total",
			Help: "Total number of webhook messages ingested",
		},
		[]string{"platform"},
	)

	enrichmentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "message_enrichments_total",
			Help: "Total number of enrichment runs by outcome",
		},
		[]string{"outcome"},
	)

	leadsDerived = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leads_derived_total",
			Help: "Total number of lead rows created or raised by enrichment",
		},
		[]string{"action"},
	)

	wsClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ws_connected_clients",
			Help: "Number of connected WebSocket clients",
		},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Hijack passes WebSocket upgrades through the wrapper.
func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := rw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not support hijacking")
	}
	return hj.Hijack()
}

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(duration)
	})
}

func RecordIngested(platform string) {
	messagesIngested.WithLabelValues(platform).Inc()
}

// RecordEnrichment counts one enrichment run. Outcomes are "completed"
// for real analysis, "fallback" for the neutral default, and "error"
// when the result could not be stored.
func RecordEnrichment(outcome string) {
	enrichmentsTotal.WithLabelValues(outcome).Inc()
}

// RecordLeadDerived counts lead derivations, action is "created" or
// "raised".
func RecordLeadDerived(action string) {
	leadsDerived.WithLabelValues(action).Inc()
}

func WsClientConnected() {
	wsClients.Inc()
}

func WsClientDisconnected() {
	wsClients.Dec()
}
