package kit

import (
	"crypto/subtle"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	labelService = "service"
	labelMethod  = "method"
	labelPath    = "path"
	labelStatus  = "status"
	labelStore   = "store"
	labelOp      = "op"
	labelKey     = "key"

	defaultStatusCode = http.StatusOK
)

type Metrics struct {
	Requests  *prometheus.CounterVec
	Latency   *prometheus.HistogramVec
	Mutations *prometheus.CounterVec
	Recovered *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{labelService, labelMethod, labelPath, labelStatus},
		),
		Latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "http_request_duration_seconds",
				Help: "HTTP latency",
			},
			[]string{labelService, labelMethod, labelPath},
		),
		Mutations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "state_mutations_total",
				Help: "Persisted state mutations by store and operation",
			},
			[]string{labelStore, labelOp},
		),
		Recovered: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "state_corrupt_recovered_total",
				Help: "Corrupt durable values replaced with defaults",
			},
			[]string{labelKey},
		),
	}

	reg.MustRegister(m.Requests, m.Latency, m.Mutations, m.Recovered)
	return m
}

// Mutation counts one persisted change; safe on a nil receiver.
func (m *Metrics) Mutation(store, op string) {
	if m == nil {
		return
	}
	m.Mutations.WithLabelValues(store, op).Inc()
}

// CorruptRecovered counts one discarded durable value; safe on a nil receiver.
func (m *Metrics) CorruptRecovered(key string) {
	if m == nil {
		return
	}
	m.Recovered.WithLabelValues(key).Inc()
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (m *Metrics) Middleware(service string, pathLabel func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sw := &statusWriter{
				ResponseWriter: w,
				status:         defaultStatusCode,
			}

			start := time.Now()
			next.ServeHTTP(sw, r)

			path := pathLabel(r)
			m.Latency.WithLabelValues(service, r.Method, path).
				Observe(time.Since(start).Seconds())

			m.Requests.WithLabelValues(service, r.Method, path, strconv.Itoa(sw.status)).
				Inc()
		})
	}
}

// MetricsAuth guards the scrape endpoint with a static bearer token. An empty
// token disables scraping entirely.
func MetricsAuth(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if token == "" || !ok || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
