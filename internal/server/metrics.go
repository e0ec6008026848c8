package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics exposes the server metrics in Prometheus format. Assembly
// counters and durations are recorded by the polynomial package.
type Metrics struct {
	handler http.Handler
}

var (
	activeRequests = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "polyroots_http_active_requests",
		Help: "Current number of in-flight HTTP requests",
	})
	totalRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "polyroots_http_requests_total",
		Help: "Total number of HTTP requests by path",
	}, []string{"path"})
	cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "polyroots_solve_cache_lookups_total",
		Help: "Solve cache lookups by result (hit or miss)",
	}, []string{"result"})
)

// NewMetrics creates a Metrics serving the default registry.
func NewMetrics() *Metrics {
	return &Metrics{handler: promhttp.Handler()}
}

// RequestStarted records an incoming request on path.
func (m *Metrics) RequestStarted(path string) {
	activeRequests.Inc()
	totalRequests.WithLabelValues(path).Inc()
}

// RequestFinished records the end of a request.
func (m *Metrics) RequestFinished() {
	activeRequests.Dec()
}

// CacheLookup records a solve cache hit or miss.
func (m *Metrics) CacheLookup(hit bool) {
	if hit {
		cacheLookups.WithLabelValues("hit").Inc()
		return
	}
	cacheLookups.WithLabelValues("miss").Inc()
}

// WritePrometheus writes the metrics in Prometheus text format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	s.metrics.WritePrometheus(w, r)
}

func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.RequestStarted(r.URL.Path)
		defer s.metrics.RequestFinished()
		next(w, r)
	}
}
