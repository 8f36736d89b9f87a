package metrics

import (
	"net/http"
	"strconv"

	"github.com/codelancer/api/internal/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "codelancer"

// Metrics holds the Prometheus collectors exported by the service
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	fixesTotal      prometheus.Counter
	correctionsRuns prometheus.Counter
	generations     *prometheus.CounterVec
	analyses        *prometheus.CounterVec
}

// New creates the collectors on a private registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		fixesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "corrections_applied_total",
			Help:      "Individual fixes reported by the corrector.",
		}),
		correctionsRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "correction_runs_total",
			Help:      "Correction requests processed.",
		}),
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generations_total",
			Help:      "Code generations by template.",
		}, []string{"template"}),
		analyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyses_total",
			Help:      "Code analyses by language and syntax validity.",
		}, []string{"language", "syntax_valid"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requestsTotal,
		m.requestDuration,
		m.fixesTotal,
		m.correctionsRuns,
		m.generations,
		m.analyses,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveRequest records one served HTTP request
func (m *Metrics) ObserveRequest(method, route string, status int, seconds float64) {
	m.requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(seconds)
}

// ObserveCorrection records one correction run
func (m *Metrics) ObserveCorrection(result models.CorrectionResult) {
	m.correctionsRuns.Inc()
	m.fixesTotal.Add(float64(result.TotalFixes))
}

// ObserveGeneration records one generation run
func (m *Metrics) ObserveGeneration(result models.GenerationResult) {
	m.generations.WithLabelValues(string(result.Template)).Inc()
}

// ObserveAnalysis records one analysis run
func (m *Metrics) ObserveAnalysis(analysis models.Analysis) {
	m.analyses.WithLabelValues(analysis.Language, strconv.FormatBool(analysis.SyntaxValid)).Inc()
}
