package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the grading collectors and the registry they live in.
type Metrics struct {
	registry *prometheus.Registry

	grades       *prometheus.CounterVec
	gradeSeconds *prometheus.HistogramVec
	parseErrors  prometheus.Counter
	cacheLookups *prometheus.CounterVec
	toolCalls    *prometheus.CounterVec
}

// New registers the collectors on a fresh registry, plus the Go and
// process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		grades: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "polygrade_grades_total",
				Help: "Graded answers by mode and verdict",
			},
			[]string{"mode", "verdict"},
		),
		gradeSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "polygrade_grade_duration_seconds",
				Help:    "Time spent grading one answer",
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
			},
			[]string{"mode"},
		),
		parseErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "polygrade_parse_errors_total",
			Help: "Answers rejected for unbalanced delimiters",
		}),
		cacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "polygrade_cache_lookups_total",
				Help: "Verdict cache lookups by result (hit, miss, error)",
			},
			[]string{"result"},
		),
		toolCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "polygrade_tool_calls_total",
				Help: "Tool calls by tool name and outcome",
			},
			[]string{"tool", "outcome"},
		),
	}
	m.registry.MustRegister(
		m.grades, m.gradeSeconds, m.parseErrors, m.cacheLookups, m.toolCalls,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveGrade records one graded answer.
func (m *Metrics) ObserveGrade(mode, verdict string, d time.Duration) {
	m.grades.WithLabelValues(mode, verdict).Inc()
	m.gradeSeconds.WithLabelValues(mode).Observe(d.Seconds())
	if verdict == "unparseable" {
		m.parseErrors.Inc()
	}
}

// ObserveCache records a cache lookup: "hit", "miss" or "error".
func (m *Metrics) ObserveCache(result string) {
	m.cacheLookups.WithLabelValues(result).Inc()
}

// ObserveTool records a tool call.
func (m *Metrics) ObserveTool(tool string, failed bool) {
	outcome := "ok"
	if failed {
		outcome = "error"
	}
	m.toolCalls.WithLabelValues(tool, outcome).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }
