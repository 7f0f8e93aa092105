package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "meshmind"

// Metrics owns a private registry so tests and multiple binaries never collide
// on the global one.
type Metrics struct {
	registry *prometheus.Registry

	LLMCalls         *prometheus.CounterVec
	LLMLatency       *prometheus.HistogramVec
	Worksheets       *prometheus.CounterVec
	StageDuration    *prometheus.HistogramVec
	DocumentBytes    prometheus.Histogram
	ContextAssembled *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		LLMCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "llm_calls_total",
			Help:      "LLM provider calls by provider and status.",
		}, []string{"provider", "status"}),
		LLMLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "llm_call_duration_seconds",
			Help:      "LLM provider call latency.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 40, 80},
		}, []string{"provider"}),
		Worksheets: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "worksheets_total",
			Help:      "Worksheet pipeline runs by subject and outcome.",
		}, []string{"subject", "outcome"}),
		StageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pipeline_stage_duration_seconds",
			Help:      "Duration of each worksheet pipeline stage.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"stage"}),
		DocumentBytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "document_size_bytes",
			Help:      "Size of composed worksheet PDFs.",
			Buckets:   prometheus.ExponentialBuckets(4096, 2, 10),
		}),
		ContextAssembled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "curriculum_context_total",
			Help:      "Context assembly results by subject and kind (grounded, fallback, empty).",
		}, []string{"subject", "kind"}),
	}
	m.registry.MustRegister(
		m.LLMCalls,
		m.LLMLatency,
		m.Worksheets,
		m.StageDuration,
		m.DocumentBytes,
		m.ContextAssembled,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveLLMCall is safe on a nil receiver so callers may run without metrics.
func (m *Metrics) ObserveLLMCall(provider, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.LLMCalls.WithLabelValues(provider, status).Inc()
	m.LLMLatency.WithLabelValues(provider).Observe(d.Seconds())
}

func (m *Metrics) ObserveStage(stage string, d time.Duration) {
	if m == nil {
		return
	}
	m.StageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (m *Metrics) ObserveWorksheet(subject, outcome string, size int) {
	if m == nil {
		return
	}
	m.Worksheets.WithLabelValues(subject, outcome).Inc()
	if size > 0 {
		m.DocumentBytes.Observe(float64(size))
	}
}

func (m *Metrics) ObserveContext(subject, kind string) {
	if m == nil {
		return
	}
	m.ContextAssembled.WithLabelValues(subject, kind).Inc()
}
