// Package metrics records conversion outcomes as Prometheus metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Conversion outcomes
const (
	OutcomeSuccess      = "success"
	OutcomeInvalidInput = "invalid_input"
	OutcomeError        = "error"
)

//go:generate mockgen -destination=mock/mock_recorder.go -package=metricsmock github.com/KirkDiggler/lss-foundry/internal/pkg/metrics Recorder

// Recorder receives conversion events.
type Recorder interface {
	// ConversionFinished counts one conversion and observes its duration.
	ConversionFinished(outcome string, duration time.Duration)

	// SourceDegraded counts an envelope whose inner record could not be read.
	SourceDegraded()

	// VisionResolved counts the sight mode and the layer that chose it.
	VisionResolved(mode, source string)
}

// Manager owns the converter's Prometheus metrics.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	conversions        *prometheus.CounterVec
	conversionDuration prometheus.Histogram
	degradedSources    prometheus.Counter
	visionModes        *prometheus.CounterVec
}

// NewManager creates a manager on its own registry unless one is supplied.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "lss",
		subsystem:        "converter",
		histogramBuckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		registry:         prometheus.NewRegistry(),
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.conversions = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "conversions_total",
		Help:      "Total number of conversions by outcome",
	}, []string{"outcome"})

	m.conversionDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "conversion_duration_seconds",
		Help:      "Time spent converting one character",
		Buckets:   m.histogramBuckets,
	})

	m.degradedSources = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "degraded_sources_total",
		Help:      "Envelopes whose inner record failed to decode and was replaced by an empty record",
	})

	m.visionModes = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "vision_resolved_total",
		Help:      "Resolved vision modes by the layer that produced them",
	}, []string{"mode", "source"})
}

// ConversionFinished counts one conversion and observes its duration.
func (m *Manager) ConversionFinished(outcome string, duration time.Duration) {
	m.conversions.WithLabelValues(outcome).Inc()
	m.conversionDuration.Observe(duration.Seconds())
}

// SourceDegraded counts one degraded envelope.
func (m *Manager) SourceDegraded() {
	m.degradedSources.Inc()
}

// VisionResolved counts one resolved vision.
func (m *Manager) VisionResolved(mode, source string) {
	m.visionModes.WithLabelValues(mode, source).Inc()
}

// Registry exposes the registry the manager writes to.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the manager's metrics in the Prometheus text format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Ensure Manager implements Recorder
var _ Recorder = (*Manager)(nil)

type discard struct{}

// Discard is a Recorder that drops every event.
var Discard Recorder = discard{}

func (discard) ConversionFinished(string, time.Duration) {}
func (discard) SourceDegraded()                          {}
func (discard) VisionResolved(string, string)            {}
