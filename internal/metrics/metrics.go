// Package metrics exposes Prometheus collectors for analyses and HTTP traffic.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spigell/resume-fit/internal/matcher"
)

const namespace = "resume_fit"

// Metrics implements matcher.Recorder and provides the HTTP middleware.
type Metrics struct {
	gatherer  prometheus.Gatherer
	analyses  *prometheus.CounterVec
	fallbacks *prometheus.CounterVec
	overall   prometheus.Histogram

	summaryVec *prometheus.SummaryVec
	counterVec *prometheus.CounterVec
}

var _ matcher.Recorder = (*Metrics)(nil)

// New registers the collectors in reg. A nil reg uses a fresh registry.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	return &Metrics{
		gatherer: reg,
		analyses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "analyses_total",
				Help:      "Total number of analyses by outcome",
			},
			[]string{"outcome"},
		),
		fallbacks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "signal_fallbacks_total",
				Help:      "Total number of sub-signal fallbacks",
			},
			[]string{"signal"},
		),
		overall: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "overall_score",
				Help:      "Distribution of overall scores of scored analyses",
				Buckets:   prometheus.LinearBuckets(0, 10, 10),
			},
		),
		summaryVec: factory.NewSummaryVec(
			prometheus.SummaryOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Objectives: map[float64]float64{
					0.5:  0.05,
					0.9:  0.01,
					0.95: 0.005,
					0.99: 0.001,
				},
			},
			[]string{"method", "path", "status_code"},
		),
		counterVec: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
	}
}

func (m *Metrics) ObserveAnalysis(outcome matcher.Outcome, overall float64) {
	m.analyses.WithLabelValues(string(outcome)).Inc()
	if outcome == matcher.OutcomeScored {
		m.overall.Observe(overall)
	}
}

func (m *Metrics) ObserveFallback(signal string) {
	m.fallbacks.WithLabelValues(signal).Inc()
}

// Middleware records duration and count of every request.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()

		ctx.Next()

		duration := time.Since(start).Seconds()

		method := ctx.Request.Method
		path := ctx.FullPath()
		if path == "" {
			path = "unmatched"
		}
		statusCode := strconv.Itoa(ctx.Writer.Status())

		m.summaryVec.WithLabelValues(method, path, statusCode).Observe(duration)
		m.counterVec.WithLabelValues(method, path, statusCode).Inc()
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
