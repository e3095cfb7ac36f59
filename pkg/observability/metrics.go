package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics records per-operation evaluation outcomes.
type Metrics interface {
	// ObserveOperation records one operation invocation with its duration
	// and outcome.
	ObserveOperation(op string, d time.Duration, err error)
	// ObserveDocument records one top-level document evaluation.
	ObserveDocument(d time.Duration, err error)
}

// Nop returns a Metrics that records nothing.
func Nop() Metrics { return nopMetrics{} }

type nopMetrics struct{}

func (nopMetrics) ObserveOperation(string, time.Duration, error) {}
func (nopMetrics) ObserveDocument(time.Duration, error)          {}

// Prometheus is a Metrics backed by a dedicated Prometheus registry.
type Prometheus struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	opSeconds  *prometheus.HistogramVec
	documents  *prometheus.CounterVec
	docSeconds prometheus.Histogram
}

// NewPrometheus creates a Prometheus metrics backend with its own registry.
func NewPrometheus() *Prometheus {
	p := &Prometheus{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "webalgebra",
			Name:      "operations_total",
			Help:      "Operation invocations by name and outcome.",
		}, []string{"op", "outcome"}),
		opSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "webalgebra",
			Name:      "operation_duration_seconds",
			Help:      "Operation duration by name.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),
		documents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "webalgebra",
			Name:      "documents_total",
			Help:      "Document evaluations by outcome.",
		}, []string{"outcome"}),
		docSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "webalgebra",
			Name:      "document_duration_seconds",
			Help:      "Document evaluation duration.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	p.registry.MustRegister(p.operations, p.opSeconds, p.documents, p.docSeconds)
	return p
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (p *Prometheus) ObserveOperation(op string, d time.Duration, err error) {
	p.operations.WithLabelValues(op, outcome(err)).Inc()
	p.opSeconds.WithLabelValues(op).Observe(d.Seconds())
}

func (p *Prometheus) ObserveDocument(d time.Duration, err error) {
	p.documents.WithLabelValues(outcome(err)).Inc()
	p.docSeconds.Observe(d.Seconds())
}

// Handler exposes the registry in the Prometheus text format.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}
