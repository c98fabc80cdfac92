package convert

import (
	"time"

	"github.com/c360studio/oboowl/owl"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics are Prometheus collectors for conversions. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	conversions   *prometheus.CounterVec
	axioms        *prometheus.CounterVec
	skipped       *prometheus.CounterVec
	sinkErrors    prometheus.Counter
	duration      prometheus.Histogram
	activeSession prometheus.Gauge
}

// NewMetrics creates the conversion collectors and registers them with reg.
// It returns nil when reg is nil.
func NewMetrics(component string, reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		return nil, nil
	}
	labels := prometheus.Labels{"component": component}
	m := &Metrics{
		conversions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "oboowl_conversions_total",
			Help:        "Total number of conversions by result",
			ConstLabels: labels,
		}, []string{"result"}),
		axioms: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "oboowl_axioms_total",
			Help:        "Total number of axioms handed to the sink by kind",
			ConstLabels: labels,
		}, []string{"kind"}),
		skipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "oboowl_clauses_skipped_total",
			Help:        "Total number of clauses not translated by reason",
			ConstLabels: labels,
		}, []string{"reason"}),
		sinkErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "oboowl_sink_errors_total",
			Help:        "Total number of axioms rejected by the sink",
			ConstLabels: labels,
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:        "oboowl_conversion_duration_seconds",
			Help:        "Duration of conversions in seconds",
			ConstLabels: labels,
			Buckets:     []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 2.0, 5.0, 10.0},
		}),
		activeSession: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "oboowl_active_conversions",
			Help:        "Number of conversions in progress",
			ConstLabels: labels,
		}),
	}
	for _, c := range []prometheus.Collector{m.conversions, m.axioms, m.skipped, m.sinkErrors, m.duration, m.activeSession} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) started() {
	if m == nil {
		return
	}
	m.activeSession.Inc()
}

func (m *Metrics) finished(d time.Duration, err error) {
	if m == nil {
		return
	}
	m.activeSession.Dec()
	result := "success"
	if err != nil {
		result = "failure"
	}
	m.conversions.WithLabelValues(result).Inc()
	m.duration.Observe(d.Seconds())
}

func (m *Metrics) axiomEmitted(kind owl.AxiomKind) {
	if m == nil {
		return
	}
	m.axioms.WithLabelValues(kind.String()).Inc()
}

func (m *Metrics) clauseSkipped(reason string) {
	if m == nil {
		return
	}
	m.skipped.WithLabelValues(reason).Inc()
}

func (m *Metrics) sinkError() {
	if m == nil {
		return
	}
	m.sinkErrors.Inc()
}
