// Package metrics exposes controller activity as Prometheus collectors. A
// Collector implements formstate.Observer and can be shared by many
// controllers.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/goliatone/go-formstate/pkg/formstate"
	"github.com/goliatone/go-formstate/pkg/validation"
)

const (
	resultValid   = "valid"
	resultInvalid = "invalid"
)

// Collector counts edits and settles per field and tracks the last reported
// readiness.
type Collector struct {
	edits   *prometheus.CounterVec
	settles *prometheus.CounterVec
	ready   prometheus.Gauge
}

var _ formstate.Observer = (*Collector)(nil)

// Option configures a Collector.
type Option func(*options)

type options struct {
	namespace   string
	constLabels prometheus.Labels
}

// WithNamespace overrides the metric namespace (default "formstate").
func WithNamespace(namespace string) Option {
	return func(o *options) {
		if namespace != "" {
			o.namespace = namespace
		}
	}
}

// WithConstLabels attaches constant labels, for example a form id.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(o *options) {
		o.constLabels = labels
	}
}

// New builds an unregistered Collector.
func New(opts ...Option) *Collector {
	cfg := options{namespace: "formstate"}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return &Collector{
		edits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.namespace,
			Name:        "field_edits_total",
			Help:        "Field edits applied, partitioned by validation result.",
			ConstLabels: cfg.constLabels,
		}, []string{"field", "result"}),
		settles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   cfg.namespace,
			Name:        "field_settles_total",
			Help:        "Fields that left the editing state.",
			ConstLabels: cfg.constLabels,
		}, []string{"field"}),
		ready: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   cfg.namespace,
			Name:        "form_ready",
			Help:        "Last reported form readiness (1 ready, 0 not ready).",
			ConstLabels: cfg.constLabels,
		}),
	}
}

// Register adds every collector to reg.
func (c *Collector) Register(reg prometheus.Registerer) error {
	for _, col := range []prometheus.Collector{c.edits, c.settles, c.ready} {
		if err := reg.Register(col); err != nil {
			return err
		}
	}
	return nil
}

// ObserveEdit implements formstate.Observer.
func (c *Collector) ObserveEdit(fieldID string, result validation.Result) {
	label := resultValid
	if !result.OK() {
		label = resultInvalid
	}
	c.edits.WithLabelValues(fieldID, label).Inc()
}

// ObserveSettle implements formstate.Observer.
func (c *Collector) ObserveSettle(fieldID string) {
	c.settles.WithLabelValues(fieldID).Inc()
}

// ObserveReadiness implements formstate.Observer.
func (c *Collector) ObserveReadiness(ready bool) {
	if ready {
		c.ready.Set(1)
		return
	}
	c.ready.Set(0)
}
