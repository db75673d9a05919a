package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const Namespace = "hypernotic"

// ActionCounter counts menu actions by identifier.
type ActionCounter interface {
	Count(action string)
}

type actionCounter struct {
	vec *prometheus.CounterVec
}

func (c actionCounter) Count(action string) {
	c.vec.WithLabelValues(action).Inc()
}

// Nop discards counts.
type Nop struct{}

func (Nop) Count(string) {}

// MenuMetrics groups the counters updated by the menu dispatcher.
type MenuMetrics struct {
	Registry     *prometheus.Registry
	Activations  ActionCounter
	EmitFailures ActionCounter

	activations  *prometheus.CounterVec
	emitFailures *prometheus.CounterVec
}

func NewMenuMetrics() *MenuMetrics {
	m := &MenuMetrics{
		Registry:     prometheus.NewRegistry(),
		activations:  menuCounter("menu_activations_total", "Menu items activated, by action."),
		emitFailures: menuCounter("menu_emit_failures_total", "Menu events that could not be delivered, by action."),
	}
	m.Registry.MustRegister(m.activations, m.emitFailures)
	m.Activations = actionCounter{vec: m.activations}
	m.EmitFailures = actionCounter{vec: m.emitFailures}
	return m
}

func menuCounter(name, help string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      name,
		Help:      help,
	}, []string{"action"})
}

// HandlerFor returns an HTTP handler serving the metrics of reg.
func HandlerFor(reg prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
