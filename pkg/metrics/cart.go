package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// CartMetrics records cart mutation activity.
type CartMetrics struct {
	mutations *prometheus.CounterVec
	failures  *prometheus.CounterVec
	items     prometheus.Gauge
}

// NewCartMetrics registers the cart metrics on the provided registerer.
func NewCartMetrics(reg prometheus.Registerer) *CartMetrics {
	if reg == nil {
		return &CartMetrics{}
	}
	mutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_mutations_total",
		Help: "Cart mutations by operation.",
	}, []string{"op"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_persist_failures_total",
		Help: "Cart persistence failures by operation.",
	}, []string{"op"})
	items := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "cart_total_items",
		Help: "Current total quantity across cart line items.",
	})
	reg.MustRegister(mutations, failures, items)
	return &CartMetrics{
		mutations: mutations,
		failures:  failures,
		items:     items,
	}
}

// IncMutation increments the mutation counter for the named operation.
func (c *CartMetrics) IncMutation(op string) {
	if c == nil || c.mutations == nil {
		return
	}
	c.mutations.WithLabelValues(normalizeLabel(op)).Inc()
}

// IncPersistFailure increments the persistence failure counter.
func (c *CartMetrics) IncPersistFailure(op string) {
	if c == nil || c.failures == nil {
		return
	}
	c.failures.WithLabelValues(normalizeLabel(op)).Inc()
}

// SetTotalItems records the current aggregate item count.
func (c *CartMetrics) SetTotalItems(count int) {
	if c == nil || c.items == nil {
		return
	}
	c.items.Set(float64(count))
}

func normalizeLabel(op string) string {
	if op == "" {
		return "unknown"
	}
	return op
}
