package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Dispatch outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// DispatchMetrics records dispatcher calls per action.
type DispatchMetrics struct {
	total    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewDispatchMetrics registers the dispatcher metrics on the provided registerer.
func NewDispatchMetrics(reg prometheus.Registerer) *DispatchMetrics {
	if reg == nil {
		return &DispatchMetrics{}
	}
	total := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "inventory_dispatch_total",
		Help: "Dispatched actions by outcome.",
	}, []string{"action", "outcome"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "inventory_dispatch_duration_seconds",
		Help:    "Duration of dispatched actions in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"action"})
	reg.MustRegister(total, duration)
	return &DispatchMetrics{total: total, duration: duration}
}

func (m *DispatchMetrics) Observe(action, outcome string, elapsed time.Duration) {
	if m == nil || m.total == nil {
		return
	}
	action = normalizeLabel(action)
	m.total.WithLabelValues(action, outcome).Inc()
	m.duration.WithLabelValues(action).Observe(elapsed.Seconds())
}

// normalizeLabel keeps arbitrary client input out of label values.
func normalizeLabel(action string) string {
	switch action {
	case "":
		return "none"
	case "getDashboardStats", "getInventory", "getSuppliers", "getAuditLogs",
		"addItem", "editItem", "deleteItem", "adjustStock", "addSupplier":
		return action
	default:
		return "unknown"
	}
}
