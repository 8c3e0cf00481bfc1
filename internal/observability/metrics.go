// Package observability holds the Prometheus collectors of an order session.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Guard rejection reasons.
const (
	ReasonNoAccompaniment = "no_accompaniment"
	ReasonNoCookingTerm   = "no_cooking_term"
	ReasonEmptyOrder      = "empty_order"
	ReasonWrongSecret     = "wrong_secret"
	ReasonUnpricedColumn  = "unpriced_column"
)

// Metrics groups the collectors. A nil *Metrics records nothing, so callers
// never need to check whether metrics are enabled.
type Metrics struct {
	itemsAdded      *prometheus.CounterVec
	guardRejections *prometheus.CounterVec
	ordersCompleted prometheus.Counter
	ordersDeleted   prometheus.Counter
	historyClears   prometheus.Counter
	orderTotal      prometheus.Histogram
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		itemsAdded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "techbar",
				Subsystem: "order",
				Name:      "items_added_total",
				Help:      "Line items added to an order, by customization protocol.",
			},
			[]string{"protocol"},
		),
		guardRejections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "techbar",
				Subsystem: "order",
				Name:      "guard_rejections_total",
				Help:      "User actions refused with a notice, by reason.",
			},
			[]string{"reason"},
		),
		ordersCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "techbar",
			Subsystem: "ledger",
			Name:      "orders_completed_total",
			Help:      "Orders persisted after completion.",
		}),
		ordersDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "techbar",
			Subsystem: "ledger",
			Name:      "orders_deleted_total",
			Help:      "Orders moved into history.",
		}),
		historyClears: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "techbar",
			Subsystem: "ledger",
			Name:      "history_clears_total",
			Help:      "Successful history clears.",
		}),
		orderTotal: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "techbar",
			Subsystem: "ledger",
			Name:      "order_total_pesos",
			Help:      "Total of completed orders.",
			Buckets:   []float64{100, 250, 500, 1000, 2500, 5000, 10000},
		}),
	}
	reg.MustRegister(m.itemsAdded, m.guardRejections, m.ordersCompleted, m.ordersDeleted, m.historyClears, m.orderTotal)
	return m
}

func (m *Metrics) ItemAdded(protocol string) {
	if m == nil {
		return
	}
	m.itemsAdded.WithLabelValues(protocol).Inc()
}

func (m *Metrics) GuardRejected(reason string) {
	if m == nil {
		return
	}
	m.guardRejections.WithLabelValues(reason).Inc()
}

// OrderCompleted counts a persisted order and observes its total.
func (m *Metrics) OrderCompleted(total float64) {
	if m == nil {
		return
	}
	m.ordersCompleted.Inc()
	m.orderTotal.Observe(total)
}

func (m *Metrics) OrderDeleted() {
	if m == nil {
		return
	}
	m.ordersDeleted.Inc()
}

func (m *Metrics) HistoryCleared() {
	if m == nil {
		return
	}
	m.historyClears.Inc()
}
