package observability

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	m.ItemAdded("bottle")
	m.GuardRejected(ReasonEmptyOrder)
	m.OrderCompleted(120)
	m.OrderDeleted()
	m.HistoryCleared()
}

func TestCountersRecord(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.ItemAdded("bottle")
	m.ItemAdded("bottle")
	m.ItemAdded("food")
	m.GuardRejected(ReasonNoCookingTerm)
	m.OrderCompleted(350.5)
	m.OrderDeleted()
	m.HistoryCleared()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.itemsAdded.WithLabelValues("bottle")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.itemsAdded.WithLabelValues("food")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.guardRejections.WithLabelValues(ReasonNoCookingTerm)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ordersCompleted))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ordersDeleted))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.historyClears))

	expected := `
# HELP techbar_ledger_orders_completed_total Orders persisted after completion.
# TYPE techbar_ledger_orders_completed_total counter
techbar_ledger_orders_completed_total 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "techbar_ledger_orders_completed_total"))
}

func TestDoubleRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewMetrics(reg)
	assert.Panics(t, func() { NewMetrics(reg) })
}
