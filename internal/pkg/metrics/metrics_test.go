package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg)
	require.NotNil(t, m)

	m.BookingsTotal.WithLabelValues("success").Inc()
	m.BookingsTotal.WithLabelValues("conflict").Inc()
	m.BookingsTotal.WithLabelValues("conflict").Inc()

	assert.Equal(t, float64(1), testutil.ToFloat64(m.BookingsTotal.WithLabelValues("success")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.BookingsTotal.WithLabelValues("conflict")))
}

func TestMetrics_Settlements(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg)

	m.SettlementsTotal.WithLabelValues("settled").Inc()
	m.SettledAmountTotal.Add(30)
	m.SettledAmountTotal.Add(50)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.SettlementsTotal.WithLabelValues("settled")))
	assert.Equal(t, float64(80), testutil.ToFloat64(m.SettledAmountTotal))
}

func TestMetrics_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewWithRegistry(reg)
	assert.Panics(t, func() { NewWithRegistry(reg) })
}
