package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Record(t *testing.T) {
	m := NewWithRegisterer("salon-test", prometheus.NewRegistry())

	m.RecordTransition("pending", "confirmed")
	m.RecordTransition("pending", "confirmed")
	m.RecordNotification("confirmation", false)
	m.RecordAvailabilityCheck(true)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.BookingTransitions.WithLabelValues("pending", "confirmed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Notifications.WithLabelValues("confirmation", "failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AvailabilityChecks.WithLabelValues("free")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordTransition("a", "b")
		m.RecordNotification("k", true)
		m.RecordAvailabilityCheck(false)
		m.RecordSerializationRetry()
	})
}
