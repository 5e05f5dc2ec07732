package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_RecordEventIngested(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg, "spay")

	m.RecordEventIngested("customer.subscription.deleted", "succeeded", 25*time.Millisecond)
	m.RecordEventIngested("customer.subscription.deleted", "succeeded", 30*time.Millisecond)
	m.RecordEventIngested("account.updated", "unprocessable", 5*time.Millisecond)

	assert.Equal(t, float64(2), testutil.ToFloat64(
		m.eventsIngestedTotal.WithLabelValues("customer.subscription.deleted", "succeeded")))
	assert.Equal(t, float64(1), testutil.ToFloat64(
		m.eventsIngestedTotal.WithLabelValues("account.updated", "unprocessable")))
}

func TestMetrics_RecordEventDuplicated(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg, "spay")

	m.RecordEventDuplicated("customer.subscription.deleted")

	assert.Equal(t, float64(1), testutil.ToFloat64(
		m.eventsDuplicated.WithLabelValues("customer.subscription.deleted")))
}

func TestMetrics_RecordTransitionLifecycle(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg, "spay")

	m.RecordJobScheduled("cancel-subscription")
	m.RecordTransitionAttempt("cancel-subscription", "failed")
	m.RecordTransitionAttempt("cancel-subscription", "failed")
	m.RecordTransitionAttempt("cancel-subscription", "success")
	m.RecordJobExhausted("pause-subscription")

	assert.Equal(t, float64(1), testutil.ToFloat64(
		m.jobsScheduledTotal.WithLabelValues("cancel-subscription")))
	assert.Equal(t, float64(2), testutil.ToFloat64(
		m.transitionAttempts.WithLabelValues("cancel-subscription", "failed")))
	assert.Equal(t, float64(1), testutil.ToFloat64(
		m.transitionAttempts.WithLabelValues("cancel-subscription", "success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(
		m.jobsExhaustedTotal.WithLabelValues("pause-subscription")))
}
