package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks webhook ingestion and transition-job outcomes.
type Metrics struct {
	eventsIngestedTotal *prometheus.CounterVec
	eventsDuplicated    *prometheus.CounterVec
	ingestDuration      *prometheus.HistogramVec
	transitionAttempts  *prometheus.CounterVec
	jobsScheduledTotal  *prometheus.CounterVec
	jobsExhaustedTotal  *prometheus.CounterVec
}

// New creates the Prometheus metrics set registered on reg.
func New(reg prometheus.Registerer, namespace string) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		eventsIngestedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "webhooks",
			Name:      "events_ingested_total",
			Help:      "Inbound gateway events by type and final ledger status.",
		}, []string{"event_type", "status"}),

		eventsDuplicated: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "webhooks",
			Name:      "events_duplicated_total",
			Help:      "Redeliveries short-circuited by the idempotency ledger.",
		}, []string{"event_type"}),

		ingestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "webhooks",
			Name:      "ingest_duration_seconds",
			Help:      "Duration of the ingestion pipeline per delivery.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"event_type"}),

		transitionAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "jobs",
			Name:      "transition_attempts_total",
			Help:      "Deferred transition attempts by hook and outcome.",
		}, []string{"hook", "outcome"}),

		jobsScheduledTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "jobs",
			Name:      "scheduled_total",
			Help:      "Jobs armed on the durable queue by hook.",
		}, []string{"hook"}),

		jobsExhaustedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "jobs",
			Name:      "retry_exhausted_total",
			Help:      "Jobs abandoned after the retry budget ran out.",
		}, []string{"hook"}),
	}
}

// RecordEventIngested records a completed pipeline run.
func (m *Metrics) RecordEventIngested(eventType, status string, duration time.Duration) {
	m.eventsIngestedTotal.WithLabelValues(eventType, status).Inc()
	m.ingestDuration.WithLabelValues(eventType).Observe(duration.Seconds())
}

// RecordEventDuplicated records a redelivery that was deduplicated.
func (m *Metrics) RecordEventDuplicated(eventType string) {
	m.eventsDuplicated.WithLabelValues(eventType).Inc()
}

// RecordTransitionAttempt records one transition job attempt.
// outcome: succeeded, failed, dropped.
func (m *Metrics) RecordTransitionAttempt(hook, outcome string) {
	m.transitionAttempts.WithLabelValues(hook, outcome).Inc()
}

// RecordJobScheduled records a job armed on the durable queue.
func (m *Metrics) RecordJobScheduled(hook string) {
	m.jobsScheduledTotal.WithLabelValues(hook).Inc()
}

// RecordJobExhausted records a job that gave up after its last attempt.
func (m *Metrics) RecordJobExhausted(hook string) {
	m.jobsExhaustedTotal.WithLabelValues(hook).Inc()
}
