package service

import (
	"context"
	"fmt"
	"time"

	"github.com/chicsouqsa-collab/Spay-sub002/internal/core/domain"
	"github.com/chicsouqsa-collab/Spay-sub002/internal/core/ports"
	"github.com/chicsouqsa-collab/Spay-sub002/pkg/apperror"
	"github.com/chicsouqsa-collab/Spay-sub002/pkg/metrics"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// TransitionCoordinator implements ports.TransitionScheduler on the durable
// job queue. It consumes the state machine's lifecycle events: arming a job
// when a period-end transition is requested, disarming when another path
// supersedes it.
type TransitionCoordinator struct {
	queue   ports.JobQueue
	metrics *metrics.Metrics
	log     zerolog.Logger
}

// NewTransitionCoordinator creates a new TransitionCoordinator.
func NewTransitionCoordinator(queue ports.JobQueue, m *metrics.Metrics, log zerolog.Logger) *TransitionCoordinator {
	return &TransitionCoordinator{queue: queue, metrics: m, log: log}
}

// ArmCancel schedules a cancel job at the subscription's expiry time.
func (c *TransitionCoordinator) ArmCancel(ctx context.Context, sub *domain.Subscription) error {
	if sub.ExpiresAt == nil {
		return fmt.Errorf("arm cancel for %s: no expiry set", sub.ID)
	}
	return c.arm(ctx, domain.HookCancelSubscription, sub.ID, *sub.ExpiresAt)
}

// ArmPause schedules a pause job at the subscription's next billing time.
func (c *TransitionCoordinator) ArmPause(ctx context.Context, sub *domain.Subscription) error {
	if sub.NextBillingAt == nil {
		return fmt.Errorf("arm pause for %s: no next billing time set", sub.ID)
	}
	return c.arm(ctx, domain.HookPauseSubscription, sub.ID, *sub.NextBillingAt)
}

// Disarm removes every pending job for the subscription's uniqueness group.
func (c *TransitionCoordinator) Disarm(ctx context.Context, subscriptionID uuid.UUID) error {
	group := subscriptionID.String()
	for _, hook := range []domain.TransitionHook{domain.HookCancelSubscription, domain.HookPauseSubscription} {
		if err := c.queue.UnscheduleAll(ctx, hook, group); err != nil {
			return fmt.Errorf("unschedule %s: %w", hook, err)
		}
	}
	return nil
}

func (c *TransitionCoordinator) arm(ctx context.Context, hook domain.TransitionHook, subscriptionID uuid.UUID, fireAt time.Time) error {
	job := domain.NewTransitionJob(hook, subscriptionID, fireAt, time.Now())

	// Cheap pre-check; the queue's uniqueness constraint is what actually
	// guarantees at most one pending job per group under concurrency.
	pending, err := c.queue.HasScheduled(ctx, hook, job.GroupKey)
	if err != nil {
		return fmt.Errorf("check scheduled %s: %w", hook, err)
	}
	if pending {
		c.log.Debug().
			Str("hook", string(hook)).
			Str("subscription_id", subscriptionID.String()).
			Msg("transition job already pending")
		return nil
	}

	scheduled, err := c.queue.ScheduleOnce(ctx, job)
	if err != nil {
		return fmt.Errorf("schedule %s: %w", hook, err)
	}
	if scheduled {
		c.metrics.RecordJobScheduled(string(hook))
		c.log.Info().
			Str("hook", string(hook)).
			Str("subscription_id", subscriptionID.String()).
			Time("fire_at", fireAt).
			Msg("transition job armed")
	}
	return nil
}

// TransitionRunnerImpl implements ports.TransitionRunner: one attempt of a
// claimed job. Failed attempts re-enqueue with attempt+1 and a fixed delay
// until the budget runs out, then give up silently — the next webhook or
// operator action becomes the recovery path.
type TransitionRunnerImpl struct {
	subSvc      ports.SubscriptionService
	queue       ports.JobQueue
	maxAttempts int
	backoff     time.Duration
	metrics     *metrics.Metrics
	log         zerolog.Logger
}

// NewTransitionRunner creates a new TransitionRunnerImpl. maxAttempts counts
// retries after the first try; backoff is the fixed delay between attempts.
func NewTransitionRunner(
	subSvc ports.SubscriptionService,
	queue ports.JobQueue,
	maxAttempts int,
	backoff time.Duration,
	m *metrics.Metrics,
	log zerolog.Logger,
) *TransitionRunnerImpl {
	if maxAttempts <= 0 {
		maxAttempts = domain.DefaultMaxAttempts
	}
	if backoff <= 0 {
		backoff = domain.DefaultRetryBackoff
	}
	return &TransitionRunnerImpl{
		subSvc:      subSvc,
		queue:       queue,
		maxAttempts: maxAttempts,
		backoff:     backoff,
		metrics:     m,
		log:         log,
	}
}

// Run executes one attempt of a claimed transition job.
func (r *TransitionRunnerImpl) Run(ctx context.Context, job domain.TransitionJob) error {
	log := r.log.With().
		Str("hook", string(job.Hook)).
		Str("subscription_id", job.SubscriptionID.String()).
		Int("attempt", job.Attempt).
		Logger()

	var err error
	switch job.Hook {
	case domain.HookCancelSubscription:
		err = r.subSvc.Cancel(ctx, job.SubscriptionID)
	case domain.HookPauseSubscription:
		err = r.subSvc.Pause(ctx, job.SubscriptionID)
	default:
		log.Error().Msg("unknown transition hook, dropping job")
		return r.queue.Delete(ctx, job.ID)
	}

	// A deleted subscription is not an error; the job's reason to exist is
	// gone.
	if apperror.HasCode(err, "SUB_001") {
		log.Info().Msg("subscription gone, transition job dropped")
		r.metrics.RecordTransitionAttempt(string(job.Hook), "dropped")
		return r.queue.Delete(ctx, job.ID)
	}

	if err == nil {
		r.metrics.RecordTransitionAttempt(string(job.Hook), "succeeded")
		log.Info().Msg("transition applied")
		return r.queue.Delete(ctx, job.ID)
	}

	r.metrics.RecordTransitionAttempt(string(job.Hook), "failed")

	if job.Attempt > r.maxAttempts {
		r.metrics.RecordJobExhausted(string(job.Hook))
		log.Warn().Err(err).Msg("retry budget exhausted, giving up")
		return r.queue.Delete(ctx, job.ID)
	}

	// Advance the existing row in place; the queue keeps this atomic with a
	// concurrent disarm, so a superseded job can never be re-inserted.
	nextFireAt := time.Now().Add(r.backoff)
	ok, rErr := r.queue.Reschedule(ctx, job.ID, job.Attempt+1, nextFireAt)
	if rErr != nil {
		return fmt.Errorf("reschedule %s attempt %d: %w", job.Hook, job.Attempt+1, rErr)
	}
	if !ok {
		log.Info().Msg("job unscheduled during attempt, retry abandoned")
		return nil
	}
	r.metrics.RecordJobScheduled(string(job.Hook))
	log.Warn().Err(err).Time("next_fire_at", nextFireAt).Msg("transition failed, retry scheduled")
	return nil
}
