package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chicsouqsa-collab/Spay-sub002/internal/core/domain"
	"github.com/chicsouqsa-collab/Spay-sub002/internal/core/ports"
	"github.com/chicsouqsa-collab/Spay-sub002/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// SubscriptionServiceImpl implements ports.SubscriptionService. Every
// transition re-reads current status right before mutating, and reaching a
// state the subscription already holds is success, not an error — a
// scheduled job may race an out-of-band change that already converged.
type SubscriptionServiceImpl struct {
	subRepo   ports.SubscriptionRepository
	gateway   ports.GatewayClient
	scheduler ports.TransitionScheduler
	log       zerolog.Logger
}

// NewSubscriptionService creates a new SubscriptionServiceImpl.
func NewSubscriptionService(
	subRepo ports.SubscriptionRepository,
	gateway ports.GatewayClient,
	scheduler ports.TransitionScheduler,
	log zerolog.Logger,
) *SubscriptionServiceImpl {
	return &SubscriptionServiceImpl{
		subRepo:   subRepo,
		gateway:   gateway,
		scheduler: scheduler,
		log:       log,
	}
}

// Cancel cancels the subscription at the gateway immediately and marks it
// canceled locally. Schedule-typed subscriptions cancel through the
// schedule endpoint. A subscription the gateway no longer knows has
// already converged.
func (s *SubscriptionServiceImpl) Cancel(ctx context.Context, id uuid.UUID) error {
	sub, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if sub.IsTerminal() {
		return nil
	}

	if sub.IsScheduleType {
		err = s.gateway.CancelSchedule(ctx, sub.GatewayID)
	} else {
		err = s.gateway.CancelSubscription(ctx, sub.GatewayID)
	}
	if err != nil && !errors.Is(err, ports.ErrGatewayResourceMissing) {
		return apperror.ErrGatewayFailure(err)
	}

	sub.MarkCanceled(time.Now())
	if err := s.subRepo.Update(ctx, sub); err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("update subscription: %w", err))
	}
	if err := s.scheduler.Disarm(ctx, sub.ID); err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("disarm jobs: %w", err))
	}

	s.log.Info().Str("subscription_id", id.String()).Msg("subscription canceled")
	return nil
}

// CancelAtPeriodEnd records the pending cancellation and arms a cancel job
// at the expiry time.
func (s *SubscriptionServiceImpl) CancelAtPeriodEnd(ctx context.Context, id uuid.UUID, expiresAt time.Time) error {
	sub, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if sub.IsTerminal() {
		return apperror.ErrInvalidTransition(string(sub.Status), string(domain.SubscriptionStatusPendingCancel))
	}

	sub.SchedulePendingCancel(expiresAt, time.Now())
	if err := s.subRepo.Update(ctx, sub); err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("update subscription: %w", err))
	}
	if err := s.scheduler.ArmCancel(ctx, sub); err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("arm cancel job: %w", err))
	}

	s.log.Info().
		Str("subscription_id", id.String()).
		Time("expires_at", expiresAt).
		Msg("cancellation scheduled at period end")
	return nil
}

// Pause pauses collection at the gateway and puts the subscription on hold.
// Pausing an already-paused or already-terminal subscription is a no-op:
// the state the job wanted has been reached through another path.
func (s *SubscriptionServiceImpl) Pause(ctx context.Context, id uuid.UUID) error {
	sub, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if sub.IsPaused() || sub.IsTerminal() {
		return nil
	}

	if err := s.gateway.PauseSubscription(ctx, sub.GatewayID, sub.ResumesAt); err != nil {
		if !errors.Is(err, ports.ErrGatewayResourceMissing) {
			return apperror.ErrGatewayFailure(err)
		}
		// Gone at the gateway; nothing left to pause.
		s.log.Warn().Str("subscription_id", id.String()).Msg("subscription missing at gateway, pause skipped")
	}

	sub.MarkOnHold(time.Now())
	if err := s.subRepo.Update(ctx, sub); err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("update subscription: %w", err))
	}

	s.log.Info().Str("subscription_id", id.String()).Msg("subscription paused")
	return nil
}

// PauseAtPeriodEnd arms a pause job at the next billing time without
// changing status now.
func (s *SubscriptionServiceImpl) PauseAtPeriodEnd(ctx context.Context, id uuid.UUID) error {
	sub, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if sub.IsTerminal() {
		return apperror.ErrInvalidTransition(string(sub.Status), string(domain.SubscriptionStatusOnHold))
	}
	if sub.NextBillingAt == nil {
		return apperror.Validation("subscription has no next billing time to pause at")
	}

	if err := s.scheduler.ArmPause(ctx, sub); err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("arm pause job: %w", err))
	}

	s.log.Info().
		Str("subscription_id", id.String()).
		Time("fire_at", *sub.NextBillingAt).
		Msg("pause scheduled at period end")
	return nil
}

// Resume reactivates a paused subscription and removes any scheduled
// transition that the resume supersedes.
func (s *SubscriptionServiceImpl) Resume(ctx context.Context, id uuid.UUID) error {
	sub, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if sub.IsTerminal() {
		return apperror.ErrInvalidTransition(string(sub.Status), string(domain.SubscriptionStatusActive))
	}

	// A stale pause or cancel job must never fire against a resumed
	// subscription, even when the status itself needs no change.
	if err := s.scheduler.Disarm(ctx, sub.ID); err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("disarm jobs: %w", err))
	}

	if sub.Status == domain.SubscriptionStatusActive && !sub.HasPendingCancellation() {
		return nil
	}

	sub.MarkActive(time.Now())
	if err := s.subRepo.Update(ctx, sub); err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("update subscription: %w", err))
	}

	s.log.Info().Str("subscription_id", id.String()).Msg("subscription resumed")
	return nil
}

func (s *SubscriptionServiceImpl) load(ctx context.Context, id uuid.UUID) (*domain.Subscription, error) {
	sub, err := s.subRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("load subscription: %w", err))
	}
	if sub == nil {
		return nil, apperror.ErrSubscriptionNotFound()
	}
	return sub, nil
}
