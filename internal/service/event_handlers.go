package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/chicsouqsa-collab/Spay-sub002/internal/core/domain"
	"github.com/chicsouqsa-collab/Spay-sub002/internal/core/ports"

	"github.com/rs/zerolog"
)

// subscriptionPayload is the slice of the gateway's subscription object the
// handlers care about.
type subscriptionPayload struct {
	ID                string `json:"id"`
	Status            string `json:"status"`
	CancelAtPeriodEnd bool   `json:"cancel_at_period_end"`
	CurrentPeriodEnd  int64  `json:"current_period_end"`
	PauseCollection   *struct {
		ResumesAt int64 `json:"resumes_at"`
	} `json:"pause_collection"`
}

// SubscriptionUpdatedHandler syncs local subscription state from
// customer.subscription.updated events. Out-of-band pauses, resumes and
// pending cancellations detected here arm or disarm scheduled transitions.
type SubscriptionUpdatedHandler struct {
	subRepo   ports.SubscriptionRepository
	scheduler ports.TransitionScheduler
	log       zerolog.Logger
}

// NewSubscriptionUpdatedHandler creates the handler.
func NewSubscriptionUpdatedHandler(subRepo ports.SubscriptionRepository, scheduler ports.TransitionScheduler, log zerolog.Logger) *SubscriptionUpdatedHandler {
	return &SubscriptionUpdatedHandler{subRepo: subRepo, scheduler: scheduler, log: log}
}

// Process applies the gateway-side subscription state to the local record.
func (h *SubscriptionUpdatedHandler) Process(ctx context.Context, event *domain.InboundEvent) (ports.EventOutcome, error) {
	var payload subscriptionPayload
	if err := json.Unmarshal(event.Payload, &payload); err != nil || payload.ID == "" {
		return ports.EventOutcome{
			Status: domain.StatusUnprocessable,
			Notes:  "payload carries no subscription object",
		}, nil
	}

	sub, err := h.subRepo.GetByGatewayID(ctx, payload.ID)
	if err != nil {
		return ports.EventOutcome{}, fmt.Errorf("load subscription %s: %w", payload.ID, err)
	}
	if sub == nil {
		return ports.EventOutcome{
			SourceType: domain.SourceSubscription,
			Status:     domain.StatusRecordNotFound,
			Notes:      "no local subscription for " + payload.ID,
		}, nil
	}

	sourceID := sub.ID.String()
	now := time.Now()

	switch {
	case payload.Status == "canceled":
		sub.MarkCanceled(now)
		if err := h.subRepo.Update(ctx, sub); err != nil {
			return ports.EventOutcome{}, fmt.Errorf("update subscription: %w", err)
		}
		if err := h.scheduler.Disarm(ctx, sub.ID); err != nil {
			return ports.EventOutcome{}, fmt.Errorf("disarm jobs: %w", err)
		}

	case payload.PauseCollection != nil:
		// Paused out of band; a scheduled pause job must never fire now.
		if payload.PauseCollection.ResumesAt > 0 {
			resumesAt := time.Unix(payload.PauseCollection.ResumesAt, 0).UTC()
			sub.ResumesAt = &resumesAt
		}
		sub.MarkOnHold(now)
		if err := h.subRepo.Update(ctx, sub); err != nil {
			return ports.EventOutcome{}, fmt.Errorf("update subscription: %w", err)
		}
		if err := h.scheduler.Disarm(ctx, sub.ID); err != nil {
			return ports.EventOutcome{}, fmt.Errorf("disarm jobs: %w", err)
		}

	case payload.CancelAtPeriodEnd:
		expiresAt := time.Unix(payload.CurrentPeriodEnd, 0).UTC()
		sub.SchedulePendingCancel(expiresAt, now)
		if err := h.subRepo.Update(ctx, sub); err != nil {
			return ports.EventOutcome{}, fmt.Errorf("update subscription: %w", err)
		}
		if err := h.scheduler.ArmCancel(ctx, sub); err != nil {
			return ports.EventOutcome{}, fmt.Errorf("arm cancel job: %w", err)
		}

	case sub.IsPaused() || sub.HasPendingCancellation():
		// Gateway reports a plain active subscription again: an out-of-band
		// resume or cancellation rollback superseded whatever was scheduled.
		sub.MarkActive(now)
		if err := h.subRepo.Update(ctx, sub); err != nil {
			return ports.EventOutcome{}, fmt.Errorf("update subscription: %w", err)
		}
		if err := h.scheduler.Disarm(ctx, sub.ID); err != nil {
			return ports.EventOutcome{}, fmt.Errorf("disarm jobs: %w", err)
		}

	default:
		h.log.Debug().Str("gateway_id", payload.ID).Str("status", payload.Status).Msg("subscription update carries no state change")
	}

	return ports.EventOutcome{
		SourceID:   &sourceID,
		SourceType: domain.SourceSubscription,
		Status:     domain.StatusSucceeded,
	}, nil
}

// SubscriptionDeletedHandler cancels the local subscription when the
// gateway reports it gone.
type SubscriptionDeletedHandler struct {
	subRepo   ports.SubscriptionRepository
	scheduler ports.TransitionScheduler
	log       zerolog.Logger
}

// NewSubscriptionDeletedHandler creates the handler.
func NewSubscriptionDeletedHandler(subRepo ports.SubscriptionRepository, scheduler ports.TransitionScheduler, log zerolog.Logger) *SubscriptionDeletedHandler {
	return &SubscriptionDeletedHandler{subRepo: subRepo, scheduler: scheduler, log: log}
}

// Process marks the subscription canceled and disarms any scheduled jobs.
func (h *SubscriptionDeletedHandler) Process(ctx context.Context, event *domain.InboundEvent) (ports.EventOutcome, error) {
	var payload subscriptionPayload
	if err := json.Unmarshal(event.Payload, &payload); err != nil || payload.ID == "" {
		return ports.EventOutcome{
			Status: domain.StatusUnprocessable,
			Notes:  "payload carries no subscription object",
		}, nil
	}

	sub, err := h.subRepo.GetByGatewayID(ctx, payload.ID)
	if err != nil {
		return ports.EventOutcome{}, fmt.Errorf("load subscription %s: %w", payload.ID, err)
	}
	if sub == nil {
		return ports.EventOutcome{
			SourceType: domain.SourceSubscription,
			Status:     domain.StatusRecordNotFound,
			Notes:      "no local subscription for " + payload.ID,
		}, nil
	}

	sourceID := sub.ID.String()
	if !sub.IsTerminal() {
		sub.MarkCanceled(time.Now())
		if err := h.subRepo.Update(ctx, sub); err != nil {
			return ports.EventOutcome{}, fmt.Errorf("update subscription: %w", err)
		}
	}
	if err := h.scheduler.Disarm(ctx, sub.ID); err != nil {
		return ports.EventOutcome{}, fmt.Errorf("disarm jobs: %w", err)
	}

	return ports.EventOutcome{
		SourceID:   &sourceID,
		SourceType: domain.SourceSubscription,
		Status:     domain.StatusSucceeded,
	}, nil
}

// AccountUpdatedHandler acknowledges account.updated events for the
// connected account this install serves. Events for any other account
// resolve to record_not_found so the sender stops retrying them.
type AccountUpdatedHandler struct {
	accountID string
	log       zerolog.Logger
}

// NewAccountUpdatedHandler creates the handler.
func NewAccountUpdatedHandler(accountID string, log zerolog.Logger) *AccountUpdatedHandler {
	return &AccountUpdatedHandler{accountID: accountID, log: log}
}

// Process resolves the event against the configured account linkage.
func (h *AccountUpdatedHandler) Process(ctx context.Context, event *domain.InboundEvent) (ports.EventOutcome, error) {
	var payload struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(event.Payload, &payload); err != nil || payload.ID == "" {
		return ports.EventOutcome{
			Status: domain.StatusUnprocessable,
			Notes:  "payload carries no account object",
		}, nil
	}

	if h.accountID == "" || payload.ID != h.accountID {
		return ports.EventOutcome{
			SourceType: domain.SourceAccount,
			Status:     domain.StatusRecordNotFound,
			Notes:      "account " + payload.ID + " is not connected to this install",
		}, nil
	}

	h.log.Info().Str("account_id", payload.ID).Msg("gateway account updated")
	sourceID := payload.ID
	return ports.EventOutcome{
		SourceID:   &sourceID,
		SourceType: domain.SourceAccount,
		Status:     domain.StatusSucceeded,
	}, nil
}

// InvoicePaymentFailedHandler puts the affected subscription on hold when
// the gateway reports a failed payment.
type InvoicePaymentFailedHandler struct {
	subRepo   ports.SubscriptionRepository
	scheduler ports.TransitionScheduler
	log       zerolog.Logger
}

// NewInvoicePaymentFailedHandler creates the handler.
func NewInvoicePaymentFailedHandler(subRepo ports.SubscriptionRepository, scheduler ports.TransitionScheduler, log zerolog.Logger) *InvoicePaymentFailedHandler {
	return &InvoicePaymentFailedHandler{subRepo: subRepo, scheduler: scheduler, log: log}
}

// Process records the failure against the invoice's subscription.
func (h *InvoicePaymentFailedHandler) Process(ctx context.Context, event *domain.InboundEvent) (ports.EventOutcome, error) {
	var payload struct {
		ID           string `json:"id"`
		Subscription string `json:"subscription"`
	}
	if err := json.Unmarshal(event.Payload, &payload); err != nil || payload.Subscription == "" {
		return ports.EventOutcome{
			Status: domain.StatusUnprocessable,
			Notes:  "invoice carries no subscription reference",
		}, nil
	}

	sub, err := h.subRepo.GetByGatewayID(ctx, payload.Subscription)
	if err != nil {
		return ports.EventOutcome{}, fmt.Errorf("load subscription %s: %w", payload.Subscription, err)
	}
	if sub == nil {
		return ports.EventOutcome{
			SourceType: domain.SourceSubscription,
			Status:     domain.StatusRecordNotFound,
			Notes:      "no local subscription for " + payload.Subscription,
		}, nil
	}

	sourceID := sub.ID.String()
	if sub.IsTerminal() {
		// Nothing to hold; the failed payment is moot.
		return ports.EventOutcome{
			SourceID:   &sourceID,
			SourceType: domain.SourceSubscription,
			Status:     domain.StatusSucceeded,
			Notes:      "subscription already " + string(sub.Status),
		}, nil
	}

	sub.MarkOnHold(time.Now())
	if err := h.subRepo.Update(ctx, sub); err != nil {
		return ports.EventOutcome{}, fmt.Errorf("update subscription: %w", err)
	}
	if err := h.scheduler.Disarm(ctx, sub.ID); err != nil {
		return ports.EventOutcome{}, fmt.Errorf("disarm jobs: %w", err)
	}

	h.log.Warn().Str("subscription_id", sourceID).Str("invoice_id", payload.ID).Msg("payment failed, subscription on hold")
	return ports.EventOutcome{
		SourceID:   &sourceID,
		SourceType: domain.SourceSubscription,
		Status:     domain.StatusSucceeded,
	}, nil
}
