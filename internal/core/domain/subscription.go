package domain

import (
	"time"

	"github.com/google/uuid"
)

// SubscriptionStatus is the lifecycle state of a subscription.
type SubscriptionStatus string

const (
	SubscriptionStatusTrial         SubscriptionStatus = "trial"
	SubscriptionStatusActive        SubscriptionStatus = "active"
	SubscriptionStatusOnHold        SubscriptionStatus = "on-hold"
	SubscriptionStatusPendingCancel SubscriptionStatus = "pending-cancel"
	SubscriptionStatusCanceled      SubscriptionStatus = "canceled"
	SubscriptionStatusExpired       SubscriptionStatus = "expired"
)

// Subscription is the billing-domain slice this core acts on. Persistence is
// owned elsewhere; mutators must re-read current status right before writing.
type Subscription struct {
	ID             uuid.UUID          `json:"id"`
	GatewayID      string             `json:"gateway_id"` // sub_... or sub_sched_...
	Status         SubscriptionStatus `json:"status"`
	Mode           GatewayMode        `json:"mode"`
	IsScheduleType bool               `json:"is_schedule_type"`     // gateway schedule object, cancels via a different call
	ExpiresAt      *time.Time         `json:"expires_at,omitempty"` // set iff cancel-at-period-end is pending
	NextBillingAt  *time.Time         `json:"next_billing_at,omitempty"`
	ResumesAt      *time.Time         `json:"resumes_at,omitempty"` // when a pause should lift, if known
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// IsTerminal reports whether no further transitions are legal.
func (s *Subscription) IsTerminal() bool {
	return s.Status == SubscriptionStatusCanceled || s.Status == SubscriptionStatusExpired
}

// IsPaused reports whether collection is currently on hold.
func (s *Subscription) IsPaused() bool {
	return s.Status == SubscriptionStatusOnHold
}

// CanCancel reports whether an immediate cancel is legal.
func (s *Subscription) CanCancel() bool {
	return !s.IsTerminal()
}

// HasPendingCancellation reports whether a cancel-at-period-end is armed.
// The expiry timestamp doubles as the fire-at time for the scheduled job.
func (s *Subscription) HasPendingCancellation() bool {
	return s.ExpiresAt != nil
}

// MarkCanceled moves the subscription to canceled and clears scheduling state.
func (s *Subscription) MarkCanceled(now time.Time) {
	s.Status = SubscriptionStatusCanceled
	s.ExpiresAt = nil
	s.NextBillingAt = nil
	s.ResumesAt = nil
	s.UpdatedAt = now
}

// MarkOnHold moves the subscription to on-hold.
func (s *Subscription) MarkOnHold(now time.Time) {
	s.Status = SubscriptionStatusOnHold
	s.UpdatedAt = now
}

// MarkActive moves the subscription back to active and clears any pause or
// pending-cancellation state, keeping the expires-at invariant.
func (s *Subscription) MarkActive(now time.Time) {
	s.Status = SubscriptionStatusActive
	s.ResumesAt = nil
	s.ExpiresAt = nil
	s.UpdatedAt = now
}

// SchedulePendingCancel arms a cancellation at the given period end.
func (s *Subscription) SchedulePendingCancel(expiresAt time.Time, now time.Time) {
	s.Status = SubscriptionStatusPendingCancel
	s.ExpiresAt = &expiresAt
	s.UpdatedAt = now
}
