package domain

import (
	"time"

	"github.com/google/uuid"
)

// TransitionHook identifies the kind of deferred transition a job performs.
type TransitionHook string

const (
	HookCancelSubscription TransitionHook = "cancel-subscription"
	HookPauseSubscription  TransitionHook = "pause-subscription"
)

// Default retry policy for transition jobs. The backoff is fixed rather than
// exponential: the failure being compensated for is the gateway side not yet
// having converged, which resolves within a small bounded window.
const (
	DefaultMaxAttempts  = 2 // retries after the first try, i.e. 3 total
	DefaultRetryBackoff = 5 * time.Minute
)

// TransitionJob is one pending entry on the durable job queue. At most one
// pending job exists per (hook, group key); the group key is the subscription
// id so competing jobs for the same subscription cannot coexist.
type TransitionJob struct {
	ID             uuid.UUID      `json:"id"`
	Hook           TransitionHook `json:"hook"`
	SubscriptionID uuid.UUID      `json:"subscription_id"`
	Attempt        int            `json:"attempt"` // starts at 1
	FireAt         time.Time      `json:"fire_at"`
	GroupKey       string         `json:"group_key"`
	LockedUntil    *time.Time     `json:"locked_until,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}

// NewTransitionJob builds a first-attempt job for a subscription.
func NewTransitionJob(hook TransitionHook, subscriptionID uuid.UUID, fireAt time.Time, now time.Time) *TransitionJob {
	return &TransitionJob{
		ID:             uuid.New(),
		Hook:           hook,
		SubscriptionID: subscriptionID,
		Attempt:        1,
		FireAt:         fireAt,
		GroupKey:       subscriptionID.String(),
		CreatedAt:      now,
	}
}

// Due reports whether the job is ready to fire.
func (j *TransitionJob) Due(now time.Time) bool {
	return !j.FireAt.After(now)
}
