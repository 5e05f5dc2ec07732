package ports

import (
	"context"
	"errors"
	"time"

	"github.com/chicsouqsa-collab/Spay-sub002/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ErrDuplicateEvent signals that a ledger insert lost the race on the unique
// external event id. The pipeline treats it as "already being processed" and
// short-circuits without dispatching handlers.
var ErrDuplicateEvent = errors.New("ledger: duplicate external event id")

// LedgerRepository defines persistence for the idempotency ledger.
// Create and Update run inside the caller's transaction.
type LedgerRepository interface {
	Create(ctx context.Context, tx pgx.Tx, record *domain.LedgerRecord) error
	Update(ctx context.Context, tx pgx.Tx, record *domain.LedgerRecord) error
	GetByExternalID(ctx context.Context, externalID string) (*domain.LedgerRecord, error)
	// List supports the operator inspection surface.
	List(ctx context.Context, params LedgerListParams) ([]domain.LedgerRecord, int64, error)
}

// LedgerListParams holds filter + pagination for ledger inspection.
type LedgerListParams struct {
	Status    *domain.RequestStatus
	EventType *string
	From      *time.Time
	To        *time.Time
	Page      int
	PageSize  int
}

// SubscriptionRepository defines persistence for the billing-domain slice of
// subscriptions this core mutates.
type SubscriptionRepository interface {
	Create(ctx context.Context, sub *domain.Subscription) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Subscription, error)
	GetByGatewayID(ctx context.Context, gatewayID string) (*domain.Subscription, error)
	Update(ctx context.Context, sub *domain.Subscription) error
}

// JobQueue is the durable at-least-once task scheduler. At most one pending
// job exists per (hook, group key); ScheduleOnce returns ErrDuplicateEvent's
// queue analogue by simply refusing the second insert.
type JobQueue interface {
	// ScheduleOnce enqueues a job unless one is already pending in the same
	// (hook, group key). Returns false when an existing job made it a no-op.
	ScheduleOnce(ctx context.Context, job *domain.TransitionJob) (bool, error)
	// UnscheduleAll removes every pending job for the hook and group.
	UnscheduleAll(ctx context.Context, hook domain.TransitionHook, groupKey string) error
	// HasScheduled reports whether a pending job exists for the hook and group.
	HasScheduled(ctx context.Context, hook domain.TransitionHook, groupKey string) (bool, error)
	// Reschedule advances an existing job to its next attempt in place.
	// Returns false when the row is gone because a disarm superseded it;
	// the caller must not re-insert the job in that case.
	Reschedule(ctx context.Context, id uuid.UUID, attempt int, fireAt time.Time) (bool, error)
	// ClaimDue locks and returns up to limit jobs whose fire-at has passed.
	// A claimed job stays invisible to other workers until lockFor elapses.
	ClaimDue(ctx context.Context, now time.Time, limit int, lockFor time.Duration) ([]domain.TransitionJob, error)
	// Delete removes a job after it completed or was superseded.
	Delete(ctx context.Context, id uuid.UUID) error
	// ListPending supports the operator inspection surface.
	ListPending(ctx context.Context) ([]domain.TransitionJob, error)
}

// EventCache is the fast-path duplicate filter in front of the ledger.
// A lost marker only costs a database round trip; the ledger's unique key
// keeps correctness.
type EventCache interface {
	// MarkSeen records an external event id if new; false means a delivery
	// already claimed it.
	MarkSeen(ctx context.Context, externalEventID string) (bool, error)
	// Forget drops the marker after a failure that should not count as handled.
	Forget(ctx context.Context, externalEventID string) error
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
