package ports

import (
	"context"
	"errors"
	"time"

	"github.com/chicsouqsa-collab/Spay-sub002/internal/core/domain"

	"github.com/google/uuid"
)

// ErrGatewayResourceMissing signals the gateway no longer knows the resource
// a call referred to. Callers treat it as an idempotent no-op rather than a
// retryable failure.
var ErrGatewayResourceMissing = errors.New("gateway: resource not found")

// EventCodec verifies and decodes one raw gateway delivery.
// Failures come back as apperror SEC_001 (signature) or SEC_002 (payload);
// the caller must respond 400 and touch no state on either.
type EventCodec interface {
	Decode(signatureHeader string, rawBody []byte) (*domain.InboundEvent, error)
}

// EventOutcome is what a handler resolved for one event.
type EventOutcome struct {
	Status     domain.RequestStatus
	SourceID   *string
	SourceType domain.SourceType
	Notes      string
}

// EventHandler processes one decoded event. Implementations must be safe to
// call concurrently across deliveries.
type EventHandler interface {
	Process(ctx context.Context, event *domain.InboundEvent) (EventOutcome, error)
}

// ErrEventInFlight signals that another delivery of the same event is being
// processed right now. The HTTP layer acknowledges it like a success; it is
// a sentinel rather than an apperror because nothing about it is an error
// from the sender's point of view.
var ErrEventInFlight = errors.New("event delivery already in flight")

// IngestService is the webhook ingestion pipeline. A nil return means the
// delivery is acknowledged; ErrEventInFlight is also acknowledged; any other
// apperror maps to the HTTP status the sender should see.
type IngestService interface {
	Ingest(ctx context.Context, signatureHeader string, rawBody []byte) error
}

// GatewayClient is the opaque payment-gateway boundary. Gateway-side errors
// collapse to ErrGatewayResourceMissing vs. anything else.
type GatewayClient interface {
	CancelSubscription(ctx context.Context, gatewayID string) error
	PauseSubscription(ctx context.Context, gatewayID string, resumeAt *time.Time) error
	CancelSchedule(ctx context.Context, gatewayID string) error
}

// SubscriptionService drives the subscription state machine. Every transition
// is idempotent from a job's perspective: requesting a state the subscription
// already holds returns success.
type SubscriptionService interface {
	Cancel(ctx context.Context, id uuid.UUID) error
	CancelAtPeriodEnd(ctx context.Context, id uuid.UUID, expiresAt time.Time) error
	Pause(ctx context.Context, id uuid.UUID) error
	PauseAtPeriodEnd(ctx context.Context, id uuid.UUID) error
	Resume(ctx context.Context, id uuid.UUID) error
}

// TransitionScheduler consumes the state machine's lifecycle events to arm
// and disarm deferred transition jobs on the durable queue.
type TransitionScheduler interface {
	// ArmCancel schedules a cancel job at the subscription's expiry.
	ArmCancel(ctx context.Context, sub *domain.Subscription) error
	// ArmPause schedules a pause job at the subscription's next billing time.
	ArmPause(ctx context.Context, sub *domain.Subscription) error
	// Disarm removes any pending job for the subscription; called whenever a
	// transition supersedes whatever was scheduled.
	Disarm(ctx context.Context, subscriptionID uuid.UUID) error
}

// TransitionRunner executes one claimed transition job attempt.
type TransitionRunner interface {
	Run(ctx context.Context, job domain.TransitionJob) error
}

// TokenService handles operator JWT operations.
type TokenService interface {
	Generate(subject string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	Subject string
}

// AuthService exchanges the configured operator key for a short-lived token.
type AuthService interface {
	IssueToken(ctx context.Context, operatorKey string) (string, time.Time, error)
}

// HashService hashes and verifies secrets.
type HashService interface {
	Hash(secret string) (string, error)
	Verify(secret string, encodedHash string) (bool, error)
}
