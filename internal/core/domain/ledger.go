package domain

import (
	"time"

	"github.com/google/uuid"
)

// RequestStatus is the processing outcome recorded against a ledger entry.
type RequestStatus string

const (
	StatusPending        RequestStatus = "pending"
	StatusSucceeded      RequestStatus = "succeeded"
	StatusFailed         RequestStatus = "failed"
	StatusUnprocessable  RequestStatus = "unprocessable"
	StatusRecordNotFound RequestStatus = "record_not_found"
)

// IsTerminal reports whether the status ends processing for this event.
// A later redelivery of the same external id must not re-invoke handlers
// once a terminal status has been recorded.
func (s RequestStatus) IsTerminal() bool {
	switch s {
	case StatusSucceeded, StatusFailed, StatusUnprocessable, StatusRecordNotFound:
		return true
	}
	return false
}

// SourceType names the kind of domain object an event ultimately affected.
type SourceType string

const (
	SourceSubscription SourceType = "subscription"
	SourceAccount      SourceType = "account"
	SourceInvoice      SourceType = "invoice"
	SourceUnknown      SourceType = "unknown"
)

// LedgerRecord is the durable idempotency entry for one external event id.
// Exactly one record exists per external id; the unique key is what makes
// concurrent duplicate deliveries safe.
type LedgerRecord struct {
	ID               uuid.UUID     `json:"id"`
	ExternalEventID  string        `json:"external_event_id"` // unique — the idempotency key
	EventType        string        `json:"event_type"`
	Mode             GatewayMode   `json:"mode"`
	SourceID         *string       `json:"source_id,omitempty"` // resolved by the handler
	SourceType       SourceType    `json:"source_type"`
	RequestStatus    RequestStatus `json:"request_status"`
	Notes            *string       `json:"notes,omitempty"`
	CreatedAtLocal   time.Time     `json:"created_at_local"`
	CreatedAtUTC     time.Time     `json:"created_at_utc"`
	RespondedAtLocal *time.Time    `json:"responded_at_local,omitempty"`
	RespondedAtUTC   *time.Time    `json:"responded_at_utc,omitempty"`
}

// NewLedgerRecord builds a pending ledger entry for a freshly decoded event.
// Gateway event ordering sometimes needs sub-second resolution, so both
// timestamps are kept at millisecond precision.
func NewLedgerRecord(event *InboundEvent, now time.Time) *LedgerRecord {
	return &LedgerRecord{
		ID:              uuid.New(),
		ExternalEventID: event.ExternalID,
		EventType:       event.Type,
		Mode:            event.Mode,
		SourceType:      SourceUnknown,
		RequestStatus:   StatusPending,
		CreatedAtLocal:  now.Truncate(time.Millisecond),
		CreatedAtUTC:    now.UTC().Truncate(time.Millisecond),
	}
}

// Resolve records the handler outcome and stamps the response time.
func (r *LedgerRecord) Resolve(status RequestStatus, now time.Time) {
	r.RequestStatus = status
	local := now.Truncate(time.Millisecond)
	utc := now.UTC().Truncate(time.Millisecond)
	r.RespondedAtLocal = &local
	r.RespondedAtUTC = &utc
}

// Validate enforces the required fields before any write. A partial record
// must never be persisted silently.
func (r *LedgerRecord) Validate() error {
	if r.ExternalEventID == "" {
		return ErrLedgerValidation("external event id is required")
	}
	if r.EventType == "" {
		return ErrLedgerValidation("event type is required")
	}
	if r.Mode != ModeLive && r.Mode != ModeTest {
		return ErrLedgerValidation("gateway mode is required")
	}
	if r.SourceType == "" {
		return ErrLedgerValidation("source type is required")
	}
	if r.RequestStatus == "" {
		return ErrLedgerValidation("request status is required")
	}
	if r.CreatedAtLocal.IsZero() || r.CreatedAtUTC.IsZero() {
		return ErrLedgerValidation("created-at timestamps are required")
	}
	return nil
}

// LedgerValidationError reports a ledger record missing a required field.
type LedgerValidationError struct {
	Reason string
}

func (e *LedgerValidationError) Error() string {
	return "ledger record invalid: " + e.Reason
}

// ErrLedgerValidation builds a LedgerValidationError.
func ErrLedgerValidation(reason string) error {
	return &LedgerValidationError{Reason: reason}
}
