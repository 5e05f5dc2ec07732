package domain

import (
	"encoding/json"
	"time"
)

// GatewayMode tells whether an event or credential belongs to the live or
// test environment of the payment gateway.
type GatewayMode string

const (
	ModeLive GatewayMode = "live"
	ModeTest GatewayMode = "test"
)

// Event types this system registers handlers for. The set is closed at boot;
// anything else is ledgered as unprocessable and acknowledged.
const (
	EventSubscriptionUpdated  = "customer.subscription.updated"
	EventSubscriptionDeleted  = "customer.subscription.deleted"
	EventAccountUpdated       = "account.updated"
	EventInvoicePaymentFailed = "invoice.payment_failed"
)

// InboundEvent is the canonical decoded form of one gateway delivery.
// It lives only for the duration of the ingestion pipeline; the ledger
// keeps the durable projection.
type InboundEvent struct {
	ExternalID string          `json:"external_id"` // gateway event id, globally unique
	Type       string          `json:"type"`
	Mode       GatewayMode     `json:"mode"`
	Account    string          `json:"account,omitempty"` // connected account, if any
	Payload    json.RawMessage `json:"payload"`           // raw data.object
	CreatedAt  time.Time       `json:"created_at"`        // gateway-side creation time
}

// IsLive reports whether the event came from the live gateway environment.
func (e *InboundEvent) IsLive() bool {
	return e.Mode == ModeLive
}
