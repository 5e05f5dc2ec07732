package stripe

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/chicsouqsa-collab/Spay-sub002/internal/core/domain"
	"github.com/chicsouqsa-collab/Spay-sub002/pkg/apperror"

	"github.com/stripe/stripe-go/v83"
)

// Codec implements ports.EventCodec for Stripe webhook deliveries. It
// verifies the Stripe-Signature header against the endpoint secret for the
// mode the service runs in, then lifts the event into the domain form.
type Codec struct {
	secret string
	mode   domain.GatewayMode
}

// NewCodec creates a Codec bound to one endpoint secret and gateway mode.
func NewCodec(secret string, mode domain.GatewayMode) *Codec {
	return &Codec{secret: secret, mode: mode}
}

// Decode verifies and decodes one raw delivery. Signature failures and
// undecodable payloads both reject the delivery outright; neither touches
// any state.
func (c *Codec) Decode(signatureHeader string, rawBody []byte) (*domain.InboundEvent, error) {
	if !json.Valid(rawBody) {
		return nil, apperror.ErrMalformedPayload(errors.New("body is not valid JSON"))
	}

	event, err := stripe.ConstructEvent(rawBody, signatureHeader, c.secret)
	if err != nil {
		return nil, apperror.ErrInvalidSignature(err)
	}

	if event.ID == "" || event.Type == "" {
		return nil, apperror.ErrMalformedPayload(errors.New("event missing id or type"))
	}

	mode := domain.ModeTest
	if event.Livemode {
		mode = domain.ModeLive
	}

	var payload json.RawMessage
	if event.Data != nil {
		payload = event.Data.Raw
	}

	return &domain.InboundEvent{
		ExternalID: event.ID,
		Type:       string(event.Type),
		Mode:       mode,
		Account:    event.Account,
		Payload:    payload,
		CreatedAt:  time.Unix(event.Created, 0).UTC(),
	}, nil
}
