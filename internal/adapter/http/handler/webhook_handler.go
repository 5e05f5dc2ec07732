package handler

import (
	"errors"
	"io"

	"github.com/chicsouqsa-collab/Spay-sub002/internal/core/ports"
	"github.com/chicsouqsa-collab/Spay-sub002/pkg/apperror"
	"github.com/chicsouqsa-collab/Spay-sub002/pkg/response"

	"github.com/gin-gonic/gin"
)

// SignatureHeader is the gateway's webhook signature header.
const SignatureHeader = "Stripe-Signature"

// WebhookHandler receives gateway webhook deliveries.
type WebhookHandler struct {
	ingestSvc ports.IngestService
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(ingestSvc ports.IngestService) *WebhookHandler {
	return &WebhookHandler{ingestSvc: ingestSvc}
}

// Receive handles POST /api/v1/webhooks/stripe. The raw body is passed
// through untouched; signature verification needs the exact bytes the
// gateway signed.
func (h *WebhookHandler) Receive(c *gin.Context) {
	rawBody, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.Error(c, apperror.ErrMalformedPayload(err))
		return
	}

	err = h.ingestSvc.Ingest(c.Request.Context(), c.GetHeader(SignatureHeader), rawBody)
	if err != nil && !errors.Is(err, ports.ErrEventInFlight) {
		response.Error(c, err)
		return
	}

	// An in-flight duplicate acknowledges like a success: the other delivery
	// owns the resolution and a retry would change nothing.
	response.Ack(c)
}
