package stripe

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chicsouqsa-collab/Spay-sub002/internal/core/ports"

	"github.com/stripe/stripe-go/v83"
)

// Client implements ports.GatewayClient against the Stripe API. A
// resource_missing answer from Stripe maps to ports.ErrGatewayResourceMissing
// so callers can treat already-gone resources as converged.
type Client struct {
	sc *stripe.Client
}

// NewClient creates a gateway client for the given API key.
func NewClient(apiKey string) *Client {
	return &Client{sc: stripe.NewClient(apiKey)}
}

// CancelSubscription cancels a subscription immediately.
func (c *Client) CancelSubscription(ctx context.Context, gatewayID string) error {
	_, err := c.sc.V1Subscriptions.Cancel(ctx, gatewayID, &stripe.SubscriptionCancelParams{})
	if err != nil {
		if isResourceMissing(err) {
			return ports.ErrGatewayResourceMissing
		}
		return fmt.Errorf("cancel subscription %s: %w", gatewayID, err)
	}
	return nil
}

// PauseSubscription pauses collection on a subscription. A nil resumeAt
// pauses indefinitely.
func (c *Client) PauseSubscription(ctx context.Context, gatewayID string, resumeAt *time.Time) error {
	pause := &stripe.SubscriptionUpdatePauseCollectionParams{
		Behavior: stripe.String("void"),
	}
	if resumeAt != nil {
		pause.ResumesAt = stripe.Int64(resumeAt.Unix())
	}

	_, err := c.sc.V1Subscriptions.Update(ctx, gatewayID, &stripe.SubscriptionUpdateParams{
		PauseCollection: pause,
	})
	if err != nil {
		if isResourceMissing(err) {
			return ports.ErrGatewayResourceMissing
		}
		return fmt.Errorf("pause subscription %s: %w", gatewayID, err)
	}
	return nil
}

// CancelSchedule cancels a subscription schedule. Schedule-typed
// subscriptions cannot be canceled through the subscription endpoint.
func (c *Client) CancelSchedule(ctx context.Context, gatewayID string) error {
	_, err := c.sc.V1SubscriptionSchedules.Cancel(ctx, gatewayID, &stripe.SubscriptionScheduleCancelParams{})
	if err != nil {
		if isResourceMissing(err) {
			return ports.ErrGatewayResourceMissing
		}
		return fmt.Errorf("cancel schedule %s: %w", gatewayID, err)
	}
	return nil
}

func isResourceMissing(err error) bool {
	var stripeErr *stripe.Error
	return errors.As(err, &stripeErr) && stripeErr.Code == stripe.ErrorCodeResourceMissing
}
