package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/chicsouqsa-collab/Spay-sub002/internal/core/domain"
	"github.com/chicsouqsa-collab/Spay-sub002/internal/core/ports/mocks"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func activeSubscription() *domain.Subscription {
	now := time.Now().UTC()
	next := now.Add(30 * 24 * time.Hour)
	return &domain.Subscription{
		ID:            uuid.New(),
		GatewayID:     "sub_abc",
		Status:        domain.SubscriptionStatusActive,
		Mode:          domain.ModeTest,
		NextBillingAt: &next,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func updatedEvent(payload string) *domain.InboundEvent {
	return &domain.InboundEvent{
		ExternalID: "evt_1",
		Type:       domain.EventSubscriptionUpdated,
		Mode:       domain.ModeTest,
		Payload:    json.RawMessage(payload),
		CreatedAt:  time.Now().UTC(),
	}
}

func TestSubscriptionUpdatedHandler_CanceledOnGateway(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	subRepo := mocks.NewMockSubscriptionRepository(ctrl)
	scheduler := mocks.NewMockTransitionScheduler(ctrl)
	sub := activeSubscription()

	subRepo.EXPECT().GetByGatewayID(gomock.Any(), "sub_abc").Return(sub, nil)
	subRepo.EXPECT().Update(gomock.Any(), sub).
		DoAndReturn(func(_ context.Context, s *domain.Subscription) error {
			assert.Equal(t, domain.SubscriptionStatusCanceled, s.Status)
			assert.Nil(t, s.ExpiresAt)
			return nil
		})
	scheduler.EXPECT().Disarm(gomock.Any(), sub.ID).Return(nil)

	h := NewSubscriptionUpdatedHandler(subRepo, scheduler, zerolog.Nop())
	outcome, err := h.Process(context.Background(), updatedEvent(`{"id":"sub_abc","status":"canceled"}`))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSucceeded, outcome.Status)
	require.NotNil(t, outcome.SourceID)
	assert.Equal(t, sub.ID.String(), *outcome.SourceID)
}

func TestSubscriptionUpdatedHandler_OutOfBandPauseDisarms(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	subRepo := mocks.NewMockSubscriptionRepository(ctrl)
	scheduler := mocks.NewMockTransitionScheduler(ctrl)
	sub := activeSubscription()
	resumesAt := time.Now().Add(7 * 24 * time.Hour).Unix()

	subRepo.EXPECT().GetByGatewayID(gomock.Any(), "sub_abc").Return(sub, nil)
	subRepo.EXPECT().Update(gomock.Any(), sub).
		DoAndReturn(func(_ context.Context, s *domain.Subscription) error {
			assert.Equal(t, domain.SubscriptionStatusOnHold, s.Status)
			require.NotNil(t, s.ResumesAt)
			assert.Equal(t, resumesAt, s.ResumesAt.Unix())
			return nil
		})
	scheduler.EXPECT().Disarm(gomock.Any(), sub.ID).Return(nil)

	h := NewSubscriptionUpdatedHandler(subRepo, scheduler, zerolog.Nop())
	payload := fmt.Sprintf(`{"id":"sub_abc","status":"active","pause_collection":{"resumes_at":%d}}`, resumesAt)
	outcome, err := h.Process(context.Background(), updatedEvent(payload))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSucceeded, outcome.Status)
}

func TestSubscriptionUpdatedHandler_CancelAtPeriodEndArms(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	subRepo := mocks.NewMockSubscriptionRepository(ctrl)
	scheduler := mocks.NewMockTransitionScheduler(ctrl)
	sub := activeSubscription()
	periodEnd := time.Now().Add(14 * 24 * time.Hour).Unix()

	subRepo.EXPECT().GetByGatewayID(gomock.Any(), "sub_abc").Return(sub, nil)
	subRepo.EXPECT().Update(gomock.Any(), sub).
		DoAndReturn(func(_ context.Context, s *domain.Subscription) error {
			assert.Equal(t, domain.SubscriptionStatusPendingCancel, s.Status)
			require.NotNil(t, s.ExpiresAt)
			assert.Equal(t, periodEnd, s.ExpiresAt.Unix())
			return nil
		})
	scheduler.EXPECT().ArmCancel(gomock.Any(), sub).Return(nil)

	h := NewSubscriptionUpdatedHandler(subRepo, scheduler, zerolog.Nop())
	payload := fmt.Sprintf(`{"id":"sub_abc","status":"active","cancel_at_period_end":true,"current_period_end":%d}`, periodEnd)
	outcome, err := h.Process(context.Background(), updatedEvent(payload))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSucceeded, outcome.Status)
}

func TestSubscriptionUpdatedHandler_ResumeSupersedesScheduledPause(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	subRepo := mocks.NewMockSubscriptionRepository(ctrl)
	scheduler := mocks.NewMockTransitionScheduler(ctrl)
	sub := activeSubscription()
	sub.Status = domain.SubscriptionStatusOnHold
	resumesAt := time.Now().Add(time.Hour)
	sub.ResumesAt = &resumesAt

	subRepo.EXPECT().GetByGatewayID(gomock.Any(), "sub_abc").Return(sub, nil)
	subRepo.EXPECT().Update(gomock.Any(), sub).
		DoAndReturn(func(_ context.Context, s *domain.Subscription) error {
			assert.Equal(t, domain.SubscriptionStatusActive, s.Status)
			assert.Nil(t, s.ResumesAt)
			return nil
		})
	scheduler.EXPECT().Disarm(gomock.Any(), sub.ID).Return(nil)

	h := NewSubscriptionUpdatedHandler(subRepo, scheduler, zerolog.Nop())
	outcome, err := h.Process(context.Background(), updatedEvent(`{"id":"sub_abc","status":"active"}`))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSucceeded, outcome.Status)
}

func TestSubscriptionUpdatedHandler_UnknownSubscription(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	subRepo := mocks.NewMockSubscriptionRepository(ctrl)
	scheduler := mocks.NewMockTransitionScheduler(ctrl)

	subRepo.EXPECT().GetByGatewayID(gomock.Any(), "sub_missing").Return(nil, nil)

	h := NewSubscriptionUpdatedHandler(subRepo, scheduler, zerolog.Nop())
	outcome, err := h.Process(context.Background(), updatedEvent(`{"id":"sub_missing","status":"active"}`))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRecordNotFound, outcome.Status)
}

func TestSubscriptionUpdatedHandler_MalformedPayload(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewSubscriptionUpdatedHandler(mocks.NewMockSubscriptionRepository(ctrl), mocks.NewMockTransitionScheduler(ctrl), zerolog.Nop())
	outcome, err := h.Process(context.Background(), updatedEvent(`{"status":"active"}`))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusUnprocessable, outcome.Status)
}

func TestSubscriptionUpdatedHandler_RepoErrorPropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	subRepo := mocks.NewMockSubscriptionRepository(ctrl)
	subRepo.EXPECT().GetByGatewayID(gomock.Any(), "sub_abc").Return(nil, errors.New("timeout"))

	h := NewSubscriptionUpdatedHandler(subRepo, mocks.NewMockTransitionScheduler(ctrl), zerolog.Nop())
	_, err := h.Process(context.Background(), updatedEvent(`{"id":"sub_abc","status":"active"}`))
	assert.Error(t, err)
}

func TestSubscriptionDeletedHandler_CancelsAndDisarms(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	subRepo := mocks.NewMockSubscriptionRepository(ctrl)
	scheduler := mocks.NewMockTransitionScheduler(ctrl)
	sub := activeSubscription()

	subRepo.EXPECT().GetByGatewayID(gomock.Any(), "sub_abc").Return(sub, nil)
	subRepo.EXPECT().Update(gomock.Any(), sub).
		DoAndReturn(func(_ context.Context, s *domain.Subscription) error {
			assert.Equal(t, domain.SubscriptionStatusCanceled, s.Status)
			return nil
		})
	scheduler.EXPECT().Disarm(gomock.Any(), sub.ID).Return(nil)

	h := NewSubscriptionDeletedHandler(subRepo, scheduler, zerolog.Nop())
	event := updatedEvent(`{"id":"sub_abc","status":"canceled"}`)
	event.Type = domain.EventSubscriptionDeleted
	outcome, err := h.Process(context.Background(), event)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSucceeded, outcome.Status)
}

func TestSubscriptionDeletedHandler_AlreadyCanceledStillDisarms(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	subRepo := mocks.NewMockSubscriptionRepository(ctrl)
	scheduler := mocks.NewMockTransitionScheduler(ctrl)
	sub := activeSubscription()
	sub.Status = domain.SubscriptionStatusCanceled

	subRepo.EXPECT().GetByGatewayID(gomock.Any(), "sub_abc").Return(sub, nil)
	// no Update: already terminal
	scheduler.EXPECT().Disarm(gomock.Any(), sub.ID).Return(nil)

	h := NewSubscriptionDeletedHandler(subRepo, scheduler, zerolog.Nop())
	event := updatedEvent(`{"id":"sub_abc"}`)
	event.Type = domain.EventSubscriptionDeleted
	outcome, err := h.Process(context.Background(), event)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSucceeded, outcome.Status)
}

func TestAccountUpdatedHandler_MatchingAccount(t *testing.T) {
	h := NewAccountUpdatedHandler("acct_123", zerolog.Nop())
	event := updatedEvent(`{"id":"acct_123"}`)
	event.Type = domain.EventAccountUpdated

	outcome, err := h.Process(context.Background(), event)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSucceeded, outcome.Status)
	assert.Equal(t, domain.SourceAccount, outcome.SourceType)
}

func TestAccountUpdatedHandler_ForeignAccount(t *testing.T) {
	h := NewAccountUpdatedHandler("acct_123", zerolog.Nop())
	event := updatedEvent(`{"id":"acct_999"}`)
	event.Type = domain.EventAccountUpdated

	outcome, err := h.Process(context.Background(), event)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRecordNotFound, outcome.Status)
}

func TestAccountUpdatedHandler_NoConfiguredAccount(t *testing.T) {
	h := NewAccountUpdatedHandler("", zerolog.Nop())
	event := updatedEvent(`{"id":"acct_123"}`)
	event.Type = domain.EventAccountUpdated

	outcome, err := h.Process(context.Background(), event)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRecordNotFound, outcome.Status)
}

func TestInvoicePaymentFailedHandler_PutsSubscriptionOnHold(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	subRepo := mocks.NewMockSubscriptionRepository(ctrl)
	scheduler := mocks.NewMockTransitionScheduler(ctrl)
	sub := activeSubscription()

	subRepo.EXPECT().GetByGatewayID(gomock.Any(), "sub_abc").Return(sub, nil)
	subRepo.EXPECT().Update(gomock.Any(), sub).
		DoAndReturn(func(_ context.Context, s *domain.Subscription) error {
			assert.Equal(t, domain.SubscriptionStatusOnHold, s.Status)
			return nil
		})
	scheduler.EXPECT().Disarm(gomock.Any(), sub.ID).Return(nil)

	h := NewInvoicePaymentFailedHandler(subRepo, scheduler, zerolog.Nop())
	event := updatedEvent(`{"id":"in_1","subscription":"sub_abc"}`)
	event.Type = domain.EventInvoicePaymentFailed
	outcome, err := h.Process(context.Background(), event)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSucceeded, outcome.Status)
}

func TestInvoicePaymentFailedHandler_TerminalSubscriptionIsNoop(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	subRepo := mocks.NewMockSubscriptionRepository(ctrl)
	sub := activeSubscription()
	sub.Status = domain.SubscriptionStatusExpired

	subRepo.EXPECT().GetByGatewayID(gomock.Any(), "sub_abc").Return(sub, nil)

	h := NewInvoicePaymentFailedHandler(subRepo, mocks.NewMockTransitionScheduler(ctrl), zerolog.Nop())
	event := updatedEvent(`{"id":"in_1","subscription":"sub_abc"}`)
	event.Type = domain.EventInvoicePaymentFailed
	outcome, err := h.Process(context.Background(), event)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSucceeded, outcome.Status)
	assert.Contains(t, outcome.Notes, "already")
}

func TestInvoicePaymentFailedHandler_NoSubscriptionReference(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewInvoicePaymentFailedHandler(mocks.NewMockSubscriptionRepository(ctrl), mocks.NewMockTransitionScheduler(ctrl), zerolog.Nop())
	event := updatedEvent(`{"id":"in_1"}`)
	event.Type = domain.EventInvoicePaymentFailed
	outcome, err := h.Process(context.Background(), event)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusUnprocessable, outcome.Status)
}
