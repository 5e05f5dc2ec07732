package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/chicsouqsa-collab/Spay-sub002/internal/core/domain"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSubscription() *domain.Subscription {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.Subscription{
		ID:        uuid.New(),
		GatewayID: "sub_abc123",
		Status:    domain.SubscriptionStatusActive,
		Mode:      domain.ModeTest,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestSubscriptionRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSubscriptionRepo(mock)
	sub := testSubscription()

	mock.ExpectExec("INSERT INTO subscriptions").
		WithArgs(sub.ID, sub.GatewayID, sub.Status, sub.Mode, sub.IsScheduleType,
			sub.ExpiresAt, sub.NextBillingAt, sub.ResumesAt, sub.CreatedAt, sub.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.Create(context.Background(), sub)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscriptionRepo_GetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSubscriptionRepo(mock)
	sub := testSubscription()

	mock.ExpectQuery("SELECT .+ FROM subscriptions WHERE id").
		WithArgs(sub.ID).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "gateway_id", "status", "mode", "is_schedule_type",
			"expires_at", "next_billing_at", "resumes_at", "created_at", "updated_at",
		}).AddRow(sub.ID, sub.GatewayID, sub.Status, sub.Mode, sub.IsScheduleType,
			sub.ExpiresAt, sub.NextBillingAt, sub.ResumesAt, sub.CreatedAt, sub.UpdatedAt))

	result, err := repo.GetByID(context.Background(), sub.ID)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, sub.GatewayID, result.GatewayID)
	assert.Equal(t, domain.SubscriptionStatusActive, result.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscriptionRepo_GetByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSubscriptionRepo(mock)
	id := uuid.New()

	mock.ExpectQuery("SELECT .+ FROM subscriptions WHERE id").
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "gateway_id", "status", "mode", "is_schedule_type",
			"expires_at", "next_billing_at", "resumes_at", "created_at", "updated_at",
		}))

	result, err := repo.GetByID(context.Background(), id)
	assert.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscriptionRepo_GetByGatewayID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSubscriptionRepo(mock)
	sub := testSubscription()

	mock.ExpectQuery("SELECT .+ FROM subscriptions WHERE gateway_id").
		WithArgs("sub_abc123").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "gateway_id", "status", "mode", "is_schedule_type",
			"expires_at", "next_billing_at", "resumes_at", "created_at", "updated_at",
		}).AddRow(sub.ID, sub.GatewayID, sub.Status, sub.Mode, sub.IsScheduleType,
			sub.ExpiresAt, sub.NextBillingAt, sub.ResumesAt, sub.CreatedAt, sub.UpdatedAt))

	result, err := repo.GetByGatewayID(context.Background(), "sub_abc123")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, sub.ID, result.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscriptionRepo_Update(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSubscriptionRepo(mock)
	sub := testSubscription()
	sub.MarkCanceled(time.Now())

	mock.ExpectExec("UPDATE subscriptions").
		WithArgs(sub.Status, sub.ExpiresAt, sub.NextBillingAt, sub.ResumesAt, sub.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err = repo.Update(context.Background(), sub)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscriptionRepo_Update_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSubscriptionRepo(mock)
	sub := testSubscription()

	mock.ExpectExec("UPDATE subscriptions").
		WithArgs(sub.Status, sub.ExpiresAt, sub.NextBillingAt, sub.ResumesAt, sub.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err = repo.Update(context.Background(), sub)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
