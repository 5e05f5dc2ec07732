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

func TestJobRepo_ScheduleOnce(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewJobRepo(mock)
	now := time.Now().UTC().Truncate(time.Microsecond)
	job := domain.NewTransitionJob(domain.HookCancelSubscription, uuid.New(), now.Add(time.Hour), now)

	mock.ExpectExec("INSERT INTO scheduled_jobs").
		WithArgs(job.ID, job.Hook, job.SubscriptionID, job.Attempt,
			job.FireAt, job.GroupKey, job.LockedUntil, job.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	scheduled, err := repo.ScheduleOnce(context.Background(), job)
	require.NoError(t, err)
	assert.True(t, scheduled)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobRepo_ScheduleOnce_AlreadyPending(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewJobRepo(mock)
	now := time.Now().UTC().Truncate(time.Microsecond)
	job := domain.NewTransitionJob(domain.HookCancelSubscription, uuid.New(), now.Add(time.Hour), now)

	// ON CONFLICT DO NOTHING reports zero rows affected for the losing insert.
	mock.ExpectExec("INSERT INTO scheduled_jobs").
		WithArgs(job.ID, job.Hook, job.SubscriptionID, job.Attempt,
			job.FireAt, job.GroupKey, job.LockedUntil, job.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))

	scheduled, err := repo.ScheduleOnce(context.Background(), job)
	require.NoError(t, err)
	assert.False(t, scheduled)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobRepo_UnscheduleAll(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewJobRepo(mock)
	groupKey := uuid.New().String()

	mock.ExpectExec("DELETE FROM scheduled_jobs WHERE hook").
		WithArgs(domain.HookPauseSubscription, groupKey).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err = repo.UnscheduleAll(context.Background(), domain.HookPauseSubscription, groupKey)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobRepo_HasScheduled(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewJobRepo(mock)
	groupKey := uuid.New().String()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(domain.HookCancelSubscription, groupKey).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.HasScheduled(context.Background(), domain.HookCancelSubscription, groupKey)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobRepo_ClaimDue(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewJobRepo(mock)
	now := time.Now().UTC().Truncate(time.Microsecond)
	job := domain.NewTransitionJob(domain.HookCancelSubscription, uuid.New(), now.Add(-time.Minute), now)
	lockedUntil := now.Add(30 * time.Second)

	mock.ExpectQuery("UPDATE scheduled_jobs SET locked_until").
		WithArgs(lockedUntil, now, 10).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "hook", "subscription_id", "attempt", "fire_at", "group_key", "locked_until", "created_at",
		}).AddRow(job.ID, job.Hook, job.SubscriptionID, job.Attempt,
			job.FireAt, job.GroupKey, &lockedUntil, job.CreatedAt))

	jobs, err := repo.ClaimDue(context.Background(), now, 10, 30*time.Second)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, job.ID, jobs[0].ID)
	assert.Equal(t, 1, jobs[0].Attempt)
	require.NotNil(t, jobs[0].LockedUntil)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobRepo_ClaimDue_Empty(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewJobRepo(mock)
	now := time.Now().UTC().Truncate(time.Microsecond)

	mock.ExpectQuery("UPDATE scheduled_jobs SET locked_until").
		WithArgs(now.Add(30*time.Second), now, 10).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "hook", "subscription_id", "attempt", "fire_at", "group_key", "locked_until", "created_at",
		}))

	jobs, err := repo.ClaimDue(context.Background(), now, 10, 30*time.Second)
	require.NoError(t, err)
	assert.Empty(t, jobs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobRepo_Delete(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewJobRepo(mock)
	id := uuid.New()

	mock.ExpectExec("DELETE FROM scheduled_jobs WHERE id").
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err = repo.Delete(context.Background(), id)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobRepo_ListPending(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewJobRepo(mock)
	now := time.Now().UTC().Truncate(time.Microsecond)
	job := domain.NewTransitionJob(domain.HookPauseSubscription, uuid.New(), now.Add(time.Hour), now)

	mock.ExpectQuery("SELECT .+ FROM scheduled_jobs ORDER BY fire_at").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "hook", "subscription_id", "attempt", "fire_at", "group_key", "locked_until", "created_at",
		}).AddRow(job.ID, job.Hook, job.SubscriptionID, job.Attempt,
			job.FireAt, job.GroupKey, job.LockedUntil, job.CreatedAt))

	jobs, err := repo.ListPending(context.Background())
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, domain.HookPauseSubscription, jobs[0].Hook)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobRepo_Reschedule(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewJobRepo(mock)
	id := uuid.New()
	fireAt := time.Now().UTC().Add(5 * time.Minute).Truncate(time.Microsecond)

	mock.ExpectExec("UPDATE scheduled_jobs SET attempt").
		WithArgs(id, 2, fireAt).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	ok, err := repo.Reschedule(context.Background(), id, 2, fireAt)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobRepo_Reschedule_RowAlreadyUnscheduled(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewJobRepo(mock)
	id := uuid.New()
	fireAt := time.Now().UTC().Add(5 * time.Minute).Truncate(time.Microsecond)

	// A concurrent disarm deleted the row; the update touches nothing and
	// the retry must be abandoned rather than re-inserted.
	mock.ExpectExec("UPDATE scheduled_jobs SET attempt").
		WithArgs(id, 2, fireAt).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	ok, err := repo.Reschedule(context.Background(), id, 2, fireAt)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}
