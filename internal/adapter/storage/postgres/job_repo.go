package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/chicsouqsa-collab/Spay-sub002/internal/core/domain"

	"github.com/google/uuid"
)

// JobRepo implements ports.JobQueue on a scheduled_jobs table. The table
// carries a unique index on (hook, group_key), which is what enforces the
// one-pending-job-per-subscription invariant under concurrent schedulers.
type JobRepo struct {
	pool Pool
}

// NewJobRepo creates a new JobRepo.
func NewJobRepo(pool Pool) *JobRepo {
	return &JobRepo{pool: pool}
}

// ScheduleOnce enqueues a job unless one already exists for the same
// (hook, group_key). Returns false when the insert was a no-op.
func (r *JobRepo) ScheduleOnce(ctx context.Context, job *domain.TransitionJob) (bool, error) {
	query := `INSERT INTO scheduled_jobs (id, hook, subscription_id, attempt, fire_at, group_key, locked_until, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (hook, group_key) DO NOTHING`

	tag, err := r.pool.Exec(ctx, query,
		job.ID, job.Hook, job.SubscriptionID, job.Attempt,
		job.FireAt, job.GroupKey, job.LockedUntil, job.CreatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("schedule job: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// UnscheduleAll removes every pending job for the hook and group.
func (r *JobRepo) UnscheduleAll(ctx context.Context, hook domain.TransitionHook, groupKey string) error {
	query := `DELETE FROM scheduled_jobs WHERE hook = $1 AND group_key = $2`

	_, err := r.pool.Exec(ctx, query, hook, groupKey)
	if err != nil {
		return fmt.Errorf("unschedule jobs: %w", err)
	}
	return nil
}

// HasScheduled reports whether a pending job exists for the hook and group.
func (r *JobRepo) HasScheduled(ctx context.Context, hook domain.TransitionHook, groupKey string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM scheduled_jobs WHERE hook = $1 AND group_key = $2)`

	var exists bool
	err := r.pool.QueryRow(ctx, query, hook, groupKey).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check scheduled job: %w", err)
	}
	return exists, nil
}

// Reschedule advances a failed job to its next attempt by mutating the
// existing row. A single UPDATE keeps the retry atomic with respect to a
// concurrent UnscheduleAll; a delete-then-insert would let a disarm land in
// the gap and be silently overridden. Zero rows affected means a disarm
// already removed the job.
func (r *JobRepo) Reschedule(ctx context.Context, id uuid.UUID, attempt int, fireAt time.Time) (bool, error) {
	query := `UPDATE scheduled_jobs SET attempt = $2, fire_at = $3, locked_until = NULL WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id, attempt, fireAt)
	if err != nil {
		return false, fmt.Errorf("reschedule job: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ClaimDue locks and returns up to limit jobs whose fire_at has passed.
// SKIP LOCKED keeps concurrent workers from claiming the same rows; the
// locked_until stamp keeps a crashed worker's claim from sticking forever.
func (r *JobRepo) ClaimDue(ctx context.Context, now time.Time, limit int, lockFor time.Duration) ([]domain.TransitionJob, error) {
	query := `UPDATE scheduled_jobs SET locked_until = $1
		WHERE id IN (
			SELECT id FROM scheduled_jobs
			WHERE fire_at <= $2 AND (locked_until IS NULL OR locked_until <= $2)
			ORDER BY fire_at
			LIMIT $3
			FOR UPDATE SKIP LOCKED
		)
		RETURNING id, hook, subscription_id, attempt, fire_at, group_key, locked_until, created_at`

	rows, err := r.pool.Query(ctx, query, now.Add(lockFor), now, limit)
	if err != nil {
		return nil, fmt.Errorf("claim due jobs: %w", err)
	}
	defer rows.Close()

	var jobs []domain.TransitionJob
	for rows.Next() {
		j := domain.TransitionJob{}
		err := rows.Scan(
			&j.ID, &j.Hook, &j.SubscriptionID, &j.Attempt,
			&j.FireAt, &j.GroupKey, &j.LockedUntil, &j.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan claimed job: %w", err)
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate claimed jobs: %w", err)
	}
	return jobs, nil
}

// Delete removes a job after it completed or was superseded.
func (r *JobRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM scheduled_jobs WHERE id = $1`

	_, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	return nil
}

// ListPending fetches every pending job ordered by fire time.
func (r *JobRepo) ListPending(ctx context.Context) ([]domain.TransitionJob, error) {
	query := `SELECT id, hook, subscription_id, attempt, fire_at, group_key, locked_until, created_at
		FROM scheduled_jobs ORDER BY fire_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list pending jobs: %w", err)
	}
	defer rows.Close()

	var jobs []domain.TransitionJob
	for rows.Next() {
		j := domain.TransitionJob{}
		err := rows.Scan(
			&j.ID, &j.Hook, &j.SubscriptionID, &j.Attempt,
			&j.FireAt, &j.GroupKey, &j.LockedUntil, &j.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan pending job: %w", err)
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pending jobs: %w", err)
	}
	return jobs, nil
}
