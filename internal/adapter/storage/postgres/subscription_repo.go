package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/chicsouqsa-collab/Spay-sub002/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// SubscriptionRepo implements ports.SubscriptionRepository.
type SubscriptionRepo struct {
	pool Pool
}

// NewSubscriptionRepo creates a new SubscriptionRepo.
func NewSubscriptionRepo(pool Pool) *SubscriptionRepo {
	return &SubscriptionRepo{pool: pool}
}

// Create inserts a new subscription into the database.
func (r *SubscriptionRepo) Create(ctx context.Context, s *domain.Subscription) error {
	query := `INSERT INTO subscriptions (id, gateway_id, status, mode, is_schedule_type, expires_at, next_billing_at, resumes_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.pool.Exec(ctx, query,
		s.ID, s.GatewayID, s.Status, s.Mode, s.IsScheduleType,
		s.ExpiresAt, s.NextBillingAt, s.ResumesAt,
		s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert subscription: %w", err)
	}
	return nil
}

// GetByID fetches a subscription by its UUID.
func (r *SubscriptionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Subscription, error) {
	query := `SELECT id, gateway_id, status, mode, is_schedule_type, expires_at, next_billing_at, resumes_at, created_at, updated_at
		FROM subscriptions WHERE id = $1`

	return r.scanSubscription(r.pool.QueryRow(ctx, query, id))
}

// GetByGatewayID fetches a subscription by its gateway-side identifier.
func (r *SubscriptionRepo) GetByGatewayID(ctx context.Context, gatewayID string) (*domain.Subscription, error) {
	query := `SELECT id, gateway_id, status, mode, is_schedule_type, expires_at, next_billing_at, resumes_at, created_at, updated_at
		FROM subscriptions WHERE gateway_id = $1`

	return r.scanSubscription(r.pool.QueryRow(ctx, query, gatewayID))
}

// Update updates a subscription record.
func (r *SubscriptionRepo) Update(ctx context.Context, s *domain.Subscription) error {
	query := `UPDATE subscriptions
		SET status=$1, expires_at=$2, next_billing_at=$3, resumes_at=$4, updated_at=NOW()
		WHERE id=$5`

	tag, err := r.pool.Exec(ctx, query,
		s.Status, s.ExpiresAt, s.NextBillingAt, s.ResumesAt, s.ID,
	)
	if err != nil {
		return fmt.Errorf("update subscription: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("subscription not found: %s", s.ID)
	}
	return nil
}

// scanSubscription is a helper to scan a single row into a Subscription.
func (r *SubscriptionRepo) scanSubscription(row pgx.Row) (*domain.Subscription, error) {
	s := &domain.Subscription{}
	err := row.Scan(
		&s.ID, &s.GatewayID, &s.Status, &s.Mode, &s.IsScheduleType,
		&s.ExpiresAt, &s.NextBillingAt, &s.ResumesAt,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan subscription: %w", err)
	}
	return s, nil
}
