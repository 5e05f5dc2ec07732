package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/chicsouqsa-collab/Spay-sub002/internal/core/domain"
	"github.com/chicsouqsa-collab/Spay-sub002/internal/core/ports"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// LedgerRepo implements ports.LedgerRepository.
type LedgerRepo struct {
	pool Pool
}

// NewLedgerRepo creates a new LedgerRepo.
func NewLedgerRepo(pool Pool) *LedgerRepo {
	return &LedgerRepo{pool: pool}
}

// Create inserts a ledger record within a database transaction. A unique
// violation on external_event_id surfaces as ports.ErrDuplicateEvent so the
// pipeline can short-circuit the duplicate delivery.
func (r *LedgerRepo) Create(ctx context.Context, tx pgx.Tx, rec *domain.LedgerRecord) error {
	query := `INSERT INTO subscription_events (id, external_event_id, event_type, mode, source_id, source_type,
		request_status, notes, created_at_local, created_at_utc, responded_at_local, responded_at_utc)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := tx.Exec(ctx, query,
		rec.ID, rec.ExternalEventID, rec.EventType, rec.Mode,
		rec.SourceID, rec.SourceType, rec.RequestStatus, rec.Notes,
		rec.CreatedAtLocal, rec.CreatedAtUTC, rec.RespondedAtLocal, rec.RespondedAtUTC,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ports.ErrDuplicateEvent
		}
		return fmt.Errorf("insert ledger record: %w", err)
	}
	return nil
}

// Update resolves a ledger record within a database transaction.
func (r *LedgerRepo) Update(ctx context.Context, tx pgx.Tx, rec *domain.LedgerRecord) error {
	query := `UPDATE subscription_events
		SET source_id=$1, source_type=$2, request_status=$3, notes=$4, responded_at_local=$5, responded_at_utc=$6
		WHERE id=$7`

	tag, err := tx.Exec(ctx, query,
		rec.SourceID, rec.SourceType, rec.RequestStatus, rec.Notes,
		rec.RespondedAtLocal, rec.RespondedAtUTC, rec.ID,
	)
	if err != nil {
		return fmt.Errorf("update ledger record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("ledger record not found: %s", rec.ID)
	}
	return nil
}

// GetByExternalID fetches a ledger record by the gateway's event id.
func (r *LedgerRepo) GetByExternalID(ctx context.Context, externalID string) (*domain.LedgerRecord, error) {
	query := `SELECT id, external_event_id, event_type, mode, source_id, source_type,
		request_status, notes, created_at_local, created_at_utc, responded_at_local, responded_at_utc
		FROM subscription_events WHERE external_event_id = $1`

	return r.scanRecord(r.pool.QueryRow(ctx, query, externalID))
}

// List fetches ledger records with filtering and pagination.
func (r *LedgerRepo) List(ctx context.Context, params ports.LedgerListParams) ([]domain.LedgerRecord, int64, error) {
	var conditions []string
	var args []any
	argIdx := 1

	if params.Status != nil {
		conditions = append(conditions, fmt.Sprintf("request_status = $%d", argIdx))
		args = append(args, *params.Status)
		argIdx++
	}
	if params.EventType != nil {
		conditions = append(conditions, fmt.Sprintf("event_type = $%d", argIdx))
		args = append(args, *params.EventType)
		argIdx++
	}
	if params.From != nil {
		conditions = append(conditions, fmt.Sprintf("created_at_utc >= $%d", argIdx))
		args = append(args, *params.From)
		argIdx++
	}
	if params.To != nil {
		conditions = append(conditions, fmt.Sprintf("created_at_utc <= $%d", argIdx))
		args = append(args, *params.To)
		argIdx++
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	// Count total
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM subscription_events %s", where)
	var total int64
	err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count ledger records: %w", err)
	}

	// Fetch page
	offset := (params.Page - 1) * params.PageSize
	dataQuery := fmt.Sprintf(`SELECT id, external_event_id, event_type, mode, source_id, source_type,
		request_status, notes, created_at_local, created_at_utc, responded_at_local, responded_at_utc
		FROM subscription_events %s ORDER BY created_at_utc DESC LIMIT $%d OFFSET $%d`, where, argIdx, argIdx+1)
	args = append(args, params.PageSize, offset)

	rows, err := r.pool.Query(ctx, dataQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list ledger records: %w", err)
	}
	defer rows.Close()

	var records []domain.LedgerRecord
	for rows.Next() {
		rec := domain.LedgerRecord{}
		err := rows.Scan(
			&rec.ID, &rec.ExternalEventID, &rec.EventType, &rec.Mode,
			&rec.SourceID, &rec.SourceType, &rec.RequestStatus, &rec.Notes,
			&rec.CreatedAtLocal, &rec.CreatedAtUTC, &rec.RespondedAtLocal, &rec.RespondedAtUTC,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan ledger row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate ledger rows: %w", err)
	}
	return records, total, nil
}

// scanRecord is a helper to scan a single row into a LedgerRecord.
func (r *LedgerRepo) scanRecord(row pgx.Row) (*domain.LedgerRecord, error) {
	rec := &domain.LedgerRecord{}
	err := row.Scan(
		&rec.ID, &rec.ExternalEventID, &rec.EventType, &rec.Mode,
		&rec.SourceID, &rec.SourceType, &rec.RequestStatus, &rec.Notes,
		&rec.CreatedAtLocal, &rec.CreatedAtUTC, &rec.RespondedAtLocal, &rec.RespondedAtUTC,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan ledger record: %w", err)
	}
	return rec, nil
}
