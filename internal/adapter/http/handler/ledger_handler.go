package handler

import (
	"time"

	"github.com/chicsouqsa-collab/Spay-sub002/internal/adapter/http/dto"
	"github.com/chicsouqsa-collab/Spay-sub002/internal/core/domain"
	"github.com/chicsouqsa-collab/Spay-sub002/internal/core/ports"
	"github.com/chicsouqsa-collab/Spay-sub002/pkg/apperror"
	"github.com/chicsouqsa-collab/Spay-sub002/pkg/response"

	"github.com/gin-gonic/gin"
)

// LedgerHandler exposes the event ledger and the pending job queue
// read-only for operators.
type LedgerHandler struct {
	ledgerRepo ports.LedgerRepository
	jobQueue   ports.JobQueue
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerRepo ports.LedgerRepository, jobQueue ports.JobQueue) *LedgerHandler {
	return &LedgerHandler{ledgerRepo: ledgerRepo, jobQueue: jobQueue}
}

// ListEvents handles GET /api/v1/ops/events.
func (h *LedgerHandler) ListEvents(c *gin.Context) {
	var q dto.LedgerListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	params := ports.LedgerListParams{
		Page:     q.Page,
		PageSize: q.PageSize,
	}
	if q.Status != "" {
		status := domain.RequestStatus(q.Status)
		params.Status = &status
	}
	if q.EventType != "" {
		params.EventType = &q.EventType
	}
	if q.From != "" {
		from, err := time.Parse(time.RFC3339, q.From)
		if err != nil {
			response.Error(c, apperror.Validation("from must be RFC3339"))
			return
		}
		params.From = &from
	}
	if q.To != "" {
		to, err := time.Parse(time.RFC3339, q.To)
		if err != nil {
			response.Error(c, apperror.Validation("to must be RFC3339"))
			return
		}
		params.To = &to
	}

	records, total, err := h.ledgerRepo.List(c.Request.Context(), params)
	if err != nil {
		response.Error(c, apperror.ErrDatabaseError(err))
		return
	}

	entries := make([]dto.LedgerEntryResponse, 0, len(records))
	for i := range records {
		entries = append(entries, toLedgerEntry(&records[i]))
	}

	response.OK(c, dto.LedgerListResponse{
		Entries:  entries,
		Total:    total,
		Page:     q.Page,
		PageSize: q.PageSize,
	})
}

// GetEvent handles GET /api/v1/ops/events/:external_id.
func (h *LedgerHandler) GetEvent(c *gin.Context) {
	externalID := c.Param("external_id")

	record, err := h.ledgerRepo.GetByExternalID(c.Request.Context(), externalID)
	if err != nil {
		response.Error(c, apperror.ErrDatabaseError(err))
		return
	}
	if record == nil {
		response.Error(c, apperror.New("EVT_003", "No ledger entry for event", 404))
		return
	}

	response.OK(c, toLedgerEntry(record))
}

// ListJobs handles GET /api/v1/ops/jobs.
func (h *LedgerHandler) ListJobs(c *gin.Context) {
	jobs, err := h.jobQueue.ListPending(c.Request.Context())
	if err != nil {
		response.Error(c, apperror.ErrDatabaseError(err))
		return
	}

	out := make([]dto.JobResponse, 0, len(jobs))
	for _, job := range jobs {
		j := dto.JobResponse{
			ID:             job.ID.String(),
			Hook:           string(job.Hook),
			SubscriptionID: job.SubscriptionID.String(),
			Attempt:        job.Attempt,
			FireAt:         job.FireAt.UTC().Format(time.RFC3339),
			CreatedAt:      job.CreatedAt.UTC().Format(time.RFC3339),
		}
		if job.LockedUntil != nil {
			locked := job.LockedUntil.UTC().Format(time.RFC3339)
			j.LockedUntil = &locked
		}
		out = append(out, j)
	}

	response.OK(c, dto.JobListResponse{Jobs: out})
}

func toLedgerEntry(r *domain.LedgerRecord) dto.LedgerEntryResponse {
	entry := dto.LedgerEntryResponse{
		ID:              r.ID.String(),
		ExternalEventID: r.ExternalEventID,
		EventType:       r.EventType,
		Mode:            string(r.Mode),
		SourceID:        r.SourceID,
		SourceType:      string(r.SourceType),
		RequestStatus:   string(r.RequestStatus),
		Notes:           r.Notes,
		CreatedAt:       r.CreatedAtUTC.Format(time.RFC3339),
	}
	if r.RespondedAtUTC != nil {
		responded := r.RespondedAtUTC.Format(time.RFC3339)
		entry.RespondedAt = &responded
	}
	return entry
}
