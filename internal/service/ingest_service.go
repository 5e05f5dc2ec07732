package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chicsouqsa-collab/Spay-sub002/internal/core/domain"
	"github.com/chicsouqsa-collab/Spay-sub002/internal/core/ports"
	"github.com/chicsouqsa-collab/Spay-sub002/pkg/apperror"
	"github.com/chicsouqsa-collab/Spay-sub002/pkg/metrics"

	"github.com/rs/zerolog"
)

// IngestServiceImpl implements ports.IngestService: decode, dedup against
// the ledger, dispatch registered handlers, persist the outcome.
type IngestServiceImpl struct {
	codec      ports.EventCodec
	registry   *HandlerRegistry
	ledgerRepo ports.LedgerRepository
	eventCache ports.EventCache
	transactor ports.DBTransactor
	metrics    *metrics.Metrics
	log        zerolog.Logger
}

// NewIngestService creates a new IngestServiceImpl.
func NewIngestService(
	codec ports.EventCodec,
	registry *HandlerRegistry,
	ledgerRepo ports.LedgerRepository,
	eventCache ports.EventCache,
	transactor ports.DBTransactor,
	m *metrics.Metrics,
	log zerolog.Logger,
) *IngestServiceImpl {
	return &IngestServiceImpl{
		codec:      codec,
		registry:   registry,
		ledgerRepo: ledgerRepo,
		eventCache: eventCache,
		transactor: transactor,
		metrics:    m,
		log:        log,
	}
}

// Ingest processes one raw webhook delivery. A nil return acknowledges the
// delivery; signature/payload failures come back as 400-mapped apperrors and
// ledger write failures as 5xx so the sender's redelivery covers them.
func (s *IngestServiceImpl) Ingest(ctx context.Context, signatureHeader string, rawBody []byte) error {
	start := time.Now()

	// 1. Decode + verify. Nothing is persisted for an unverifiable payload.
	event, err := s.codec.Decode(signatureHeader, rawBody)
	if err != nil {
		s.log.Warn().Err(err).Msg("webhook delivery rejected")
		return err
	}

	log := s.log.With().Str("event_id", event.ExternalID).Str("event_type", event.Type).Logger()

	// 2. Fast-path duplicate filter. Best-effort only: on cache error we fall
	// through to the ledger, which is authoritative.
	fresh, err := s.eventCache.MarkSeen(ctx, event.ExternalID)
	if err != nil {
		log.Warn().Err(err).Msg("event cache unavailable, falling through to ledger")
		fresh = true
	}
	if !fresh {
		return s.shortCircuitDuplicate(ctx, event, log)
	}

	// 3. Authoritative dedup: a terminal ledger row means the event was
	// already handled, even if the cache marker had lapsed.
	existing, err := s.ledgerRepo.GetByExternalID(ctx, event.ExternalID)
	if err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("ledger lookup: %w", err))
	}
	if existing != nil {
		return s.resolveDuplicate(ctx, existing, event, log)
	}

	// 4. Claim the event id with a pending row before dispatch. A concurrent
	// duplicate loses the unique-insert race here.
	record := domain.NewLedgerRecord(event, time.Now())
	if err := record.Validate(); err != nil {
		return apperror.ErrEventValidation(err.Error())
	}
	if err := s.createPending(ctx, record); err != nil {
		if errors.Is(err, ports.ErrDuplicateEvent) {
			log.Info().Msg("lost ledger insert race, event already in flight")
			s.metrics.RecordEventDuplicated(event.Type)
			return ports.ErrEventInFlight
		}
		// The event is not ledgered; drop the cache marker so the sender's
		// redelivery gets a clean retry.
		if cErr := s.eventCache.Forget(ctx, event.ExternalID); cErr != nil {
			log.Warn().Err(cErr).Msg("failed to drop cache marker after ledger failure")
		}
		return apperror.ErrDatabaseError(fmt.Errorf("create ledger record: %w", err))
	}

	// 5. Dispatch and resolve. Handler errors and panics resolve the ledger
	// row as failed; they never bubble into the HTTP response.
	return s.dispatchAndResolve(ctx, event, record, start, log)
}

// dispatchAndResolve runs the registered handlers and writes the terminal
// outcome onto an already-claimed ledger row.
func (s *IngestServiceImpl) dispatchAndResolve(ctx context.Context, event *domain.InboundEvent, record *domain.LedgerRecord, start time.Time, log zerolog.Logger) error {
	outcome := s.dispatch(ctx, event, log)

	record.SourceID = outcome.SourceID
	if outcome.SourceType != "" {
		record.SourceType = outcome.SourceType
	}
	if outcome.Notes != "" {
		notes := outcome.Notes
		record.Notes = &notes
	}
	record.Resolve(outcome.Status, time.Now())

	if err := s.updateRecord(ctx, record); err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("resolve ledger record: %w", err))
	}

	s.metrics.RecordEventIngested(event.Type, string(outcome.Status), time.Since(start))
	log.Info().
		Str("status", string(outcome.Status)).
		Dur("duration", time.Since(start)).
		Msg("event ingested")
	return nil
}

// shortCircuitDuplicate handles a cache-filtered redelivery. The ledger is
// still consulted: a marker without a ledger row (crash between mark and
// insert) must not wedge the event forever.
func (s *IngestServiceImpl) shortCircuitDuplicate(ctx context.Context, event *domain.InboundEvent, log zerolog.Logger) error {
	existing, err := s.ledgerRepo.GetByExternalID(ctx, event.ExternalID)
	if err != nil {
		return apperror.ErrDatabaseError(fmt.Errorf("ledger lookup: %w", err))
	}
	if existing == nil {
		// Stale marker with no ledger row behind it. Drop it and tell the
		// sender to retry; the next delivery takes the normal path.
		if cErr := s.eventCache.Forget(ctx, event.ExternalID); cErr != nil {
			log.Warn().Err(cErr).Msg("failed to drop stale cache marker")
		}
		return apperror.ErrDatabaseError(errors.New("cache marker without ledger row"))
	}
	return s.resolveDuplicate(ctx, existing, event, log)
}

// stalePendingAfter is how long a pending ledger row may sit before a
// redelivery is allowed to take it over. A row older than this means the
// delivery that claimed it never resolved it (crashed, or its terminal
// update failed); without a takeover it would wedge at pending forever.
const stalePendingAfter = 10 * time.Minute

// resolveDuplicate acknowledges a redelivery whose ledger row already
// exists. Terminal rows ack outright; a recently-claimed pending row means
// another delivery is mid-flight; a stale pending row is taken over and
// resolved by this delivery.
func (s *IngestServiceImpl) resolveDuplicate(ctx context.Context, existing *domain.LedgerRecord, event *domain.InboundEvent, log zerolog.Logger) error {
	s.metrics.RecordEventDuplicated(event.Type)
	if existing.RequestStatus.IsTerminal() {
		log.Info().Str("status", string(existing.RequestStatus)).Msg("duplicate delivery acknowledged")
		return nil
	}
	if time.Since(existing.CreatedAtUTC) >= stalePendingAfter {
		log.Warn().Time("claimed_at", existing.CreatedAtUTC).Msg("pending ledger row went stale, taking over resolution")
		return s.dispatchAndResolve(ctx, event, existing, time.Now(), log)
	}
	log.Info().Msg("event already being processed")
	return ports.ErrEventInFlight
}

// dispatch runs the registered handlers in order and folds their results
// into one outcome. The first non-succeeded result wins; a panic or error
// from any handler resolves the event as failed.
func (s *IngestServiceImpl) dispatch(ctx context.Context, event *domain.InboundEvent, log zerolog.Logger) ports.EventOutcome {
	handlers := s.registry.HandlersFor(event.Type)
	if len(handlers) == 0 {
		log.Info().Msg("no handler registered for event type")
		return ports.EventOutcome{
			Status: domain.StatusUnprocessable,
			Notes:  "no handler registered for event type",
		}
	}

	outcome := ports.EventOutcome{Status: domain.StatusSucceeded}
	for _, h := range handlers {
		result, err := s.safeProcess(ctx, h, event)
		if err != nil {
			log.Error().Err(err).Msg("event handler failed")
			return ports.EventOutcome{
				Status:     domain.StatusFailed,
				SourceID:   result.SourceID,
				SourceType: result.SourceType,
				Notes:      err.Error(),
			}
		}
		outcome = result
		if result.Status != domain.StatusSucceeded {
			break
		}
	}
	return outcome
}

// safeProcess invokes one handler, converting a panic into an error so one
// handler's bug cannot take down the HTTP response or leave the ledger row
// pending forever.
func (s *IngestServiceImpl) safeProcess(ctx context.Context, h ports.EventHandler, event *domain.InboundEvent) (outcome ports.EventOutcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return h.Process(ctx, event)
}

func (s *IngestServiceImpl) createPending(ctx context.Context, record *domain.LedgerRecord) error {
	tx, err := s.transactor.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if err := s.ledgerRepo.Create(ctx, tx, record); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *IngestServiceImpl) updateRecord(ctx context.Context, record *domain.LedgerRecord) error {
	tx, err := s.transactor.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if err := s.ledgerRepo.Update(ctx, tx, record); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
