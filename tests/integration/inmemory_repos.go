package integration

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/chicsouqsa-collab/Spay-sub002/internal/core/domain"
	"github.com/chicsouqsa-collab/Spay-sub002/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// --- In-Memory Ledger Repository ---

type inMemoryLedgerRepo struct {
	mu      sync.Mutex
	records map[string]*domain.LedgerRecord // keyed by external event id
}

func newInMemoryLedgerRepo() *inMemoryLedgerRepo {
	return &inMemoryLedgerRepo{records: make(map[string]*domain.LedgerRecord)}
}

func (r *inMemoryLedgerRepo) Create(ctx context.Context, tx pgx.Tx, rec *domain.LedgerRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.records[rec.ExternalEventID]; exists {
		return ports.ErrDuplicateEvent
	}
	cp := *rec
	r.records[rec.ExternalEventID] = &cp
	return nil
}

func (r *inMemoryLedgerRepo) Update(ctx context.Context, tx pgx.Tx, rec *domain.LedgerRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *rec
	r.records[rec.ExternalEventID] = &cp
	return nil
}

func (r *inMemoryLedgerRepo) GetByExternalID(ctx context.Context, externalID string) (*domain.LedgerRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[externalID]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (r *inMemoryLedgerRepo) List(ctx context.Context, params ports.LedgerListParams) ([]domain.LedgerRecord, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var all []domain.LedgerRecord
	for _, rec := range r.records {
		if params.Status != nil && rec.RequestStatus != *params.Status {
			continue
		}
		if params.EventType != nil && rec.EventType != *params.EventType {
			continue
		}
		if params.From != nil && rec.CreatedAtUTC.Before(*params.From) {
			continue
		}
		if params.To != nil && rec.CreatedAtUTC.After(*params.To) {
			continue
		}
		all = append(all, *rec)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAtUTC.After(all[j].CreatedAtUTC) })

	total := int64(len(all))
	page, size := params.Page, params.PageSize
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 50
	}
	start := (page - 1) * size
	if start >= len(all) {
		return nil, total, nil
	}
	end := start + size
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

// --- In-Memory Subscription Repository ---

type inMemorySubscriptionRepo struct {
	mu   sync.Mutex
	byID map[uuid.UUID]*domain.Subscription
}

func newInMemorySubscriptionRepo() *inMemorySubscriptionRepo {
	return &inMemorySubscriptionRepo{byID: make(map[uuid.UUID]*domain.Subscription)}
}

func (r *inMemorySubscriptionRepo) Create(ctx context.Context, sub *domain.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *sub
	r.byID[sub.ID] = &cp
	return nil
}

func (r *inMemorySubscriptionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sub, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *sub
	return &cp, nil
}

func (r *inMemorySubscriptionRepo) GetByGatewayID(ctx context.Context, gatewayID string) (*domain.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, sub := range r.byID {
		if sub.GatewayID == gatewayID {
			cp := *sub
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *inMemorySubscriptionRepo) Update(ctx context.Context, sub *domain.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *sub
	r.byID[sub.ID] = &cp
	return nil
}

// --- In-Memory Job Queue ---

type inMemoryJobQueue struct {
	mu   sync.Mutex
	jobs map[string]*domain.TransitionJob // keyed by hook+group
}

func newInMemoryJobQueue() *inMemoryJobQueue {
	return &inMemoryJobQueue{jobs: make(map[string]*domain.TransitionJob)}
}

func jobKey(hook domain.TransitionHook, groupKey string) string {
	return string(hook) + "|" + groupKey
}

func (q *inMemoryJobQueue) ScheduleOnce(ctx context.Context, job *domain.TransitionJob) (bool, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	key := jobKey(job.Hook, job.GroupKey)
	if _, exists := q.jobs[key]; exists {
		return false, nil
	}
	cp := *job
	q.jobs[key] = &cp
	return true, nil
}

func (q *inMemoryJobQueue) UnscheduleAll(ctx context.Context, hook domain.TransitionHook, groupKey string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	delete(q.jobs, jobKey(hook, groupKey))
	return nil
}

func (q *inMemoryJobQueue) HasScheduled(ctx context.Context, hook domain.TransitionHook, groupKey string) (bool, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	_, exists := q.jobs[jobKey(hook, groupKey)]
	return exists, nil
}

func (q *inMemoryJobQueue) Reschedule(ctx context.Context, id uuid.UUID, attempt int, fireAt time.Time) (bool, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, job := range q.jobs {
		if job.ID == id {
			job.Attempt = attempt
			job.FireAt = fireAt
			job.LockedUntil = nil
			return true, nil
		}
	}
	return false, nil
}

func (q *inMemoryJobQueue) ClaimDue(ctx context.Context, now time.Time, limit int, lockFor time.Duration) ([]domain.TransitionJob, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	var claimed []domain.TransitionJob
	for _, job := range q.jobs {
		if len(claimed) >= limit {
			break
		}
		if job.FireAt.After(now) {
			continue
		}
		if job.LockedUntil != nil && job.LockedUntil.After(now) {
			continue
		}
		until := now.Add(lockFor)
		job.LockedUntil = &until
		claimed = append(claimed, *job)
	}
	return claimed, nil
}

func (q *inMemoryJobQueue) Delete(ctx context.Context, id uuid.UUID) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	for key, job := range q.jobs {
		if job.ID == id {
			delete(q.jobs, key)
			return nil
		}
	}
	return nil
}

func (q *inMemoryJobQueue) ListPending(ctx context.Context) ([]domain.TransitionJob, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	var out []domain.TransitionJob
	for _, job := range q.jobs {
		out = append(out, *job)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FireAt.Before(out[j].FireAt) })
	return out, nil
}

// --- In-Memory Event Cache ---

type inMemoryEventCache struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

func newInMemoryEventCache() *inMemoryEventCache {
	return &inMemoryEventCache{seen: make(map[string]struct{})}
}

func (c *inMemoryEventCache) MarkSeen(ctx context.Context, externalEventID string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.seen[externalEventID]; exists {
		return false, nil
	}
	c.seen[externalEventID] = struct{}{}
	return true, nil
}

func (c *inMemoryEventCache) Forget(ctx context.Context, externalEventID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.seen, externalEventID)
	return nil
}

// --- Fake Gateway Client ---

// fakeGatewayClient records gateway calls and fails a configurable number
// of times before succeeding, for exercising the retry policy.
type fakeGatewayClient struct {
	mu           sync.Mutex
	failuresLeft int
	missing      map[string]bool
	cancels      []string
	pauses       []string
	schedules    []string
}

func newFakeGatewayClient() *fakeGatewayClient {
	return &fakeGatewayClient{missing: make(map[string]bool)}
}

func (g *fakeGatewayClient) call(kind, gatewayID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.missing[gatewayID] {
		return ports.ErrGatewayResourceMissing
	}
	if g.failuresLeft > 0 {
		g.failuresLeft--
		return &gatewayDownError{}
	}
	switch kind {
	case "cancel":
		g.cancels = append(g.cancels, gatewayID)
	case "pause":
		g.pauses = append(g.pauses, gatewayID)
	case "schedule":
		g.schedules = append(g.schedules, gatewayID)
	}
	return nil
}

func (g *fakeGatewayClient) CancelSubscription(ctx context.Context, gatewayID string) error {
	return g.call("cancel", gatewayID)
}

func (g *fakeGatewayClient) PauseSubscription(ctx context.Context, gatewayID string, resumeAt *time.Time) error {
	return g.call("pause", gatewayID)
}

func (g *fakeGatewayClient) CancelSchedule(ctx context.Context, gatewayID string) error {
	return g.call("schedule", gatewayID)
}

func (g *fakeGatewayClient) cancelCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.cancels)
}

type gatewayDownError struct{}

func (e *gatewayDownError) Error() string { return "gateway unavailable" }

// --- In-Memory Transactor (no-op tx) ---

type inMemoryTransactor struct{}

func newInMemoryTransactor() *inMemoryTransactor {
	return &inMemoryTransactor{}
}

func (t *inMemoryTransactor) Begin(ctx context.Context) (pgx.Tx, error) {
	return &noopTx{}, nil
}

// noopTx is a no-op pgx.Tx implementation for in-memory testing.
type noopTx struct{}

func (t *noopTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *noopTx) Commit(ctx context.Context) error          { return nil }
func (t *noopTx) Rollback(ctx context.Context) error        { return nil }
func (t *noopTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *noopTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *noopTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *noopTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *noopTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag(""), nil
}
func (t *noopTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *noopTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}
func (t *noopTx) Conn() *pgx.Conn { return nil }
