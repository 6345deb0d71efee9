// Package mirror keeps a local copy of projects that can be modified
// without a connection to the API.
//
// Every mutation is validated and applied to the local copy at once and
// queued. Sync replays the queue against the API in order.
package mirror

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/propnest/backend/pkg/controllers/payments"
	"github.com/propnest/backend/pkg/models"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

const (
	DefaultBaseDelay = time.Second
	DefaultMaxDelay  = 5 * time.Minute
)

// Mirror is a local copy of projects with a queue of unsynced operations.
//
// The local view of a project is the state last confirmed by the server
// with all queued operations for the project applied on top of it.
type Mirror struct {
	client *Client

	// BaseDelay is the delay before the first retry of an operation that
	// failed with a transport or server error. It doubles with every
	// further attempt up to MaxDelay.
	BaseDelay time.Duration
	MaxDelay  time.Duration

	// now is replaced in tests
	now func() time.Time

	mu        sync.Mutex
	confirmed map[string]*Project
	view      map[string]*Project
	queue     []Operation
	failed    []Failure
	ids       map[uuid.UUID]uuid.UUID // local ID → server ID

	syncMu sync.Mutex
}

// New returns an empty mirror that syncs with the API through the client.
func New(client *Client) *Mirror {
	return &Mirror{
		client:    client,
		BaseDelay: DefaultBaseDelay,
		MaxDelay:  DefaultMaxDelay,
		now:       func() time.Time { return time.Now().In(time.UTC) },
		confirmed: make(map[string]*Project),
		view:      make(map[string]*Project),
		ids:       make(map[uuid.UUID]uuid.UUID),
	}
}

// Payments returns the local payments of the project in creation order.
func (m *Mirror) Payments(projectID string) []payments.Payment {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.view[strings.TrimSpace(projectID)]
	if !ok {
		return []payments.Payment{}
	}

	return p.clone().Payments
}

// Pool returns the local pool of the project, nil if it has none.
func (m *Mirror) Pool(projectID string) *payments.Pool {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.view[strings.TrimSpace(projectID)]
	if !ok || p.Pool == nil {
		return nil
	}

	pool := *p.Pool
	return &pool
}

// Unsynced returns the operations that have not been confirmed by the server yet.
func (m *Mirror) Unsynced() []Operation {
	m.mu.Lock()
	defer m.mu.Unlock()

	return slices.Clone(m.queue)
}

// Failed returns the operations the server rejected.
func (m *Mirror) Failed() []Failure {
	m.mu.Lock()
	defer m.mu.Unlock()

	return slices.Clone(m.failed)
}

// CreatePayment records a new payment locally. The returned payment carries
// a local ID that is valid for all mirror operations, also after the payment
// has been synced.
func (m *Mirror) CreatePayment(p payments.PaymentEditable) (payments.Payment, error) {
	op := m.newOperation(KindCreatePayment, p.ProjectID)
	op.PaymentID = uuid.New()
	op.Payment = &p
	for range p.Installments {
		op.InstallmentIDs = append(op.InstallmentIDs, uuid.New())
	}

	project, err := m.enqueue(op)
	if err != nil {
		return payments.Payment{}, err
	}

	return *project.payment(op.PaymentID), nil
}

// MarkPaid marks the payment as paid locally.
func (m *Mirror) MarkPaid(projectID string, id uuid.UUID) (payments.Payment, error) {
	return m.mutatePayment(KindMarkPaid, projectID, id, uuid.Nil)
}

// MarkOverdue marks the payment as overdue locally.
func (m *Mirror) MarkOverdue(projectID string, id uuid.UUID) (payments.Payment, error) {
	return m.mutatePayment(KindMarkOverdue, projectID, id, uuid.Nil)
}

// MarkInstallmentPaid marks one installment of the payment as paid locally.
func (m *Mirror) MarkInstallmentPaid(projectID string, paymentID, installmentID uuid.UUID) (payments.Payment, error) {
	return m.mutatePayment(KindMarkInstallmentPaid, projectID, paymentID, installmentID)
}

func (m *Mirror) mutatePayment(kind OperationKind, projectID string, paymentID, installmentID uuid.UUID) (payments.Payment, error) {
	op := m.newOperation(kind, projectID)
	op.PaymentID = paymentID
	op.InstallmentID = installmentID

	project, err := m.enqueue(op)
	if err != nil {
		return payments.Payment{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	return *findPayment(project, paymentID, m.resolve), nil
}

// InitPool creates or replaces the pool of the project locally.
func (m *Mirror) InitPool(p payments.PoolInitEditable) (payments.Pool, error) {
	op := m.newOperation(KindInitPool, p.ProjectID)
	op.Pool = &p
	op.PaymentID = uuid.New()

	project, err := m.enqueue(op)
	if err != nil {
		return payments.Pool{}, err
	}

	return *project.Pool, nil
}

// Allocate debits the amount from the local pool and records the payment.
func (m *Mirror) Allocate(a payments.AllocationEditable) (payments.Pool, payments.Payment, error) {
	op := m.newOperation(KindAllocate, a.ProjectID)
	op.PaymentID = uuid.New()
	op.Allocation = &a

	project, err := m.enqueue(op)
	if err != nil {
		return payments.Pool{}, payments.Payment{}, err
	}

	return *project.Pool, *project.payment(op.PaymentID), nil
}

func (m *Mirror) newOperation(kind OperationKind, projectID string) Operation {
	return Operation{
		ID:        uuid.New(),
		Kind:      kind,
		ProjectID: strings.TrimSpace(projectID),
		QueuedAt:  m.now(),
	}
}

// enqueue applies the operation to the local view and queues it. If the
// operation cannot be applied, it is not queued. A clone of the resulting
// project view is returned.
func (m *Mirror) enqueue(op Operation) (*Project, error) {
	if op.ProjectID == "" {
		return nil, models.ErrProjectIDEmpty
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	project := m.viewOf(op.ProjectID).clone()
	if err := apply(project, op, m.resolve, op.QueuedAt); err != nil {
		return nil, err
	}

	m.view[op.ProjectID] = project
	m.queue = append(m.queue, op)

	log.Debug().Str("project", op.ProjectID).Str("operation", string(op.Kind)).Int("unsynced", len(m.queue)).Msg("mirror operation queued")
	return project.clone(), nil
}

func (m *Mirror) viewOf(projectID string) *Project {
	if p, ok := m.view[projectID]; ok {
		return p
	}

	return &Project{Payments: []payments.Payment{}}
}

// resolve returns the server ID for a local ID. IDs without a
// mapping are returned unchanged. m.mu must be held.
func (m *Mirror) resolve(id uuid.UUID) uuid.UUID {
	if server, ok := m.ids[id]; ok {
		return server
	}

	return id
}

// rebuild recomputes the view of the project from the confirmed state and
// the queued operations. Operations that do not apply anymore stay queued,
// the server decides about them. m.mu must be held.
func (m *Mirror) rebuild(projectID string) {
	project := &Project{Payments: []payments.Payment{}}
	if c, ok := m.confirmed[projectID]; ok {
		project = c.clone()
	}

	for _, op := range m.queue {
		if op.ProjectID != projectID {
			continue
		}

		if err := apply(project, op, m.resolve, op.QueuedAt); err != nil {
			log.Debug().Str("project", projectID).Str("operation", op.ID.String()).Err(err).Msg("queued operation does not apply to the refreshed state")
		}
	}

	m.view[projectID] = project
}

// Refresh replaces the confirmed state of the project with the state on
// the server. Queued operations are applied on top of it again.
func (m *Mirror) Refresh(ctx context.Context, projectID string) error {
	projectID = strings.TrimSpace(projectID)

	pool, err := m.client.GetPool(ctx, projectID)
	if err != nil {
		return err
	}

	list, err := m.client.ListPayments(ctx, projectID, payments.PaymentQueryFilter{})
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.confirmed[projectID] = &Project{Pool: pool, Payments: list}
	m.rebuild(projectID)

	return nil
}

// Sync replays the queued operations against the API in the order they were
// queued.
//
// Confirmed operations are removed from the queue. Operations the server
// rejects are removed, recorded in Failed and the project is refreshed from
// the server. On transport, authentication and server errors, Sync stops and
// returns the error. The operation stays queued and is retried by a later Sync
// once its backoff has passed.
//
// Every request carries the ID of the operation's payment or pool
// initialization, so replaying a request whose response was lost does not
// apply it twice.
func (m *Mirror) Sync(ctx context.Context) error {
	m.syncMu.Lock()
	defer m.syncMu.Unlock()

	for {
		m.mu.Lock()
		if len(m.queue) == 0 {
			m.mu.Unlock()
			return nil
		}

		op := m.queue[0]
		if m.now().Before(op.NextAttempt) {
			m.mu.Unlock()
			log.Debug().Str("operation", op.ID.String()).Time("next", op.NextAttempt).Msg("sync postponed")
			return nil
		}
		m.mu.Unlock()

		err := m.replay(ctx, op)

		var apiErr *APIError
		switch {
		case err == nil:
			continue

		case errors.As(err, &apiErr) && apiErr.Rejected():
			m.reject(op, apiErr)

			if err := m.Refresh(ctx, op.ProjectID); err != nil {
				log.Warn().Str("project", op.ProjectID).Err(err).Msg("refresh after rejection failed")
			}

		default:
			m.retryLater(op, err)
			return err
		}
	}
}

// replay sends the operation to the API and updates the confirmed state
// with the response.
func (m *Mirror) replay(ctx context.Context, op Operation) error {
	m.mu.Lock()
	paymentID := m.resolve(op.PaymentID)
	installmentID := m.resolve(op.InstallmentID)
	m.mu.Unlock()

	var confirm func(p *Project)

	switch op.Kind {
	case KindCreatePayment:
		editable := *op.Payment
		editable.ID = op.PaymentID

		created, err := m.client.CreatePayment(ctx, editable)
		if err != nil {
			return err
		}

		confirm = func(p *Project) {
			m.ids[op.PaymentID] = created.ID
			for i, installment := range created.Installments {
				if i < len(op.InstallmentIDs) {
					m.ids[op.InstallmentIDs[i]] = installment.ID
				}
			}
			p.upsert(created)
		}

	case KindMarkPaid, KindMarkOverdue, KindMarkInstallmentPaid:
		var (
			updated payments.Payment
			err     error
		)

		switch op.Kind {
		case KindMarkPaid:
			updated, err = m.client.MarkPaid(ctx, paymentID)
		case KindMarkOverdue:
			updated, err = m.client.MarkOverdue(ctx, paymentID)
		default:
			updated, err = m.client.MarkInstallmentPaid(ctx, paymentID, installmentID)
		}
		if err != nil {
			return err
		}

		confirm = func(p *Project) {
			p.upsert(updated)
		}

	case KindInitPool:
		editable := *op.Pool
		editable.ID = op.PaymentID

		result, err := m.client.InitPool(ctx, editable)
		if err != nil {
			return err
		}

		confirm = func(p *Project) {
			pool := result.Pool
			p.Pool = &pool
			if result.Material != nil {
				if op.PaymentID != uuid.Nil {
					m.ids[op.PaymentID] = result.Material.ID
				}
				p.upsert(*result.Material)
			}
		}

	case KindAllocate:
		editable := *op.Allocation
		editable.ID = op.PaymentID

		result, err := m.client.Allocate(ctx, editable)
		if err != nil {
			return err
		}

		confirm = func(p *Project) {
			pool := result.Pool
			p.Pool = &pool
			m.ids[op.PaymentID] = result.Payment.ID
			p.upsert(result.Payment)
		}

	default:
		return &APIError{Status: 400, Message: "unknown operation kind " + string(op.Kind)}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	project, ok := m.confirmed[op.ProjectID]
	if !ok {
		project = &Project{Payments: []payments.Payment{}}
		m.confirmed[op.ProjectID] = project
	}

	confirm(project)
	m.remove(op.ID)
	m.rebuild(op.ProjectID)

	log.Debug().Str("project", op.ProjectID).Str("operation", string(op.Kind)).Msg("mirror operation synced")
	return nil
}

// reject drops the operation from the queue and records it as failed.
func (m *Mirror) reject(op Operation, apiErr *APIError) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.remove(op.ID)
	m.failed = append(m.failed, Failure{
		Operation: op,
		Status:    apiErr.Status,
		Error:     apiErr.Message,
		At:        m.now(),
	})
	m.rebuild(op.ProjectID)

	log.Warn().Str("project", op.ProjectID).Str("operation", string(op.Kind)).Int("status", apiErr.Status).Str("error", apiErr.Message).Msg("mirror operation rejected by server")
}

// retryLater records a failed attempt and schedules the next one.
func (m *Mirror) retryLater(op Operation, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.queue {
		if m.queue[i].ID != op.ID {
			continue
		}

		q := &m.queue[i]
		q.Attempts++
		q.LastError = err.Error()
		q.NextAttempt = m.now().Add(m.backoff(q.Attempts))

		log.Info().Str("operation", q.ID.String()).Int("attempts", q.Attempts).Time("next", q.NextAttempt).Err(err).Msg("mirror sync failed, will retry")
		return
	}
}

// backoff returns the delay before the next attempt after the given
// number of failed attempts.
func (m *Mirror) backoff(attempts int) time.Duration {
	delay := m.BaseDelay
	for i := 1; i < attempts && delay < m.MaxDelay; i++ {
		delay *= 2
	}

	return min(delay, m.MaxDelay)
}

// remove deletes the operation from the queue. m.mu must be held.
func (m *Mirror) remove(id uuid.UUID) {
	m.queue = slices.DeleteFunc(m.queue, func(op Operation) bool {
		return op.ID == id
	})
}
