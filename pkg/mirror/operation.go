package mirror

import (
	"time"

	"github.com/google/uuid"
	"github.com/propnest/backend/pkg/controllers/payments"
)

type OperationKind string

const (
	KindCreatePayment       OperationKind = "create_payment"
	KindMarkPaid            OperationKind = "mark_paid"
	KindMarkOverdue         OperationKind = "mark_overdue"
	KindMarkInstallmentPaid OperationKind = "mark_installment_paid"
	KindInitPool            OperationKind = "init_pool"
	KindAllocate            OperationKind = "allocate"
)

// Operation is a mutation that has been applied to the local copy but not
// yet been confirmed by the server.
type Operation struct {
	ID        uuid.UUID     `json:"id"`
	Kind      OperationKind `json:"kind"`
	ProjectID string        `json:"projectId"`
	QueuedAt  time.Time     `json:"queuedAt"`

	// Payment the operation targets or, for operations creating a payment,
	// the ID of the new payment. For KindInitPool, the ID of the
	// initialization, which is also the ID of the material payment. The ID
	// is sent with the request so the server can detect replays.
	PaymentID      uuid.UUID   `json:"paymentId"`
	InstallmentID  uuid.UUID   `json:"installmentId"`  // Target of KindMarkInstallmentPaid
	InstallmentIDs []uuid.UUID `json:"installmentIds"` // Local IDs of the installments of a created payment

	Payment    *payments.PaymentEditable    `json:"payment,omitempty"`
	Pool       *payments.PoolInitEditable   `json:"pool,omitempty"`
	Allocation *payments.AllocationEditable `json:"allocation,omitempty"`

	Attempts    int       `json:"attempts"`    // Failed attempts to replay the operation
	NextAttempt time.Time `json:"nextAttempt"` // Sync does not replay the operation before this time
	LastError   string    `json:"lastError"`   // Error of the last failed attempt
}

// Failure is an operation the server rejected.
type Failure struct {
	Operation Operation `json:"operation"`
	Status    int       `json:"status"` // HTTP status of the rejection
	Error     string    `json:"error"`
	At        time.Time `json:"at"`
}

// Project is the local copy of a project.
type Project struct {
	Pool     *payments.Pool     `json:"pool"`
	Payments []payments.Payment `json:"payments"`
}

func (p *Project) clone() *Project {
	c := &Project{Payments: make([]payments.Payment, 0, len(p.Payments))}

	if p.Pool != nil {
		pool := *p.Pool
		c.Pool = &pool
	}

	for _, payment := range p.Payments {
		payment.Installments = append([]payments.Installment(nil), payment.Installments...)
		c.Payments = append(c.Payments, payment)
	}

	return c
}

// payment returns the payment with the ID, nil if there is none.
func (p *Project) payment(id uuid.UUID) *payments.Payment {
	for i := range p.Payments {
		if p.Payments[i].ID == id {
			return &p.Payments[i]
		}
	}

	return nil
}

// upsert replaces the payment with the same ID or appends it.
func (p *Project) upsert(payment payments.Payment) {
	if existing := p.payment(payment.ID); existing != nil {
		*existing = payment
		return
	}

	p.Payments = append(p.Payments, payment)
}
