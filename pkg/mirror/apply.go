package mirror

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/propnest/backend/pkg/controllers/payments"
	"github.com/propnest/backend/pkg/models"
	"github.com/shopspring/decimal"
)

func notFound(resource string) error {
	return fmt.Errorf("%w %s matching your query", models.ErrResourceNotFound, resource)
}

// apply applies the effect of the operation to the project the same way
// the server does. IDs in the operation are translated with resolve.
func apply(p *Project, op Operation, resolve func(uuid.UUID) uuid.UUID, now time.Time) error {
	switch op.Kind {
	case KindCreatePayment:
		payment, err := localPayment(op, now)
		if err != nil {
			return err
		}
		p.Payments = append(p.Payments, payment)

	case KindMarkPaid, KindMarkOverdue:
		payment := findPayment(p, op.PaymentID, resolve)
		if payment == nil {
			return notFound("payment")
		}

		status := models.PaymentStatusPaid
		if op.Kind == KindMarkOverdue {
			status = models.PaymentStatusOverdue
		}

		if payment.Status == status {
			return nil
		}

		if payment.Status == models.PaymentStatusPaid {
			return models.ErrPaymentAlreadyPaid
		}

		payment.Status = status
		payment.UpdatedAt = now

	case KindMarkInstallmentPaid:
		payment := findPayment(p, op.PaymentID, resolve)
		if payment == nil {
			return notFound("payment")
		}

		for i := range payment.Installments {
			installment := &payment.Installments[i]
			if installment.ID == op.InstallmentID || installment.ID == resolve(op.InstallmentID) {
				installment.Status = models.PaymentStatusPaid
				return nil
			}
		}

		return notFound("installment")

	case KindInitPool:
		return applyInit(p, op, now)

	case KindAllocate:
		return applyAllocation(p, op, now)

	default:
		return fmt.Errorf("unknown operation kind %q", op.Kind)
	}

	return nil
}

func findPayment(p *Project, id uuid.UUID, resolve func(uuid.UUID) uuid.UUID) *payments.Payment {
	if payment := p.payment(id); payment != nil {
		return payment
	}

	return p.payment(resolve(id))
}

// localPayment builds the payment a KindCreatePayment operation creates,
// validated with the same rules the server applies.
func localPayment(op Operation, now time.Time) (payments.Payment, error) {
	e := op.Payment
	if e == nil {
		return payments.Payment{}, fmt.Errorf("operation %s has no payment", op.ID)
	}

	if len(op.InstallmentIDs) != len(e.Installments) {
		return payments.Payment{}, fmt.Errorf("operation %s has %d installment IDs for %d installments", op.ID, len(op.InstallmentIDs), len(e.Installments))
	}

	model := models.Payment{
		ProjectID:   e.ProjectID,
		Description: e.Description,
		Type:        e.Type,
		Amount:      e.Amount,
		DueDate:     e.DueDate,
		Status:      e.Status,
		Recipient:   e.Recipient,
		Source:      models.PaymentSourceDirect,
	}

	for _, i := range e.Installments {
		model.Installments = append(model.Installments, models.Installment{Amount: i.Amount, DueDate: i.DueDate, Status: i.Status})
	}

	if err := model.BeforeSave(nil); err != nil {
		return payments.Payment{}, err
	}

	for i := range model.Installments {
		if err := model.Installments[i].BeforeSave(nil); err != nil {
			return payments.Payment{}, err
		}
	}

	timestamps := models.Timestamps{CreatedAt: now, UpdatedAt: now}
	payment := payments.Payment{
		DefaultModel: models.DefaultModel{ID: op.PaymentID, Timestamps: timestamps},
		ProjectID:    model.ProjectID,
		Description:  model.Description,
		Type:         model.Type,
		Amount:       model.Amount,
		DueDate:      model.DueDate,
		Status:       model.Status,
		Recipient:    model.Recipient,
		Source:       model.Source,
		Installments: make([]payments.Installment, 0, len(model.Installments)),
	}

	for i, installment := range model.Installments {
		payment.Installments = append(payment.Installments, payments.Installment{
			DefaultModel: models.DefaultModel{ID: op.InstallmentIDs[i], Timestamps: timestamps},
			Position:     installment.Position,
			Amount:       installment.Amount,
			DueDate:      installment.DueDate,
			Status:       installment.Status,
		})
	}

	return payment, nil
}

func applyInit(p *Project, op Operation, now time.Time) error {
	in := op.Pool
	if in == nil {
		return fmt.Errorf("operation %s has no pool", op.ID)
	}

	projectID := strings.TrimSpace(in.ProjectID)
	if projectID == "" {
		return models.ErrProjectIDEmpty
	}

	if in.TotalCost.IsNegative() || in.MaterialCost.IsNegative() {
		return models.ErrCostNegative
	}

	currency, err := models.NormalizeCurrency(in.Currency)
	if err != nil {
		return err
	}

	pool := payments.Pool{
		DefaultModel:  models.DefaultModel{ID: uuid.Nil, Timestamps: models.Timestamps{CreatedAt: now, UpdatedAt: now}},
		ProjectID:     projectID,
		Currency:      currency,
		TotalCost:     in.TotalCost,
		RemainingPool: in.TotalCost.Sub(in.MaterialCost),
		MaterialCost:  in.MaterialCost,
		SalariesCost:  decimal.Zero,
		Generation:    op.PaymentID,
	}

	// Replacing keeps the identity of the pool
	if p.Pool != nil {
		pool.ID = p.Pool.ID
		pool.CreatedAt = p.Pool.CreatedAt
		pool.Version = p.Pool.Version + 1
		pool.Links = p.Pool.Links
	}

	p.Pool = &pool

	if in.MaterialCost.IsPositive() {
		p.Payments = append(p.Payments, payments.Payment{
			DefaultModel: models.DefaultModel{ID: op.PaymentID, Timestamps: models.Timestamps{CreatedAt: now, UpdatedAt: now}},
			ProjectID:    projectID,
			Description:  "Material cost",
			Type:         models.PaymentTypeMaterial,
			Amount:       in.MaterialCost,
			DueDate:      now,
			Status:       models.PaymentStatusPaid,
			Source:       models.PaymentSourceInit,
			Installments: []payments.Installment{},
		})
	}

	return nil
}

func applyAllocation(p *Project, op Operation, now time.Time) error {
	a := op.Allocation
	if a == nil {
		return fmt.Errorf("operation %s has no allocation", op.ID)
	}

	projectID := strings.TrimSpace(a.ProjectID)
	recipient := strings.TrimSpace(a.Recipient)

	if projectID == "" {
		return models.ErrProjectIDEmpty
	}

	if !a.Amount.IsPositive() {
		return models.ErrPaymentAmountNotPositive
	}

	if !a.Type.Valid() {
		return models.ErrPaymentTypeInvalid
	}

	if p.Pool == nil {
		return notFound("project pool")
	}

	if a.Amount.GreaterThan(p.Pool.RemainingPool) {
		return models.ErrInsufficientFunds
	}

	pool := *p.Pool
	pool.RemainingPool = pool.RemainingPool.Sub(a.Amount)
	if a.Type == models.PaymentTypeSalary {
		pool.SalariesCost = pool.SalariesCost.Add(a.Amount)
	}
	pool.Version++
	pool.UpdatedAt = now
	p.Pool = &pool

	p.Payments = append(p.Payments, payments.Payment{
		DefaultModel: models.DefaultModel{ID: op.PaymentID, Timestamps: models.Timestamps{CreatedAt: now, UpdatedAt: now}},
		ProjectID:    projectID,
		Description:  fmt.Sprintf("Payment to %s", recipient),
		Type:         a.Type,
		Amount:       a.Amount,
		DueDate:      now,
		Status:       models.PaymentStatusPaid,
		Recipient:    recipient,
		Source:       models.PaymentSourceAllocation,
		Installments: []payments.Installment{},
	})

	return nil
}
