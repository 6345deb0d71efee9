package models

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// poolLocks holds one mutex per project ID. All writes to a pool
// happen while holding its mutex.
var poolLocks sync.Map

func lockProject(projectID string) func() {
	m, _ := poolLocks.LoadOrStore(projectID, &sync.Mutex{})
	mu := m.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// PoolInit contains the parameters for InitPool.
//
// ID identifies the call. It becomes the Generation of the pool and the ID
// of the material payment. Repeating a call with the same ID returns the
// current pool without resetting it. A nil ID is replaced by a random one.
type PoolInit struct {
	ID           uuid.UUID
	ProjectID    string
	TotalCost    decimal.Decimal
	MaterialCost decimal.Decimal
	Currency     string
}

// InitPool creates the pool for a project or replaces an existing one.
//
// The remaining pool is set to the total cost minus the material cost. When the
// material cost is positive, a paid material Payment is created in the same
// transaction and returned.
//
// If the pool was last initialized with in.ID, nothing is written and the
// pool and its material payment are returned as stored.
func InitPool(ctx context.Context, db *gorm.DB, in PoolInit) (ProjectPool, *Payment, error) {
	in.ProjectID = strings.TrimSpace(in.ProjectID)
	if in.ProjectID == "" {
		return ProjectPool{}, nil, ErrProjectIDEmpty
	}

	if in.TotalCost.IsNegative() || in.MaterialCost.IsNegative() {
		return ProjectPool{}, nil, ErrCostNegative
	}

	currency, err := NormalizeCurrency(in.Currency)
	if err != nil {
		return ProjectPool{}, nil, err
	}

	if in.ID == uuid.Nil {
		in.ID = uuid.New()
	}

	unlock := lockProject(in.ProjectID)
	defer unlock()

	pool := ProjectPool{
		Generation:    in.ID,
		ProjectID:     in.ProjectID,
		Currency:      currency,
		TotalCost:     in.TotalCost,
		RemainingPool: in.TotalCost.Sub(in.MaterialCost),
		MaterialCost:  in.MaterialCost,
		SalariesCost:  decimal.Zero,
	}

	var material *Payment

	err = transaction(ctx, db, func(tx *gorm.DB) error {
		var existing []ProjectPool
		err := tx.Where("project_id = ?", in.ProjectID).Limit(1).Find(&existing).Error
		if err != nil {
			return err
		}

		if len(existing) > 0 && existing[0].Generation == in.ID {
			pool = existing[0]
			material, err = paymentByID(tx, in.ID)
			return err
		}

		if in.MaterialCost.IsPositive() {
			used, err := paymentByID(tx, in.ID)
			if err != nil {
				return err
			}

			if used != nil {
				return ErrPaymentIDInUse
			}
		}

		if len(existing) > 0 {
			pool.ID = existing[0].ID
			pool.CreatedAt = existing[0].CreatedAt
			pool.Version = existing[0].Version

			err = updatePool(tx, &pool)
		} else {
			err = tx.Create(&pool).Error
		}
		if err != nil {
			return err
		}

		if in.MaterialCost.IsPositive() {
			material = &Payment{
				DefaultModel:   DefaultModel{ID: in.ID},
				ProjectID:      in.ProjectID,
				Description:    "Material cost",
				Type:           PaymentTypeMaterial,
				Amount:         in.MaterialCost,
				DueDate:        time.Now().In(time.UTC),
				Status:         PaymentStatusPaid,
				Source:         PaymentSourceInit,
				PoolGeneration: in.ID,
			}

			return tx.Create(material).Error
		}

		return nil
	})
	if err != nil {
		return ProjectPool{}, nil, err
	}

	log.Debug().Str("project", pool.ProjectID).Str("remaining", pool.RemainingPool.String()).Msg("pool initialized")
	return pool, material, nil
}

// Allocation contains the parameters for Allocate.
//
// PaymentID is optional. When set, it is the ID of the recorded payment and
// repeating the allocation with the same PaymentID does not debit the pool again.
type Allocation struct {
	PaymentID uuid.UUID
	ProjectID string
	Recipient string
	Amount    decimal.Decimal
	Type      PaymentType
}

// Allocate debits the amount from the project's pool and records a paid Payment
// to the recipient.
//
// The balance check, the pool update and the payment insert happen in one
// transaction while holding the project's lock. If the balance is insufficient,
// ErrInsufficientFunds is returned and nothing is written.
func Allocate(ctx context.Context, db *gorm.DB, a Allocation) (ProjectPool, Payment, error) {
	pool, payment, err := allocate(ctx, db, a)
	allocationResult(err)
	return pool, payment, err
}

func allocate(ctx context.Context, db *gorm.DB, a Allocation) (ProjectPool, Payment, error) {
	a.ProjectID = strings.TrimSpace(a.ProjectID)
	a.Recipient = strings.TrimSpace(a.Recipient)

	if a.ProjectID == "" {
		return ProjectPool{}, Payment{}, ErrProjectIDEmpty
	}

	if !a.Amount.IsPositive() {
		return ProjectPool{}, Payment{}, ErrPaymentAmountNotPositive
	}

	if !a.Type.Valid() {
		return ProjectPool{}, Payment{}, ErrPaymentTypeInvalid
	}

	unlock := lockProject(a.ProjectID)
	defer unlock()

	var pool ProjectPool
	payment := Payment{
		DefaultModel: DefaultModel{ID: a.PaymentID},
		ProjectID:    a.ProjectID,
		Description:  fmt.Sprintf("Payment to %s", a.Recipient),
		Type:         a.Type,
		Amount:       a.Amount,
		DueDate:      time.Now().In(time.UTC),
		Status:       PaymentStatusPaid,
		Recipient:    a.Recipient,
		Source:       PaymentSourceAllocation,
	}

	err := transaction(ctx, db, func(tx *gorm.DB) error {
		q := tx
		if tx.Dialector.Name() == "postgres" {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		err := q.Where("project_id = ?", a.ProjectID).First(&pool).Error
		if err != nil {
			return err
		}

		if a.PaymentID != uuid.Nil {
			existing, err := paymentByID(tx, a.PaymentID)
			if err != nil {
				return err
			}

			if existing != nil {
				if existing.Source != PaymentSourceAllocation || existing.ProjectID != a.ProjectID {
					return ErrPaymentIDInUse
				}

				// Already recorded, the pool has been debited
				payment = *existing
				return nil
			}
		}

		if a.Amount.GreaterThan(pool.RemainingPool) {
			return ErrInsufficientFunds
		}

		pool.RemainingPool = pool.RemainingPool.Sub(a.Amount)
		if a.Type == PaymentTypeSalary {
			pool.SalariesCost = pool.SalariesCost.Add(a.Amount)
		}

		err = updatePool(tx, &pool)
		if err != nil {
			return err
		}

		payment.PoolGeneration = pool.Generation
		return tx.Create(&payment).Error
	})
	if err != nil {
		return ProjectPool{}, Payment{}, err
	}

	return pool, payment, nil
}

// updatePool writes all balance fields of the pool if the stored version
// still matches pool.Version. On success, pool.Version is incremented.
func updatePool(tx *gorm.DB, pool *ProjectPool) error {
	current := pool.Version
	next := current + 1

	result := tx.Model(pool).
		Where("version = ?", current).
		Updates(map[string]any{
			"currency":       pool.Currency,
			"total_cost":     pool.TotalCost,
			"remaining_pool": pool.RemainingPool,
			"material_cost":  pool.MaterialCost,
			"salaries_cost":  pool.SalariesCost,
			"generation":     pool.Generation,
			"version":        next,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrPoolConflict
	}

	pool.Version = next
	return nil
}

// paymentByID returns the payment with its installments, nil if it does not exist.
func paymentByID(tx *gorm.DB, id uuid.UUID) (*Payment, error) {
	var payments []Payment
	err := WithInstallments(tx).Where("id = ?", id).Limit(1).Find(&payments).Error
	if err != nil {
		return nil, err
	}

	if len(payments) == 0 {
		return nil, nil
	}

	return &payments[0], nil
}

// CreatePayment stores a direct payment with its installments.
//
// If the payment has an ID and a direct payment for the same project with
// that ID exists, the existing payment is returned and nothing is written.
func CreatePayment(ctx context.Context, db *gorm.DB, payment Payment) (Payment, error) {
	payment.Source = PaymentSourceDirect
	payment.PoolGeneration = uuid.Nil

	err := transaction(ctx, db, func(tx *gorm.DB) error {
		if payment.ID != uuid.Nil {
			existing, err := paymentByID(tx, payment.ID)
			if err != nil {
				return err
			}

			if existing != nil {
				if existing.Source != PaymentSourceDirect || existing.ProjectID != strings.TrimSpace(payment.ProjectID) {
					return ErrPaymentIDInUse
				}
				return nil
			}
		}

		return tx.Create(&payment).Error
	})
	if err != nil {
		return Payment{}, err
	}

	return GetPayment(ctx, db, payment.ID)
}

// GetPool returns the pool for the project.
//
// If no pool exists, nil is returned without an error.
func GetPool(ctx context.Context, db *gorm.DB, projectID string) (*ProjectPool, error) {
	var pools []ProjectPool
	err := db.WithContext(ctx).Where("project_id = ?", strings.TrimSpace(projectID)).Limit(1).Find(&pools).Error
	if err != nil {
		return nil, err
	}

	if len(pools) == 0 {
		return nil, nil
	}

	return &pools[0], nil
}

// GetPayment returns the payment with its installments.
func GetPayment(ctx context.Context, db *gorm.DB, id uuid.UUID) (Payment, error) {
	var payment Payment
	err := WithInstallments(db.WithContext(ctx)).Where("id = ?", id).First(&payment).Error
	return payment, err
}

// PaymentFilter restricts the payments returned by ListPayments.
// Zero values do not filter.
type PaymentFilter struct {
	Type   PaymentType
	Status PaymentStatus
}

// ListPayments returns all payments for a project, oldest first.
func ListPayments(ctx context.Context, db *gorm.DB, projectID string, filter PaymentFilter) ([]Payment, error) {
	q := WithInstallments(db.WithContext(ctx)).
		Where("project_id = ?", strings.TrimSpace(projectID)).
		Order("created_at ASC")

	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}

	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	payments := make([]Payment, 0)
	err := q.Find(&payments).Error
	return payments, err
}

// MarkPaid sets the status of the payment to paid.
//
// Marking a paid payment as paid again does not change anything. The
// installments are not modified.
func MarkPaid(ctx context.Context, db *gorm.DB, id uuid.UUID) (Payment, error) {
	return setStatus(ctx, db, id, PaymentStatusPaid)
}

// MarkOverdue sets the status of a pending payment to overdue.
//
// Overdue payments stay overdue, paid payments cannot become overdue.
func MarkOverdue(ctx context.Context, db *gorm.DB, id uuid.UUID) (Payment, error) {
	return setStatus(ctx, db, id, PaymentStatusOverdue)
}

func setStatus(ctx context.Context, db *gorm.DB, id uuid.UUID, status PaymentStatus) (Payment, error) {
	err := transaction(ctx, db, func(tx *gorm.DB) error {
		var payment Payment
		err := tx.Where("id = ?", id).First(&payment).Error
		if err != nil {
			return err
		}

		if payment.Status == status {
			return nil
		}

		if payment.Status == PaymentStatusPaid {
			return ErrPaymentAlreadyPaid
		}

		return tx.Model(&payment).Update("status", status).Error
	})
	if err != nil {
		return Payment{}, err
	}

	return GetPayment(ctx, db, id)
}

// MarkInstallmentPaid sets the status of one installment of the payment to paid.
//
// Neither the sibling installments nor the payment itself are modified, even
// when all installments are paid afterwards.
func MarkInstallmentPaid(ctx context.Context, db *gorm.DB, paymentID, installmentID uuid.UUID) (Payment, error) {
	err := transaction(ctx, db, func(tx *gorm.DB) error {
		var payment Payment
		err := tx.Where("id = ?", paymentID).First(&payment).Error
		if err != nil {
			return err
		}

		var installment Installment
		err = tx.Where("id = ? AND payment_id = ?", installmentID, paymentID).First(&installment).Error
		if err != nil {
			return err
		}

		if installment.Status == PaymentStatusPaid {
			return nil
		}

		return tx.Model(&installment).Update("status", PaymentStatusPaid).Error
	})
	if err != nil {
		return Payment{}, err
	}

	return GetPayment(ctx, db, paymentID)
}

// Reconciliation compares the stored remaining pool with the value derived
// from the payments created by the current generation of the pool.
type Reconciliation struct {
	ProjectID string
	Stored    decimal.Decimal // RemainingPool as stored on the pool
	Allocated decimal.Decimal // Sum of material and allocation payments since the pool was last initialized
	Derived   decimal.Decimal // TotalCost minus Allocated
	Drift     decimal.Decimal // Stored minus Derived, zero when both agree
}

// Reconcile derives the remaining pool from the payment records.
func Reconcile(ctx context.Context, db *gorm.DB, projectID string) (Reconciliation, error) {
	pool, err := GetPool(ctx, db, projectID)
	if err != nil {
		return Reconciliation{}, err
	}

	if pool == nil {
		return Reconciliation{}, fmt.Errorf("%w project pool matching your query", ErrResourceNotFound)
	}

	var allocated decimal.NullDecimal
	err = db.WithContext(ctx).
		Select("SUM(amount)").
		Where("project_id = ?", pool.ProjectID).
		Where("source IN ?", []PaymentSource{PaymentSourceInit, PaymentSourceAllocation}).
		Where("pool_generation = ?", pool.Generation).
		Where("deleted_at IS NULL").
		Table("payments").
		Find(&allocated).
		Error
	if err != nil {
		return Reconciliation{}, err
	}

	r := Reconciliation{
		ProjectID: pool.ProjectID,
		Stored:    pool.RemainingPool,
		Allocated: decimal.Zero,
	}

	// If no payments are found, the value is nil
	if allocated.Valid {
		r.Allocated = allocated.Decimal
	}

	r.Derived = pool.TotalCost.Sub(r.Allocated)
	r.Drift = r.Stored.Sub(r.Derived)

	if !r.Drift.IsZero() {
		log.Warn().Str("project", r.ProjectID).Str("drift", r.Drift.String()).Msg("pool balance drifted from payment records")
	}

	return r, nil
}
