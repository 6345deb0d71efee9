package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// swagger:enum PaymentType
type PaymentType string

const (
	PaymentTypeEMI        PaymentType = "emi"
	PaymentTypeSalary     PaymentType = "salary"
	PaymentTypeMaterial   PaymentType = "material"
	PaymentTypeContractor PaymentType = "contractor"
	PaymentTypeDesigner   PaymentType = "designer"
)

var paymentTypes = []PaymentType{
	PaymentTypeEMI,
	PaymentTypeSalary,
	PaymentTypeMaterial,
	PaymentTypeContractor,
	PaymentTypeDesigner,
}

// Valid reports if the type is one of the known payment types.
func (t PaymentType) Valid() bool {
	return slices.Contains(paymentTypes, t)
}

// swagger:enum PaymentStatus
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusOverdue PaymentStatus = "overdue"
)

func (s PaymentStatus) Valid() bool {
	return slices.Contains([]PaymentStatus{PaymentStatusPending, PaymentStatusPaid, PaymentStatusOverdue}, s)
}

// swagger:enum PaymentSource
type PaymentSource string

const (
	PaymentSourceDirect     PaymentSource = "direct"     // Created through the payment collection endpoint
	PaymentSourceInit       PaymentSource = "init"       // Material cost payment created by pool initialization
	PaymentSourceAllocation PaymentSource = "allocation" // Created by an allocation from the pool
)

// Payment is a single payment for a project, optionally split into installments.
type Payment struct {
	DefaultModel
	ProjectID      string          `gorm:"index;not null"`
	Description    string
	Type           PaymentType
	Amount         decimal.Decimal `gorm:"type:DECIMAL(20,8);check:payment_amount_positive,amount > 0"`
	DueDate        time.Time
	Status         PaymentStatus
	Recipient      string
	Source         PaymentSource
	PoolGeneration uuid.UUID     `gorm:"index"` // Generation of the pool the payment was debited from. Nil for direct payments
	Installments   []Installment `gorm:"constraint:OnDelete:CASCADE"`
}

func (p Payment) Self() string {
	return "Payment"
}

// AfterFind enforces UTC for the due date. Installments are ordered by
// WithInstallments when they are loaded.
func (p *Payment) AfterFind(tx *gorm.DB) (err error) {
	err = p.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	p.DueDate = p.DueDate.In(time.UTC)
	return nil
}

// BeforeSave
//   - trims whitespace from string fields
//   - sets defaults for the status, the source and the due date
//   - validates the amount, type and status
func (p *Payment) BeforeSave(_ *gorm.DB) error {
	p.ProjectID = strings.TrimSpace(p.ProjectID)
	p.Description = strings.TrimSpace(p.Description)
	p.Recipient = strings.TrimSpace(p.Recipient)

	if p.ProjectID == "" {
		return ErrProjectIDEmpty
	}

	if p.Status == "" {
		p.Status = PaymentStatusPending
	}

	if p.Source == "" {
		p.Source = PaymentSourceDirect
	}

	if p.DueDate.IsZero() {
		p.DueDate = time.Now().In(time.UTC)
	} else {
		p.DueDate = p.DueDate.In(time.UTC)
	}

	if !p.Amount.IsPositive() {
		return ErrPaymentAmountNotPositive
	}

	if !p.Type.Valid() {
		return ErrPaymentTypeInvalid
	}

	if !p.Status.Valid() {
		return ErrPaymentStatusInvalid
	}

	for i := range p.Installments {
		p.Installments[i].Position = i
	}

	return nil
}

// WithInstallments preloads the installments in their stored order.
func WithInstallments(db *gorm.DB) *gorm.DB {
	return db.Preload("Installments", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	})
}
