package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Installment is a part of a Payment with its own due date and status.
//
// Installments can only be pending or paid, overdue is tracked on the payment.
type Installment struct {
	DefaultModel
	PaymentID uuid.UUID       `gorm:"index;not null"`
	Position  int             // Order of the installment within its payment
	Amount    decimal.Decimal `gorm:"type:DECIMAL(20,8);check:installment_amount_positive,amount > 0"`
	DueDate   time.Time
	Status    PaymentStatus
}

func (i Installment) Self() string {
	return "Installment"
}

func (i *Installment) AfterFind(tx *gorm.DB) (err error) {
	err = i.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	i.DueDate = i.DueDate.In(time.UTC)
	return nil
}

func (i *Installment) BeforeSave(_ *gorm.DB) error {
	if i.Status == "" {
		i.Status = PaymentStatusPending
	}

	if i.Status != PaymentStatusPending && i.Status != PaymentStatusPaid {
		return ErrInstallmentStatusInvalid
	}

	if !i.Amount.IsPositive() {
		return ErrInstallmentAmount
	}

	if i.DueDate.IsZero() {
		i.DueDate = time.Now().In(time.UTC)
	} else {
		i.DueDate = i.DueDate.In(time.UTC)
	}

	return nil
}
