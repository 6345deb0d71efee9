package models_test

import (
	"strings"
	"time"

	"github.com/propnest/backend/pkg/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func (suite *TestSuiteStandard) TestPaymentSelf() {
	assert.Equal(suite.T(), "Payment", models.Payment{}.Self())
	assert.Equal(suite.T(), "Installment", models.Installment{}.Self())
}

func (suite *TestSuiteStandard) TestPaymentBeforeSave() {
	tests := []struct {
		name    string
		payment models.Payment
		err     error
	}{
		{"Negative amount", models.Payment{ProjectID: "P", Type: models.PaymentTypeEMI, Amount: decimal.NewFromFloat(-10)}, models.ErrPaymentAmountNotPositive},
		{"Zero amount", models.Payment{ProjectID: "P", Type: models.PaymentTypeEMI}, models.ErrPaymentAmountNotPositive},
		{"Invalid type", models.Payment{ProjectID: "P", Type: "bonus", Amount: decimal.NewFromFloat(10)}, models.ErrPaymentTypeInvalid},
		{"Invalid status", models.Payment{ProjectID: "P", Type: models.PaymentTypeEMI, Status: "cancelled", Amount: decimal.NewFromFloat(10)}, models.ErrPaymentStatusInvalid},
		{"No project", models.Payment{ProjectID: "  ", Type: models.PaymentTypeEMI, Amount: decimal.NewFromFloat(10)}, models.ErrProjectIDEmpty},
		{"Valid", models.Payment{ProjectID: "P", Type: models.PaymentTypeDesigner, Amount: decimal.NewFromFloat(10)}, nil},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			err := tt.payment.BeforeSave(&gorm.DB{})
			assert.Equal(suite.T(), tt.err, err)
		})
	}
}

func (suite *TestSuiteStandard) TestPaymentDefaults() {
	p := suite.createTestPayment(models.Payment{
		ProjectID:   "  Villa 7 ",
		Description: "  Plumbing  \t",
		Recipient:   " Alice ",
	})

	assert.Equal(suite.T(), "Villa 7", p.ProjectID)
	assert.Equal(suite.T(), "Plumbing", p.Description)
	assert.Equal(suite.T(), "Alice", p.Recipient)
	assert.Equal(suite.T(), models.PaymentStatusPending, p.Status)
	assert.Equal(suite.T(), models.PaymentSourceDirect, p.Source)
	assert.False(suite.T(), p.DueDate.IsZero())
	assert.Equal(suite.T(), time.UTC, p.DueDate.Location())
}

func (suite *TestSuiteStandard) TestPaymentInstallmentsOrdered() {
	due := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	p := suite.createTestPayment(models.Payment{
		Type:   models.PaymentTypeEMI,
		Amount: decimal.NewFromFloat(300),
		Installments: []models.Installment{
			{Amount: decimal.NewFromFloat(100), DueDate: due},
			{Amount: decimal.NewFromFloat(100), DueDate: due.AddDate(0, 1, 0)},
			{Amount: decimal.NewFromFloat(100), DueDate: due.AddDate(0, 2, 0)},
		},
	})

	var loaded models.Payment
	err := models.WithInstallments(models.DB).Where("id = ?", p.ID).First(&loaded).Error
	suite.Require().Nil(err)
	suite.Require().Len(loaded.Installments, 3)

	for i, installment := range loaded.Installments {
		assert.Equal(suite.T(), i, installment.Position)
		assert.Equal(suite.T(), p.ID, installment.PaymentID)
		assert.Equal(suite.T(), models.PaymentStatusPending, installment.Status)
		assert.True(suite.T(), due.AddDate(0, i, 0).Equal(installment.DueDate))
	}
}

func (suite *TestSuiteStandard) TestInstallmentBeforeSave() {
	tests := []struct {
		name        string
		installment models.Installment
		err         error
	}{
		{"Negative amount", models.Installment{Amount: decimal.NewFromFloat(-1)}, models.ErrInstallmentAmount},
		{"Overdue status", models.Installment{Amount: decimal.NewFromFloat(1), Status: models.PaymentStatusOverdue}, models.ErrInstallmentStatusInvalid},
		{"Valid", models.Installment{Amount: decimal.NewFromFloat(1)}, nil},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			err := tt.installment.BeforeSave(&gorm.DB{})
			assert.Equal(suite.T(), tt.err, err)
		})
	}
}

// TestPaymentAmountConstraint verifies that the database rejects
// non-positive amounts even when hooks are skipped.
func (suite *TestSuiteStandard) TestPaymentAmountConstraint() {
	p := models.Payment{
		ProjectID: "P",
		Type:      models.PaymentTypeEMI,
		Amount:    decimal.NewFromFloat(-5),
		Status:    models.PaymentStatusPending,
	}
	p.ID = [16]byte{1}

	err := models.DB.Session(&gorm.Session{SkipHooks: true}).Create(&p).Error
	suite.Assert().ErrorIs(err, models.ErrPaymentAmountNotPositive)
}

func (suite *TestSuiteStandard) TestPaymentTypeValid() {
	for _, t := range []string{"emi", "salary", "material", "contractor", "designer"} {
		assert.True(suite.T(), models.PaymentType(t).Valid(), t)
	}

	assert.False(suite.T(), models.PaymentType(strings.ToUpper("emi")).Valid())
	assert.False(suite.T(), models.PaymentType("").Valid())
}
