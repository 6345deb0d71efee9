package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"gorm.io/gorm"
)

// DefaultCurrency is used for pools that do not specify a currency.
const DefaultCurrency = "INR"

// ProjectPool is the running balance of funds available for a project.
//
// There is at most one pool per project. Version is incremented with every write
// and used as an optimistic lock, see updatePool. Generation is the ID of the
// InitPool call that set up the current balance.
type ProjectPool struct {
	DefaultModel
	ProjectID     string          `gorm:"uniqueIndex;not null"`
	Currency      string          `gorm:"size:3"`
	TotalCost     decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	RemainingPool decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	MaterialCost  decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	SalariesCost  decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Version       uint            `gorm:"not null;default:0"`
	Generation    uuid.UUID
}

func (p ProjectPool) Self() string {
	return "Project Pool"
}

func (p *ProjectPool) BeforeSave(_ *gorm.DB) error {
	p.ProjectID = strings.TrimSpace(p.ProjectID)
	if p.ProjectID == "" {
		return ErrProjectIDEmpty
	}

	c, err := NormalizeCurrency(p.Currency)
	if err != nil {
		return err
	}
	p.Currency = c

	return nil
}

// NormalizeCurrency returns the canonical ISO 4217 code for the input.
// An empty input yields the DefaultCurrency.
func NormalizeCurrency(code string) (string, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return DefaultCurrency, nil
	}

	unit, err := currency.ParseISO(strings.ToUpper(code))
	if err != nil {
		return "", ErrCurrencyInvalid
	}

	return unit.String(), nil
}
