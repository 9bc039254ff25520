package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Plan is one row of the membership plan catalog. Prices are stored per
// billing cycle; the semestral price is the full six-month price, not the
// per-charge value.
type Plan struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	Name           string          `gorm:"size:80;not null" json:"name"`
	MonthlyPrice   decimal.Decimal `gorm:"type:decimal(10,2)" json:"monthly_price"`
	SemestralPrice decimal.Decimal `gorm:"type:decimal(10,2)" json:"semestral_price"`
	YearlyPrice    decimal.Decimal `gorm:"type:decimal(10,2)" json:"yearly_price"`
	Active         bool            `gorm:"default:true" json:"active"`
}

type BillingCycle string

const (
	CycleMonthly   BillingCycle = "monthly"
	CycleSemestral BillingCycle = "semestral"
	CycleYearly    BillingCycle = "yearly"
)

// Label is the customer-facing cycle name used in charge descriptions.
func (c BillingCycle) Label() string {
	switch c {
	case CycleMonthly:
		return "Mensal"
	case CycleSemestral:
		return "Semestral"
	case CycleYearly:
		return "Anual"
	}
	return string(c)
}

func (c BillingCycle) Valid() bool {
	switch c {
	case CycleMonthly, CycleSemestral, CycleYearly:
		return true
	}
	return false
}

// Period returns the length of one billing period starting at from.
func (c BillingCycle) Period(from time.Time) time.Time {
	switch c {
	case CycleSemestral:
		return from.AddDate(0, 6, 0)
	case CycleYearly:
		return from.AddDate(1, 0, 0)
	default:
		return from.AddDate(0, 1, 0)
	}
}
