package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spendwise/backend/internal/category"
	"github.com/spendwise/backend/internal/types"
	"gorm.io/gorm"
)

type Severity string

const SeverityBudgetExceeded Severity = "budget-exceeded"

// Alert records that a transaction pushed the spend of a category in a
// month above its budget. Alerts are never updated.
type Alert struct {
	DefaultModel
	Message       string            `json:"message" example:"You exceeded your Food budget: spent 1200.00 of 1000.00 this month (200.00 over)."`
	Category      category.Category `json:"category" gorm:"index" example:"Food"`
	Severity      Severity          `json:"severity" example:"budget-exceeded"`
	Month         types.Month       `json:"month" gorm:"index" example:"2025-02"`
	MonthTotal    decimal.Decimal   `json:"month_total" gorm:"type:DECIMAL(20,8)" example:"1200"`
	BudgetLimit   decimal.Decimal   `json:"budget_limit" gorm:"type:DECIMAL(20,8)" example:"1000"`
	TransactionID uuid.UUID         `json:"transaction_id" gorm:"type:uuid" example:"65392deb-5e92-4268-b114-297faad6cdce"`
}

// BeforeUpdate rejects all updates.
func (a *Alert) BeforeUpdate(_ *gorm.DB) (err error) {
	return ErrAlertImmutable
}

// AlertsInMonth counts the alerts raised for the month.
func AlertsInMonth(db *gorm.DB, m types.Month) (int64, error) {
	var count int64
	err := db.Model(&Alert{}).Where("month = ?", m).Count(&count).Error
	return count, err
}
