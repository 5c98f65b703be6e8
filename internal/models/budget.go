package models

import (
	"errors"

	"github.com/shopspring/decimal"
	"github.com/spendwise/backend/internal/category"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Budget is the monthly spending limit for one category.
type Budget struct {
	DefaultModel
	Category     category.Category `json:"category" gorm:"uniqueIndex" example:"Food"`
	MonthlyLimit decimal.Decimal   `json:"monthly_limit" gorm:"type:DECIMAL(20,8)" example:"5000"`
}

// BeforeSave rejects non-positive limits.
func (b *Budget) BeforeSave(_ *gorm.DB) (err error) {
	if !b.MonthlyLimit.IsPositive() {
		return ErrBudgetLimitNotPositive
	}
	return nil
}

// UpsertBudget creates the budget for the category or replaces the limit of
// the existing one. It returns the stored budget.
func UpsertBudget(db *gorm.DB, c category.Category, limit decimal.Decimal) (Budget, error) {
	budget := Budget{
		Category:     c,
		MonthlyLimit: limit,
	}

	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "category"}},
		DoUpdates: clause.AssignmentColumns([]string{"monthly_limit", "updated_at"}),
	}).Create(&budget).Error
	if err != nil {
		return Budget{}, err
	}

	// On conflict, the generated ID is not the stored one
	var stored Budget
	err = db.Where(&Budget{Category: c}).First(&stored).Error
	return stored, err
}

// BudgetFor returns the budget for the category. The boolean is false when
// no budget is configured.
func BudgetFor(db *gorm.DB, c category.Category) (Budget, bool, error) {
	var budget Budget

	err := db.Where(&Budget{Category: c}).First(&budget).Error
	if errors.Is(err, ErrResourceNotFound) {
		return Budget{}, false, nil
	}

	if err != nil {
		return Budget{}, false, err
	}

	return budget, true, nil
}

// Budgets returns all budgets ordered by category.
func Budgets(db *gorm.DB) ([]Budget, error) {
	var budgets []Budget
	err := db.Order("category ASC").Find(&budgets).Error
	return budgets, err
}
