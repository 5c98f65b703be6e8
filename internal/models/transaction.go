package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spendwise/backend/internal/category"
	"github.com/spendwise/backend/internal/types"
	"gorm.io/gorm"
)

// Transaction is a spend or income event extracted from a notification.
//
// Transactions are immutable. They are only ever created by the pipeline
// and removed by an explicit delete.
type Transaction struct {
	DefaultModel
	Amount        decimal.Decimal   `json:"amount" gorm:"type:DECIMAL(20,8)" example:"349"`
	Merchant      string            `json:"merchant" example:"Zomato"`
	Category      category.Category `json:"category" gorm:"index:idx_transaction_category_date,priority:1" example:"Food"`
	Date          time.Time         `json:"date" gorm:"index:idx_transaction_category_date,priority:2" example:"2025-02-24T00:00:00Z"`
	PaymentMode   types.PaymentMode `json:"payment_mode" example:"UPI"`
	AccountSuffix string            `json:"account_suffix" example:"4521"`
	Bank          string            `json:"bank" example:"HDFC"`
	RawSource     string            `json:"raw_source"`
}

// AfterFind sets the timezone of all times to UTC.
func (t *Transaction) AfterFind(tx *gorm.DB) (err error) {
	t.Date = t.Date.In(time.UTC)
	return t.DefaultModel.AfterFind(tx)
}

// BeforeSave normalizes the transaction before it is written.
func (t *Transaction) BeforeSave(_ *gorm.DB) (err error) {
	t.Merchant = strings.TrimSpace(t.Merchant)
	if t.Merchant == "" {
		t.Merchant = "Unknown"
	}

	if !t.Amount.IsPositive() {
		return fmt.Errorf("transaction amount must be positive, got %s", t.Amount)
	}

	if t.PaymentMode == "" {
		t.PaymentMode = types.PaymentModeUnknown
	}

	if t.Date.IsZero() {
		t.Date = time.Now()
	}
	t.Date = t.Date.In(time.UTC).Truncate(time.Second)

	return nil
}

// BeforeUpdate rejects all updates.
func (t *Transaction) BeforeUpdate(_ *gorm.DB) (err error) {
	return ErrTransactionImmutable
}

// TransactionsInMonth returns all transactions dated in the month, most recent first.
func TransactionsInMonth(db *gorm.DB, m types.Month) ([]Transaction, error) {
	var transactions []Transaction

	err := db.
		Where("date >= ? AND date < ?", m.Start().In(time.UTC), m.End().In(time.UTC)).
		Order("date DESC, created_at DESC").
		Find(&transactions).Error
	if err != nil {
		return nil, err
	}

	return transactions, nil
}

// SpendInMonth sums the amounts of all transactions of a category in the month.
func SpendInMonth(db *gorm.DB, c category.Category, m types.Month) (decimal.Decimal, error) {
	var amounts []decimal.Decimal

	err := db.
		Model(&Transaction{}).
		Where("category = ? AND date >= ? AND date < ?", c, m.Start().In(time.UTC), m.End().In(time.UTC)).
		Pluck("amount", &amounts).Error
	if err != nil {
		return decimal.Zero, err
	}

	return decimal.Sum(decimal.Zero, amounts...), nil
}
