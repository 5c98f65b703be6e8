// Package ledger implements the operations offered to clients of the
// backend on top of the database and the pipeline.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spendwise/backend/internal/category"
	"github.com/spendwise/backend/internal/insight"
	"github.com/spendwise/backend/internal/models"
	"github.com/spendwise/backend/internal/parser"
	"github.com/spendwise/backend/internal/pipeline"
	"github.com/spendwise/backend/internal/types"
	"gorm.io/gorm"
)

const (
	DefaultTransactionLimit = 30
	DefaultAlertLimit       = 20
	MaxLimit                = 500
)

// ErrValidation marks errors caused by invalid input.
var ErrValidation = errors.New("invalid input")

func validation(err error) error {
	return fmt.Errorf("%w: %w", ErrValidation, err)
}

// Service implements the ledger operations.
type Service struct {
	db       *gorm.DB
	pipeline *pipeline.Orchestrator
}

func New(db *gorm.DB, o *pipeline.Orchestrator) *Service {
	return &Service{db: db, pipeline: o}
}

// Month parses a "YYYY-MM" month in the ledger location. An empty string
// is the current month.
func (s *Service) Month(value string) (types.Month, error) {
	if strings.TrimSpace(value) == "" {
		return types.MonthOf(s.pipeline.Now()), nil
	}

	m, err := types.ParseMonth(value, s.pipeline.Location())
	if err != nil {
		return types.Month{}, validation(err)
	}

	return m, nil
}

func checkLimit(limit int) error {
	if limit < 1 || limit > MaxLimit {
		return validation(fmt.Errorf("limit must be between 1 and %d", MaxLimit))
	}
	return nil
}

// SubmitMessage runs the pipeline for a message.
func (s *Service) SubmitMessage(ctx context.Context, text string) (pipeline.Result, error) {
	result, err := s.pipeline.Process(ctx, text)
	if errors.Is(err, parser.ErrEmptyMessage) || errors.Is(err, parser.ErrMessageTooLong) {
		return result, validation(err)
	}

	return result, err
}

// Parse parses and categorizes a message without storing it.
func (s *Service) Parse(ctx context.Context, text string) (parser.Candidate, category.Category, error) {
	candidate, c, err := s.pipeline.Parse(ctx, text)
	if errors.Is(err, parser.ErrEmptyMessage) || errors.Is(err, parser.ErrMessageTooLong) {
		return candidate, c, validation(err)
	}

	return candidate, c, err
}

// ListTransactions returns the most recent transactions first.
func (s *Service) ListTransactions(ctx context.Context, limit int) ([]models.Transaction, error) {
	if err := checkLimit(limit); err != nil {
		return nil, err
	}

	transactions := []models.Transaction{}
	err := s.db.WithContext(ctx).Order("date DESC, created_at DESC").Limit(limit).Find(&transactions).Error
	return transactions, err
}

// DeleteTransaction removes a transaction for good.
func (s *Service) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	return s.pipeline.Delete(ctx, id)
}

// ListAlerts returns the most recent alerts first.
func (s *Service) ListAlerts(ctx context.Context, limit int) ([]models.Alert, error) {
	if err := checkLimit(limit); err != nil {
		return nil, err
	}

	alerts := []models.Alert{}
	err := s.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&alerts).Error
	return alerts, err
}

// Budgets returns all configured budgets.
func (s *Service) Budgets(ctx context.Context) ([]models.Budget, error) {
	budgets, err := models.Budgets(s.db.WithContext(ctx))
	if budgets == nil {
		budgets = []models.Budget{}
	}
	return budgets, err
}

// SetBudget creates or replaces the budget of a category.
func (s *Service) SetBudget(ctx context.Context, name string, limit decimal.Decimal) (models.Budget, error) {
	c, err := category.Parse(name)
	if err != nil {
		return models.Budget{}, validation(err)
	}

	if !limit.IsPositive() {
		return models.Budget{}, validation(models.ErrBudgetLimitNotPositive)
	}

	return models.UpsertBudget(s.db.WithContext(ctx), c, limit)
}

// Summary is the spend of a month by category.
type Summary struct {
	Month           types.Month               `json:"month" example:"2025-02"`
	MonthlyTotal    decimal.Decimal           `json:"monthly_total" example:"4350.5"`
	CategorySummary []insight.CategorySummary `json:"category_summary"`
}

// Summary computes the summary of a month from the stored transactions.
func (s *Service) Summary(ctx context.Context, m types.Month) (Summary, error) {
	transactions, err := models.TransactionsInMonth(s.db.WithContext(ctx), m)
	if err != nil {
		return Summary{}, err
	}

	aggregate := insight.Aggregate(transactions)
	return Summary{
		Month:           m,
		MonthlyTotal:    aggregate.Total,
		CategorySummary: aggregate.Categories,
	}, nil
}

// Stats are statistics about the transactions and alerts of a month.
type Stats struct {
	Month            types.Month     `json:"month" example:"2025-02"`
	TransactionCount int             `json:"transaction_count" example:"12"`
	AvgTransaction   decimal.Decimal `json:"avg_transaction" example:"362.54"`
	MaxTransaction   decimal.Decimal `json:"max_transaction" example:"1299"`
	AlertCount       int64           `json:"alert_count" example:"1"`
}

// Stats computes the statistics of a month.
func (s *Service) Stats(ctx context.Context, m types.Month) (Stats, error) {
	db := s.db.WithContext(ctx)

	transactions, err := models.TransactionsInMonth(db, m)
	if err != nil {
		return Stats{}, err
	}

	alerts, err := models.AlertsInMonth(db, m)
	if err != nil {
		return Stats{}, err
	}

	aggregate := insight.Aggregate(transactions)
	return Stats{
		Month:            m,
		TransactionCount: aggregate.Count,
		AvgTransaction:   aggregate.Mean.Round(2),
		MaxTransaction:   aggregate.Max,
		AlertCount:       alerts,
	}, nil
}

type exportRow struct {
	ID            string `csv:"id"`
	Date          string `csv:"date"`
	Amount        string `csv:"amount"`
	Merchant      string `csv:"merchant"`
	Category      string `csv:"category"`
	PaymentMode   string `csv:"payment_mode"`
	AccountSuffix string `csv:"account_suffix"`
	Bank          string `csv:"bank"`
}

// ExportTransactions writes the transactions of a month as CSV.
func (s *Service) ExportTransactions(ctx context.Context, m types.Month, w io.Writer) error {
	transactions, err := models.TransactionsInMonth(s.db.WithContext(ctx), m)
	if err != nil {
		return err
	}

	rows := make([]exportRow, 0, len(transactions))
	for _, t := range transactions {
		rows = append(rows, exportRow{
			ID:            t.ID.String(),
			Date:          t.Date.In(s.pipeline.Location()).Format(time.DateOnly),
			Amount:        t.Amount.String(),
			Merchant:      t.Merchant,
			Category:      string(t.Category),
			PaymentMode:   string(t.PaymentMode),
			AccountSuffix: t.AccountSuffix,
			Bank:          t.Bank,
		})
	}

	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("writing CSV: %w", err)
	}

	return nil
}

// MatchRuleEditable are the fields of a match rule a client can set.
type MatchRuleEditable struct {
	Priority uint   `json:"priority" example:"1"`
	Match    string `json:"match" example:"*swiggy*"`
	Category string `json:"category" example:"Food"`
}

// MatchRules returns all match rules in the order they are applied.
func (s *Service) MatchRules(ctx context.Context) ([]models.MatchRule, error) {
	rules, err := models.MatchRules(s.db.WithContext(ctx))
	if rules == nil {
		rules = []models.MatchRule{}
	}
	return rules, err
}

// CreateMatchRule stores a new match rule.
func (s *Service) CreateMatchRule(ctx context.Context, editable MatchRuleEditable) (models.MatchRule, error) {
	c, err := category.Parse(editable.Category)
	if err != nil {
		return models.MatchRule{}, validation(err)
	}

	if strings.TrimSpace(editable.Match) == "" {
		return models.MatchRule{}, validation(models.ErrMatchRuleEmpty)
	}

	rule := models.MatchRule{
		Priority: editable.Priority,
		Match:    editable.Match,
		Category: c,
	}

	err = s.db.WithContext(ctx).Create(&rule).Error
	return rule, err
}

// DeleteMatchRule removes a match rule.
func (s *Service) DeleteMatchRule(ctx context.Context, id uuid.UUID) error {
	db := s.db.WithContext(ctx)

	var rule models.MatchRule
	if err := db.First(&rule, models.MatchRule{DefaultModel: models.DefaultModel{ID: id}}).Error; err != nil {
		return err
	}

	return db.Delete(&rule).Error
}
