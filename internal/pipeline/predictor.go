package pipeline

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spendwise/backend/internal/category"
	"github.com/spendwise/backend/internal/insight"
	"github.com/spendwise/backend/internal/types"
)

var ErrPredictionSkipped = errors.New("prediction skipped, no part of the month has elapsed")

// Projection is the expected month end spend of a category.
type Projection struct {
	Category    category.Category `json:"category" example:"Food"`
	MonthToDate decimal.Decimal   `json:"month_to_date" example:"800"`
	Projected   decimal.Decimal   `json:"projected" example:"1600"`
	Budget      *decimal.Decimal  `json:"budget,omitempty" example:"1000"`
	OverBudget  bool              `json:"over_budget"`
}

// Forecast holds the projections for a month.
type Forecast struct {
	Month               types.Month     `json:"month" example:"2025-02"`
	ElapsedFraction     decimal.Decimal `json:"elapsed_fraction" example:"0.5"`
	Projections         []Projection    `json:"projections"`
	NextExpenseEstimate decimal.Decimal `json:"next_expense_estimate" example:"362.54"`
}

// Predict projects the month to date spend of every category to the end of
// the month at the current velocity.
func Predict(summary insight.Summary, month types.Month, now time.Time, budgets map[category.Category]decimal.Decimal) (Forecast, error) {
	fraction := month.ElapsedFraction(now)
	if !fraction.IsPositive() {
		return Forecast{}, ErrPredictionSkipped
	}

	f := Forecast{
		Month:               month,
		ElapsedFraction:     fraction.Round(4),
		Projections:         make([]Projection, 0, len(summary.Categories)),
		NextExpenseEstimate: summary.Mean.Round(2),
	}

	for _, cs := range summary.Categories {
		p := Projection{
			Category:    cs.Name,
			MonthToDate: cs.Amount,
			Projected:   cs.Amount.Div(fraction).Round(2),
		}

		if limit, ok := budgets[cs.Name]; ok {
			p.Budget = &limit
			p.OverBudget = p.Projected.GreaterThan(limit)
		}

		f.Projections = append(f.Projections, p)
	}

	return f, nil
}
