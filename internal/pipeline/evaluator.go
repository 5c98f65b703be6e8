package pipeline

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spendwise/backend/internal/models"
	"github.com/spendwise/backend/internal/types"
)

// Evaluation is the result of comparing the month to date spend of a
// category with its budget.
type Evaluation struct {
	Exceeded  bool            `json:"exceeded"`
	NewTotal  decimal.Decimal `json:"new_total" example:"1200"`
	Limit     decimal.Decimal `json:"limit" example:"1000"`
	HasBudget bool            `json:"has_budget"`
}

// Over is the amount by which the total exceeds the limit.
func (e Evaluation) Over() decimal.Decimal {
	if !e.Exceeded {
		return decimal.Zero
	}
	return e.NewTotal.Sub(e.Limit)
}

// Evaluate adds amount to the prior total of the month. Without a budget
// the total is never exceeded.
func Evaluate(amount, priorTotal decimal.Decimal, budget *models.Budget) Evaluation {
	e := Evaluation{
		NewTotal: priorTotal.Add(amount),
		Limit:    decimal.Zero,
	}

	if budget != nil {
		e.HasBudget = true
		e.Limit = budget.MonthlyLimit
		e.Exceeded = e.NewTotal.GreaterThan(budget.MonthlyLimit)
	}

	return e
}

// NewAlert returns the alert for the transaction when the evaluation
// exceeded the budget.
func NewAlert(t models.Transaction, e Evaluation, month types.Month) (models.Alert, bool) {
	if !e.Exceeded {
		return models.Alert{}, false
	}

	return models.Alert{
		Message:       AlertMessage(t, e),
		Category:      t.Category,
		Severity:      models.SeverityBudgetExceeded,
		Month:         month,
		MonthTotal:    e.NewTotal,
		BudgetLimit:   e.Limit,
		TransactionID: t.ID,
	}, true
}

// AlertMessage is the human readable text of an alert.
func AlertMessage(t models.Transaction, e Evaluation) string {
	return fmt.Sprintf("You exceeded your %s budget: spent %s of %s this month (%s over).",
		t.Category, e.NewTotal.StringFixed(2), e.Limit.StringFixed(2), e.Over().StringFixed(2))
}
