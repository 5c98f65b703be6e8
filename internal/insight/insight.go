// Package insight aggregates the transactions of a month.
package insight

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spendwise/backend/internal/category"
	"github.com/spendwise/backend/internal/models"
	"golang.org/x/exp/slices"
)

// CategorySummary is the spend of one category in the month.
type CategorySummary struct {
	Name   category.Category `json:"name" example:"Food"`
	Amount decimal.Decimal   `json:"amount" example:"1200"`
}

// Summary is derived from the transactions of one month and never stored.
type Summary struct {
	Categories []CategorySummary `json:"category_summary"`
	Total      decimal.Decimal   `json:"monthly_total" example:"4350.5"`
	Count      int               `json:"transaction_count" example:"12"`
	Mean       decimal.Decimal   `json:"avg_transaction" example:"362.54"`
	Max        decimal.Decimal   `json:"max_transaction" example:"1299"`
}

// Aggregate computes the Summary of transactions in a single pass.
//
// Categories are sorted by amount, largest first, ties by name.
func Aggregate(transactions []models.Transaction) Summary {
	s := Summary{
		Categories: []CategorySummary{},
		Total:      decimal.Zero,
		Mean:       decimal.Zero,
		Max:        decimal.Zero,
	}

	totals := make(map[category.Category]decimal.Decimal)
	for _, t := range transactions {
		totals[t.Category] = totals[t.Category].Add(t.Amount)
		s.Total = s.Total.Add(t.Amount)
		s.Count++

		if t.Amount.GreaterThan(s.Max) {
			s.Max = t.Amount
		}
	}

	for name, amount := range totals {
		s.Categories = append(s.Categories, CategorySummary{Name: name, Amount: amount})
	}

	slices.SortFunc(s.Categories, func(a, b CategorySummary) int {
		if c := b.Amount.Cmp(a.Amount); c != 0 {
			return c
		}
		return strings.Compare(string(a.Name), string(b.Name))
	})

	if s.Count > 0 {
		s.Mean = s.Total.Div(decimal.NewFromInt(int64(s.Count)))
	}

	return s
}

// Amount returns the amount of a category, zero if it has no transactions.
func (s Summary) Amount(c category.Category) decimal.Decimal {
	for _, cs := range s.Categories {
		if cs.Name == c {
			return cs.Amount
		}
	}
	return decimal.Zero
}

// Sentences returns short human readable insights for the summary.
//
// Income is not spending and is left out of the highest category.
func (s Summary) Sentences() []string {
	sentences := []string{}

	var spend decimal.Decimal
	for _, cs := range s.Categories {
		if cs.Name != category.Income {
			spend = spend.Add(cs.Amount)
		}
	}

	for _, cs := range s.Categories {
		if cs.Name == category.Income || !spend.IsPositive() {
			continue
		}

		share := cs.Amount.Div(spend).Mul(decimal.NewFromInt(100)).Round(0)
		sentences = append(sentences, fmt.Sprintf("Highest spending category is %s (%s%% of spending this month)", cs.Name, share))
		break
	}

	if s.Count > 0 {
		sentences = append(sentences, fmt.Sprintf("%d transactions this month, %s on average", s.Count, s.Mean.StringFixed(2)))
	}

	return sentences
}
