// Package advisor produces short budgeting advice.
//
// Advice is optional. Every implementation may fail with ErrUnavailable and
// callers are expected to carry on without advice in that case.
package advisor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spendwise/backend/internal/category"
	"golang.org/x/sync/semaphore"
)

var ErrUnavailable = errors.New("advisor unavailable")

// Projection is the projected month end spend of a category.
type Projection struct {
	Category  category.Category
	Projected decimal.Decimal
	Limit     decimal.Decimal
}

// Over reports if the projection exceeds the limit.
func (p Projection) Over() bool {
	return p.Limit.IsPositive() && p.Projected.GreaterThan(p.Limit)
}

// Request is what the advice is based on.
type Request struct {
	Category    category.Category
	Alerts      []string
	Insights    []string
	Projections []Projection
}

// Advisor generates advice for a request.
type Advisor interface {
	Advise(ctx context.Context, req Request) (string, error)
}

// Disabled never gives advice.
type Disabled struct{}

func (Disabled) Advise(context.Context, Request) (string, error) {
	return "", fmt.Errorf("%w: advice is disabled", ErrUnavailable)
}

// Bounded limits the number of concurrent calls to an Advisor. Callers that
// cannot get a slot before their context ends get ErrUnavailable.
type Bounded struct {
	advisor Advisor
	sem     *semaphore.Weighted
}

func NewBounded(a Advisor, maxConcurrent int64) *Bounded {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}

	return &Bounded{
		advisor: a,
		sem:     semaphore.NewWeighted(maxConcurrent),
	}
}

func (b *Bounded) Advise(ctx context.Context, req Request) (string, error) {
	if err := b.sem.Acquire(ctx, 1); err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer b.sem.Release(1)

	return b.advisor.Advise(ctx, req)
}

// Prompt renders the request for a language model.
func Prompt(req Request) string {
	var b strings.Builder

	b.WriteString("You are a safe financial assistant.\n\n")
	fmt.Fprintf(&b, "Spending category: %s\n", req.Category)
	fmt.Fprintf(&b, "Alerts: %s\n", listOrNone(req.Alerts))
	fmt.Fprintf(&b, "Insights: %s\n", listOrNone(req.Insights))

	projections := make([]string, 0, len(req.Projections))
	for _, p := range req.Projections {
		if p.Limit.IsPositive() {
			projections = append(projections, fmt.Sprintf("%s %s of %s", p.Category, p.Projected.StringFixed(2), p.Limit.StringFixed(2)))
		} else {
			projections = append(projections, fmt.Sprintf("%s %s", p.Category, p.Projected.StringFixed(2)))
		}
	}
	fmt.Fprintf(&b, "Projected month end spend: %s\n\n", listOrNone(projections))

	b.WriteString("Give short budgeting advice.")
	return b.String()
}

func listOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, "; ")
}
