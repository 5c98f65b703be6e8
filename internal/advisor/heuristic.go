package advisor

import (
	"context"
	"fmt"
	"strings"
)

// Heuristic gives fixed advice based on alerts and projections.
type Heuristic struct{}

func (Heuristic) Advise(_ context.Context, req Request) (string, error) {
	var advice []string

	if len(req.Alerts) > 0 {
		advice = append(advice, fmt.Sprintf("You are over your %s budget for this month. Hold off on non-essential %s spending until the month ends.", req.Category, strings.ToLower(string(req.Category))))
	}

	for _, p := range req.Projections {
		// Already covered by the alert
		if !p.Over() || (len(req.Alerts) > 0 && p.Category == req.Category) {
			continue
		}

		over := p.Projected.Sub(p.Limit)
		advice = append(advice, fmt.Sprintf("At the current pace %s will reach %s against a budget of %s. Cut back by about %s to stay within it.", p.Category, p.Projected.StringFixed(2), p.Limit.StringFixed(2), over.StringFixed(2)))
	}

	if len(advice) == 0 {
		return "", nil
	}

	return strings.Join(advice, " "), nil
}
