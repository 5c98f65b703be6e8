package categorizer

import (
	"context"

	"github.com/ryanuber/go-glob"
	"github.com/spendwise/backend/internal/category"
	"github.com/spendwise/backend/internal/models"
	"gorm.io/gorm"
)

// RuleStrategy applies the user defined match rules to the merchant.
//
// Rules are loaded on every call so that changes apply to the next message.
type RuleStrategy struct {
	db *gorm.DB
}

func NewRuleStrategy(db *gorm.DB) *RuleStrategy {
	return &RuleStrategy{db: db}
}

func (s *RuleStrategy) Name() string {
	return "match-rule"
}

func (s *RuleStrategy) Categorize(ctx context.Context, in Input) (category.Category, bool, error) {
	rules, err := models.MatchRules(s.db.WithContext(ctx))
	if err != nil {
		return "", false, err
	}

	merchant := category.Fold(in.Merchant)
	for _, rule := range rules {
		// Rules are loaded in priority order, so the first match wins
		if glob.Glob(category.Fold(rule.Match), merchant) {
			return rule.Category, true, nil
		}
	}

	return "", false, nil
}
