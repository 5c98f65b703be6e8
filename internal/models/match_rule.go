package models

import (
	"strings"

	"github.com/spendwise/backend/internal/category"
	"gorm.io/gorm"
)

// MatchRule maps merchants matching a glob pattern to a category.
//
// Rules are evaluated by ascending priority before the keyword table.
type MatchRule struct {
	DefaultModel
	Priority uint              `json:"priority" example:"1"`
	Match    string            `json:"match" example:"*swiggy*"`
	Category category.Category `json:"category" example:"Food"`
}

func (r *MatchRule) BeforeSave(_ *gorm.DB) error {
	r.Match = strings.TrimSpace(r.Match)
	if r.Match == "" {
		return ErrMatchRuleEmpty
	}
	return nil
}

// MatchRules returns all match rules ordered by priority.
func MatchRules(db *gorm.DB) ([]MatchRule, error) {
	var rules []MatchRule
	err := db.Order("priority ASC, created_at ASC").Find(&rules).Error
	return rules, err
}
