package models_test

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spendwise/backend/internal/category"
	"github.com/spendwise/backend/internal/models"
	"github.com/spendwise/backend/internal/types"
)

func (suite *TestSuiteStandard) TestUpsertBudgetReplacesLimit() {
	first, err := models.UpsertBudget(models.DB, category.Food, decimal.NewFromInt(1000))
	suite.Require().Nil(err)

	second, err := models.UpsertBudget(models.DB, category.Food, decimal.NewFromInt(2500))
	suite.Require().Nil(err)

	suite.Assert().Equal(first.ID, second.ID)
	suite.Assert().True(decimal.NewFromInt(2500).Equal(second.MonthlyLimit))

	var count int64
	suite.Require().Nil(models.DB.Model(&models.Budget{}).Count(&count).Error)
	suite.Assert().Equal(int64(1), count)
}

func (suite *TestSuiteStandard) TestUpsertBudgetRejectsNonPositive() {
	_, err := models.UpsertBudget(models.DB, category.Food, decimal.Zero)
	suite.Assert().ErrorIs(err, models.ErrBudgetLimitNotPositive)

	_, err = models.UpsertBudget(models.DB, category.Food, decimal.NewFromInt(-5))
	suite.Assert().ErrorIs(err, models.ErrBudgetLimitNotPositive)
}

func (suite *TestSuiteStandard) TestBudgetFor() {
	_, ok, err := models.BudgetFor(models.DB, category.Health)
	suite.Require().Nil(err)
	suite.Assert().False(ok)

	_, err = models.UpsertBudget(models.DB, category.Health, decimal.NewFromInt(700))
	suite.Require().Nil(err)

	budget, ok, err := models.BudgetFor(models.DB, category.Health)
	suite.Require().Nil(err)
	suite.Assert().True(ok)
	suite.Assert().True(decimal.NewFromInt(700).Equal(budget.MonthlyLimit))
}

func (suite *TestSuiteStandard) TestAlertsInMonth() {
	for _, m := range []types.Month{types.NewMonth(2025, 2), types.NewMonth(2025, 2), types.NewMonth(2025, 3)} {
		alert := models.Alert{
			Message:       "test",
			Category:      category.Food,
			Severity:      models.SeverityBudgetExceeded,
			Month:         m,
			MonthTotal:    decimal.NewFromInt(2),
			BudgetLimit:   decimal.NewFromInt(1),
			TransactionID: uuid.New(),
		}
		suite.Require().Nil(models.DB.Create(&alert).Error)
	}

	count, err := models.AlertsInMonth(models.DB, types.NewMonth(2025, 2))
	suite.Require().Nil(err)
	suite.Assert().Equal(int64(2), count)

	count, err = models.AlertsInMonth(models.DB, types.MonthOf(time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC)))
	suite.Require().Nil(err)
	suite.Assert().Equal(int64(0), count)
}

func (suite *TestSuiteStandard) TestMatchRulesOrdered() {
	for _, r := range []models.MatchRule{
		{Priority: 5, Match: "*uber*", Category: category.Transport},
		{Priority: 1, Match: "*swiggy*", Category: category.Food},
	} {
		suite.Require().Nil(models.DB.Create(&r).Error)
	}

	rules, err := models.MatchRules(models.DB)
	suite.Require().Nil(err)
	suite.Require().Len(rules, 2)
	suite.Assert().Equal("*swiggy*", rules[0].Match)

	err = models.DB.Create(&models.MatchRule{Match: "  ", Category: category.Food}).Error
	suite.Assert().ErrorIs(err, models.ErrMatchRuleEmpty)
}
