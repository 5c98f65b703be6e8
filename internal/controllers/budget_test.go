package controllers_test

import (
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/spendwise/backend/internal/category"
	"github.com/spendwise/backend/internal/controllers"
	"github.com/spendwise/backend/test"
)

func (suite *TestSuiteStandard) TestSetBudget() {
	r := suite.request(http.MethodPost, "/budgets", map[string]any{"category": "food", "monthly_limit": 5000})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response controllers.BudgetResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal(category.Food, response.Budget.Category)
	suite.Assert().True(decimal.NewFromInt(5000).Equal(response.Budget.MonthlyLimit))

	// Setting it again replaces the limit
	r = suite.request(http.MethodPost, "/budgets", map[string]any{"category": "Food", "monthly_limit": "7500.50"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = suite.request(http.MethodGet, "/budgets", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var list controllers.BudgetListResponse
	test.DecodeResponse(suite.T(), &r, &list)
	suite.Require().Len(list.Budgets, 1)
	suite.Assert().True(decimal.RequireFromString("7500.5").Equal(list.Budgets[0].MonthlyLimit))
}

func (suite *TestSuiteStandard) TestSetBudgetFailures() {
	tests := []struct {
		name   string
		body   any
		detail string
	}{
		{"Unknown category", map[string]any{"category": "Groceries", "monthly_limit": 10}, "Groceries"},
		{"Zero limit", map[string]any{"category": "Food", "monthly_limit": 0}, "greater than zero"},
		{"Negative limit", map[string]any{"category": "Food", "monthly_limit": -10}, "greater than zero"},
		{"Missing category", map[string]any{"monthly_limit": 10}, "Category is required"},
		{"Empty body", "", "request body must not be empty"},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			r := suite.request(http.MethodPost, "/budgets", tt.body)
			test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
			suite.Assert().Contains(test.DecodeError(suite.T(), &r), tt.detail)
		})
	}
}

func (suite *TestSuiteStandard) TestGetBudgetsEmpty() {
	r := suite.request(http.MethodGet, "/budgets", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	suite.Assert().JSONEq(`{"budgets": []}`, r.Body.String())
}

func (suite *TestSuiteStandard) TestOptionsBudgets() {
	r := suite.request(http.MethodOptions, "/budgets", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	suite.Assert().Equal("OPTIONS, GET, POST", r.Header().Get("allow"))
}
