package controllers_test

import (
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/spendwise/backend/internal/category"
	"github.com/spendwise/backend/internal/controllers"
	"github.com/spendwise/backend/internal/ledger"
	"github.com/spendwise/backend/test"
)

func (suite *TestSuiteStandard) TestGetSummary() {
	suite.submit("INR 400 debited to Swiggy")
	suite.submit("INR 100 debited to Uber")
	deleted := suite.submit("INR 1000 debited to Amazon")
	suite.submit("INR 300 debited to Zomato on 2025-01-20")

	r := suite.request(http.MethodDelete, "/transactions/"+deleted.Transaction.ID.String(), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = suite.request(http.MethodGet, "/summary", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var summary ledger.Summary
	test.DecodeResponse(suite.T(), &r, &summary)
	suite.Assert().Equal("2025-02", summary.Month.String())
	suite.Assert().True(decimal.NewFromInt(500).Equal(summary.MonthlyTotal), summary.MonthlyTotal.String())
	suite.Require().Len(summary.CategorySummary, 2)
	suite.Assert().Equal(category.Food, summary.CategorySummary[0].Name)

	// Reading again without writes gives the same body
	again := suite.request(http.MethodGet, "/summary", nil)
	suite.Assert().Equal(r.Body.String(), again.Body.String())

	r = suite.request(http.MethodGet, "/summary?month=2025-01", nil)
	test.DecodeResponse(suite.T(), &r, &summary)
	suite.Assert().True(decimal.NewFromInt(300).Equal(summary.MonthlyTotal))
	suite.Assert().Equal(category.Food, summary.CategorySummary[0].Name)

	r = suite.request(http.MethodGet, "/summary?month=January", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestGetSummaryEmpty() {
	r := suite.request(http.MethodGet, "/summary", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	suite.Assert().JSONEq(`{"month": "2025-02", "monthly_total": 0, "category_summary": []}`, r.Body.String())
}

func (suite *TestSuiteStandard) TestGetStats() {
	r := suite.request(http.MethodPost, "/budgets", map[string]any{"category": "Food", "monthly_limit": 500})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	suite.submit("INR 400 debited to Swiggy")
	suite.submit("INR 400 debited to Zomato")
	suite.submit("INR 100 debited to Uber")

	r = suite.request(http.MethodGet, "/stats", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	suite.Assert().JSONEq(`{
		"month": "2025-02",
		"transaction_count": 3,
		"avg_transaction": 300,
		"max_transaction": 400,
		"alert_count": 1
	}`, r.Body.String())

	r = suite.request(http.MethodGet, "/stats?month=2025-13", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestOptionsReports() {
	for _, path := range []string{"/summary", "/stats"} {
		r := suite.request(http.MethodOptions, path, nil)
		test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
		suite.Assert().Equal("OPTIONS, GET", r.Header().Get("allow"))
	}
}

func (suite *TestSuiteStandard) TestMethodNotAllowed() {
	r := suite.request(http.MethodPut, "/summary", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusMethodNotAllowed)
	suite.Assert().Contains(test.DecodeError(suite.T(), &r), "not allowed")

	var response controllers.SubmitResponse
	r = suite.request(http.MethodGet, "/process-sms", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusMethodNotAllowed)
	test.DecodeResponse(suite.T(), &r, &response)
}
