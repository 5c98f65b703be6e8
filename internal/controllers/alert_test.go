package controllers_test

import (
	"net/http"

	"github.com/spendwise/backend/internal/category"
	"github.com/spendwise/backend/internal/controllers"
	"github.com/spendwise/backend/test"
)

func (suite *TestSuiteStandard) TestGetAlerts() {
	r := suite.request(http.MethodPost, "/budgets", map[string]any{"category": "Transport", "monthly_limit": 100})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	suite.submit("INR 80 debited to Uber")
	suite.submit("INR 80 debited to Ola")
	suite.submit("INR 80 debited to Rapido")

	r = suite.request(http.MethodGet, "/alerts", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response controllers.AlertListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Require().Len(response.Alerts, 2)
	suite.Assert().Equal(category.Transport, response.Alerts[0].Category)

	r = suite.request(http.MethodGet, "/alerts?limit=1", nil)
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Len(response.Alerts, 1)

	r = suite.request(http.MethodGet, "/alerts?limit=0", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestOptionsAlerts() {
	r := suite.request(http.MethodOptions, "/alerts", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	suite.Assert().Equal("OPTIONS, GET", r.Header().Get("allow"))
}
