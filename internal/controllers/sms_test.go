package controllers_test

import (
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/spendwise/backend/internal/category"
	"github.com/spendwise/backend/internal/controllers"
	"github.com/spendwise/backend/internal/pipeline"
	"github.com/spendwise/backend/test"
)

func (suite *TestSuiteStandard) TestProcessSMS() {
	response := suite.submit("Dear Customer, INR 499.00 debited ... to Swiggy ...")

	suite.Assert().True(response.OK)
	suite.Require().NotNil(response.Result)
	suite.Assert().True(decimal.NewFromInt(499).Equal(response.Transaction.Amount))
	suite.Assert().Equal(category.Food, response.Transaction.Category)
	suite.Assert().Contains(response.Transaction.Merchant, "Swiggy")
	suite.Assert().Equal(pipeline.StateDone, response.Stages[len(response.Stages)-1])
	suite.Assert().Empty(response.Error)
}

func (suite *TestSuiteStandard) TestProcessSMSMoneyIsANumber() {
	r := suite.request(http.MethodPost, "/process-sms", map[string]string{"sms": "INR 349.50 debited to Zomato"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var raw map[string]any
	test.DecodeResponse(suite.T(), &r, &raw)
	transaction := raw["transaction"].(map[string]any)
	suite.Assert().Equal(349.5, transaction["amount"])
	suite.Assert().Equal(true, raw["ok"])
}

func (suite *TestSuiteStandard) TestProcessSMSAlert() {
	r := suite.request(http.MethodPost, "/budgets", map[string]any{"category": "Food", "monthly_limit": 1000})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	first := suite.submit("INR 400 debited to Swiggy")
	second := suite.submit("INR 400 debited to Swiggy")
	third := suite.submit("INR 400 debited to Swiggy")

	suite.Assert().Nil(first.Alert)
	suite.Assert().Nil(second.Alert)
	suite.Require().NotNil(third.Alert)
	suite.Assert().Equal("You exceeded your Food budget: spent 1200.00 of 1000.00 this month (200.00 over).", third.Alert.Message)
	suite.Assert().NotEmpty(third.Advisor)
}

func (suite *TestSuiteStandard) TestProcessSMSFailures() {
	tests := []struct {
		name   string
		body   any
		status int
		detail string
	}{
		{"No amount", map[string]string{"sms": "Your OTP for login is valid for ten minutes"}, http.StatusUnprocessableEntity, "no amount found"},
		{"Blank message", map[string]string{"sms": "   "}, http.StatusBadRequest, "must not be empty"},
		{"Empty body", "", http.StatusBadRequest, "request body must not be empty"},
		{"Broken JSON", `{ "sms": `, http.StatusBadRequest, "invalid or un-parseable data"},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			r := suite.request(http.MethodPost, "/process-sms", tt.body)
			test.AssertHTTPStatus(suite.T(), &r, tt.status)

			var response controllers.SubmitResponse
			test.DecodeResponse(suite.T(), &r, &response)
			suite.Assert().False(response.OK)
			suite.Assert().Nil(response.Result)
			suite.Assert().Contains(response.Error, tt.detail)
			suite.Assert().Equal(response.Error, response.Detail)
		})
	}

	r := suite.request(http.MethodGet, "/transactions", nil)
	var list controllers.TransactionListResponse
	test.DecodeResponse(suite.T(), &r, &list)
	suite.Assert().Len(list.Transactions, 0)
}

func (suite *TestSuiteStandard) TestProcessSMSDatabaseError() {
	suite.CloseDB()

	r := suite.request(http.MethodPost, "/process-sms", map[string]string{"sms": "INR 99 debited to Netflix"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)
}

func (suite *TestSuiteStandard) TestOptionsSMS() {
	r := suite.request(http.MethodOptions, "/process-sms", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	suite.Assert().Equal("OPTIONS, POST", r.Header().Get("allow"))
}
