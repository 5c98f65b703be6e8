package controllers_test

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/spendwise/backend/internal/controllers"
	"github.com/spendwise/backend/internal/ledger"
	"github.com/spendwise/backend/test"
)

func (suite *TestSuiteStandard) TestGetTransactions() {
	suite.submit("INR 100 debited to Swiggy on 2025-02-01")
	suite.submit("INR 200 debited to Uber on 2025-02-10")
	suite.submit("INR 300 debited to Amazon on 2025-02-05")

	r := suite.request(http.MethodGet, "/transactions?limit=2", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response controllers.TransactionListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Require().Len(response.Transactions, 2)
	suite.Assert().Equal("Uber", response.Transactions[0].Merchant)
	suite.Assert().Equal("Amazon", response.Transactions[1].Merchant)

	r = suite.request(http.MethodGet, "/transactions", nil)
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Len(response.Transactions, 3)
}

func (suite *TestSuiteStandard) TestGetTransactionsLimit() {
	for _, limit := range []string{"0", "-5", "501", "ten"} {
		suite.Run(limit, func() {
			r := suite.request(http.MethodGet, "/transactions?limit="+limit, nil)
			test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
		})
	}

	r := suite.request(http.MethodGet, "/transactions?limit=500", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	suite.Assert().Equal(500, ledger.MaxLimit)
}

func (suite *TestSuiteStandard) TestDeleteTransaction() {
	kept := suite.submit("INR 100 debited to Swiggy")
	deleted := suite.submit("INR 250 debited to Zomato")

	r := suite.request(http.MethodDelete, "/transactions/"+deleted.Transaction.ID.String(), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = suite.request(http.MethodGet, "/transactions", nil)
	var response controllers.TransactionListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Require().Len(response.Transactions, 1)
	suite.Assert().Equal(kept.Transaction.ID, response.Transactions[0].ID)

	r = suite.request(http.MethodDelete, "/transactions/"+deleted.Transaction.ID.String(), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
	suite.Assert().Equal("there is no transaction matching your query", test.DecodeError(suite.T(), &r))

	r = suite.request(http.MethodDelete, "/transactions/not-a-uuid", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
	suite.Assert().Contains(test.DecodeError(suite.T(), &r), "not a valid UUID")
}

func (suite *TestSuiteStandard) TestExportTransactions() {
	suite.submit("INR 349.00 debited from A/c XX4521 via UPI to Zomato on 24-02-25. Avail Bal: 24,651 -HDFC")
	suite.submit("INR 80 debited for Rapido on 2025-01-28")

	r := suite.request(http.MethodGet, "/transactions/export?month=2025-02", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	suite.Assert().Contains(r.Header().Get("Content-Type"), "text/csv")
	suite.Assert().Contains(r.Header().Get("Content-Disposition"), "transactions-2025-02.csv")

	lines := strings.Split(strings.TrimSpace(r.Body.String()), "\n")
	suite.Require().Len(lines, 2)
	suite.Assert().Contains(lines[1], "Zomato")

	r = suite.request(http.MethodGet, "/transactions/export?month=02-2025", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestOptionsTransactions() {
	tests := []struct {
		path   string
		status int
		allow  string
	}{
		{"/transactions", http.StatusNoContent, "OPTIONS, GET"},
		{"/transactions/export", http.StatusNoContent, "OPTIONS, GET"},
		{"/transactions/" + uuid.New().String(), http.StatusNoContent, "OPTIONS, DELETE"},
		{"/transactions/nope", http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		suite.Run(tt.path, func() {
			r := suite.request(http.MethodOptions, tt.path, nil)
			test.AssertHTTPStatus(suite.T(), &r, tt.status)
			suite.Assert().Equal(tt.allow, r.Header().Get("allow"))
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionsDatabaseError() {
	suite.CloseDB()

	r := suite.request(http.MethodGet, "/transactions", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)
}
