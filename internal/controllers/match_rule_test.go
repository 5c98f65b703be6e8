package controllers_test

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/spendwise/backend/internal/category"
	"github.com/spendwise/backend/internal/controllers"
	"github.com/spendwise/backend/test"
)

func (suite *TestSuiteStandard) TestMatchRules() {
	r := suite.request(http.MethodPost, "/match-rules", map[string]any{"match": "*corner*", "category": "shopping", "priority": 1})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var created controllers.MatchRuleResponse
	test.DecodeResponse(suite.T(), &r, &created)
	suite.Assert().Equal(category.Shopping, created.MatchRule.Category)

	// The rule is applied to new messages
	response := suite.submit("INR 42 debited to Corner Store")
	suite.Assert().Equal(category.Shopping, response.Transaction.Category)

	r = suite.request(http.MethodGet, "/match-rules", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var list controllers.MatchRuleListResponse
	test.DecodeResponse(suite.T(), &r, &list)
	suite.Require().Len(list.MatchRules, 1)
	suite.Assert().Equal("*corner*", list.MatchRules[0].Match)

	r = suite.request(http.MethodDelete, "/match-rules/"+created.MatchRule.ID.String(), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = suite.request(http.MethodDelete, "/match-rules/"+created.MatchRule.ID.String(), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestCreateMatchRuleFailures() {
	tests := []struct {
		name string
		body any
	}{
		{"Empty match", map[string]any{"match": " ", "category": "Food"}},
		{"Unknown category", map[string]any{"match": "*x*", "category": "Nope"}},
		{"Negative priority", map[string]any{"match": "*x*", "category": "Food", "priority": -1}},
		{"Broken JSON", `{"match": `},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			r := suite.request(http.MethodPost, "/match-rules", tt.body)
			test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestOptionsMatchRules() {
	r := suite.request(http.MethodOptions, "/match-rules", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	suite.Assert().Equal("OPTIONS, GET, POST", r.Header().Get("allow"))

	r = suite.request(http.MethodOptions, "/match-rules/"+uuid.New().String(), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	suite.Assert().Equal("OPTIONS, DELETE", r.Header().Get("allow"))

	r = suite.request(http.MethodOptions, "/match-rules/nope", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}
