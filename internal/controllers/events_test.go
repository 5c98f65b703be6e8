package controllers_test

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"time"

	"github.com/spendwise/backend/internal/controllers"
	"github.com/spendwise/backend/internal/events"
	"github.com/spendwise/backend/internal/pipeline"
	"github.com/spendwise/backend/internal/router"
	"github.com/spendwise/backend/test"
)

func (suite *TestSuiteStandard) TestStreamEvents() {
	u, _ := url.Parse(test.BaseURL)
	r, teardown, err := router.Config(u, router.Options{})
	suite.Require().Nil(err)
	defer teardown()
	router.AttachRoutes(suite.controller, r.Group("/"), router.Options{})

	server := httptest.NewServer(r)
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Submit a message as soon as the stream is subscribed
	go func() {
		for suite.controller.Broker.Len() == 0 {
			select {
			case <-ctx.Done():
				return
			case <-time.After(5 * time.Millisecond):
			}
		}

		_, _ = suite.controller.Ledger.SubmitMessage(ctx, "INR 99 debited to Netflix")
	}()

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"/events", nil)
	resp, err := http.DefaultClient.Do(req)
	suite.Require().Nil(err)
	defer resp.Body.Close()

	suite.Assert().Equal(http.StatusOK, resp.StatusCode)
	suite.Assert().Contains(resp.Header.Get("Content-Type"), "text/event-stream")

	var stages []string
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data:") {
			continue
		}

		var e events.Event
		suite.Require().Nil(json.Unmarshal([]byte(strings.TrimPrefix(line, "data:")), &e))
		stages = append(stages, e.Stage)

		if e.Stage == string(pipeline.StateDone) {
			break
		}
	}

	suite.Require().NotEmpty(stages)
	suite.Assert().Equal(string(pipeline.StateReceived), stages[0])
	suite.Assert().Equal(string(pipeline.StateDone), stages[len(stages)-1])
}

func (suite *TestSuiteStandard) TestStreamEventsWithoutBroker() {
	co := controllers.Controller{Ledger: suite.controller.Ledger}

	r := test.Request(suite.T(), co, http.MethodGet, "/events", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestOptionsEvents() {
	r := suite.request(http.MethodOptions, "/events", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	suite.Assert().Equal("OPTIONS, GET", r.Header().Get("allow"))
}
