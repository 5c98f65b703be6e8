// Package controllers contains the HTTP handlers of the API.
package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/spendwise/backend/internal/events"
	"github.com/spendwise/backend/internal/ledger"
)

// Controller holds the dependencies of all handlers.
type Controller struct {
	Ledger *ledger.Service

	// Broker feeds the stage event stream. If nil, the stream is not served.
	Broker *events.Broker
}

// RegisterRoutes registers all routes of the controller with the
// RouterGroup that is passed.
func (co Controller) RegisterRoutes(r *gin.RouterGroup) {
	co.RegisterSMSRoutes(r.Group("/process-sms"))
	co.RegisterTransactionRoutes(r.Group("/transactions"))
	co.RegisterAlertRoutes(r.Group("/alerts"))
	co.RegisterBudgetRoutes(r.Group("/budgets"))
	co.RegisterMatchRuleRoutes(r.Group("/match-rules"))
	co.RegisterReportRoutes(r)

	if co.Broker != nil {
		co.RegisterEventRoutes(r.Group("/events"))
	}
}
