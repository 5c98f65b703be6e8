package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spendwise/backend/internal/httputil"
)

func (co Controller) RegisterReportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/summary", OptionsSummary)
	r.GET("/summary", co.GetSummary)
	r.OPTIONS("/stats", OptionsStats)
	r.GET("/stats", co.GetStats)
}

// OptionsSummary returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Reports
//	@Success		204
//	@Router			/summary [options]
func OptionsSummary(c *gin.Context) {
	httputil.OptionsGet(c)
}

// OptionsStats returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Reports
//	@Success		204
//	@Router			/stats [options]
func OptionsStats(c *gin.Context) {
	httputil.OptionsGet(c)
}

// GetSummary returns the spend of a month
//
//	@Summary		Get summary
//	@Description	Returns the total spend of the month and the spend per category, largest first
//	@Tags			Reports
//	@Produce		json
//	@Success		200		{object}	ledger.Summary
//	@Failure		400		{object}	httputil.HTTPError
//	@Failure		500		{object}	httputil.HTTPError
//	@Param			month	query		string	false	"Month in YYYY-MM format. Defaults to the current month."
//	@Router			/summary [get]
func (co Controller) GetSummary(c *gin.Context) {
	m, err := co.Ledger.Month(c.Query("month"))
	if err != nil {
		abort(c, err)
		return
	}

	summary, err := co.Ledger.Summary(c.Request.Context(), m)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetStats returns statistics about a month
//
//	@Summary		Get statistics
//	@Description	Returns the number of transactions, the average and largest transaction and the number of alerts of the month
//	@Tags			Reports
//	@Produce		json
//	@Success		200		{object}	ledger.Stats
//	@Failure		400		{object}	httputil.HTTPError
//	@Failure		500		{object}	httputil.HTTPError
//	@Param			month	query		string	false	"Month in YYYY-MM format. Defaults to the current month."
//	@Router			/stats [get]
func (co Controller) GetStats(c *gin.Context) {
	m, err := co.Ledger.Month(c.Query("month"))
	if err != nil {
		abort(c, err)
		return
	}

	stats, err := co.Ledger.Stats(c.Request.Context(), m)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
