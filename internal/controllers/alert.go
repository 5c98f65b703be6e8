package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spendwise/backend/internal/httputil"
	"github.com/spendwise/backend/internal/ledger"
	"github.com/spendwise/backend/internal/models"
)

type AlertListResponse struct {
	Alerts []models.Alert `json:"alerts"`
}

func (co Controller) RegisterAlertRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsAlertList)
	r.GET("", co.GetAlerts)
}

// OptionsAlertList returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Alerts
//	@Success		204
//	@Router			/alerts [options]
func OptionsAlertList(c *gin.Context) {
	httputil.OptionsGet(c)
}

// GetAlerts returns the most recent alerts
//
//	@Summary		Get alerts
//	@Description	Returns the most recent budget alerts first
//	@Tags			Alerts
//	@Produce		json
//	@Success		200		{object}	AlertListResponse
//	@Failure		400		{object}	httputil.HTTPError
//	@Failure		500		{object}	httputil.HTTPError
//	@Param			limit	query		int	false	"Maximum number of alerts to return. Defaults to 20."
//	@Router			/alerts [get]
func (co Controller) GetAlerts(c *gin.Context) {
	limit, err := httputil.IntQuery(c, "limit", ledger.DefaultAlertLimit)
	if err != nil {
		abort(c, err)
		return
	}

	alerts, err := co.Ledger.ListAlerts(c.Request.Context(), limit)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, AlertListResponse{Alerts: alerts})
}
