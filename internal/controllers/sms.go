package controllers

import (
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spendwise/backend/internal/httputil"
	"github.com/spendwise/backend/internal/pipeline"
)

type SMSEditable struct {
	SMS string `json:"sms" example:"INR 349.00 debited from A/c XX4521 via UPI to Zomato on 24-02-25. Avail Bal: 24,651 -HDFC"`
}

// SubmitResponse is the outcome of a submitted message. On success, the
// pipeline result is inlined. On failure, error and detail hold the reason.
type SubmitResponse struct {
	OK bool `json:"ok" example:"true"`
	*pipeline.Result
	Error  string `json:"error,omitempty" example:"could not parse message: no amount found"`
	Detail string `json:"detail,omitempty" example:"could not parse message: no amount found"`
}

func (co Controller) RegisterSMSRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsSMS)
	r.POST("", co.ProcessSMS)
}

// OptionsSMS returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Messages
//	@Success		204
//	@Router			/process-sms [options]
func OptionsSMS(c *gin.Context) {
	httputil.OptionsPost(c)
}

// ProcessSMS runs the pipeline for a message
//
//	@Summary		Process message
//	@Description	Parses a bank notification, stores the transaction, evaluates the budget and returns insights and advice
//	@Tags			Messages
//	@Accept			json
//	@Produce		json
//	@Success		201	{object}	SubmitResponse
//	@Failure		400	{object}	SubmitResponse
//	@Failure		422	{object}	SubmitResponse
//	@Failure		500	{object}	SubmitResponse
//	@Param			message	body	SMSEditable	true	"Message"
//	@Router			/process-sms [post]
func (co Controller) ProcessSMS(c *gin.Context) {
	var editable SMSEditable
	if err := httputil.BindData(c, &editable); err != nil {
		c.JSON(status(err), SubmitResponse{Error: err.Error(), Detail: err.Error()})
		return
	}

	result, err := co.Ledger.SubmitMessage(c.Request.Context(), editable.SMS)
	if err != nil {
		s := status(err)
		if s == http.StatusInternalServerError {
			log.Error().Str("request-id", requestid.Get(c)).Str("run", result.RunID.String()).Err(err).Msg("pipeline run failed")
		}

		c.JSON(s, SubmitResponse{Error: err.Error(), Detail: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, SubmitResponse{OK: true, Result: &result})
}
