package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spendwise/backend/internal/httputil"
	"github.com/spendwise/backend/internal/ledger"
	"github.com/spendwise/backend/internal/models"
)

type MatchRuleListResponse struct {
	MatchRules []models.MatchRule `json:"match_rules"`
}

type MatchRuleResponse struct {
	MatchRule models.MatchRule `json:"match_rule"`
}

// RegisterMatchRuleRoutes registers the routes for matchRules with
// the RouterGroup that is passed.
func (co Controller) RegisterMatchRuleRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsMatchRuleList)
		r.GET("", co.GetMatchRules)
		r.POST("", co.CreateMatchRule)
	}

	// MatchRule with ID
	{
		r.OPTIONS("/:id", OptionsMatchRuleDetail)
		r.DELETE("/:id", co.DeleteMatchRule)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			MatchRules
// @Success		204
// @Router			/match-rules [options]
func OptionsMatchRuleList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			MatchRules
// @Success		204
// @Failure		400	{object}	httputil.HTTPError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/match-rules/{id} [options]
func OptionsMatchRuleDetail(c *gin.Context) {
	if _, err := httputil.UUIDFromString(c.Param("id")); err != nil {
		abort(c, err)
		return
	}

	httputil.OptionsDelete(c)
}

// @Summary		Get matchRules
// @Description	Returns all matchRules in the order they are applied
// @Tags			MatchRules
// @Produce		json
// @Success		200	{object}	MatchRuleListResponse
// @Failure		500	{object}	httputil.HTTPError
// @Router			/match-rules [get]
func (co Controller) GetMatchRules(c *gin.Context) {
	rules, err := co.Ledger.MatchRules(c.Request.Context())
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, MatchRuleListResponse{MatchRules: rules})
}

// @Summary		Create matchRule
// @Description	Creates a matchRule. Merchants matching the glob pattern are sorted into the category.
// @Tags			MatchRules
// @Accept			json
// @Produce		json
// @Success		201			{object}	MatchRuleResponse
// @Failure		400			{object}	httputil.HTTPError
// @Failure		500			{object}	httputil.HTTPError
// @Param			matchRule	body		ledger.MatchRuleEditable	true	"MatchRule"
// @Router			/match-rules [post]
func (co Controller) CreateMatchRule(c *gin.Context) {
	var editable ledger.MatchRuleEditable
	if err := httputil.BindData(c, &editable); err != nil {
		abort(c, err)
		return
	}

	rule, err := co.Ledger.CreateMatchRule(c.Request.Context(), editable)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusCreated, MatchRuleResponse{MatchRule: rule})
}

// @Summary		Delete matchRule
// @Description	Deletes a matchRule
// @Tags			MatchRules
// @Success		204
// @Failure		400	{object}	httputil.HTTPError
// @Failure		404	{object}	httputil.HTTPError
// @Failure		500	{object}	httputil.HTTPError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/match-rules/{id} [delete]
func (co Controller) DeleteMatchRule(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		abort(c, err)
		return
	}

	if err := co.Ledger.DeleteMatchRule(c.Request.Context(), id); err != nil {
		abort(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
