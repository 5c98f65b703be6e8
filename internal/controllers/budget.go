package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/spendwise/backend/internal/httputil"
	"github.com/spendwise/backend/internal/models"
)

type BudgetEditable struct {
	Category     string          `json:"category" binding:"required" example:"Food"`
	MonthlyLimit decimal.Decimal `json:"monthly_limit" example:"5000"`
}

type BudgetListResponse struct {
	Budgets []models.Budget `json:"budgets"`
}

type BudgetResponse struct {
	Budget models.Budget `json:"budget"`
}

func (co Controller) RegisterBudgetRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsBudgetList)
	r.GET("", co.GetBudgets)
	r.POST("", co.SetBudget)
}

// OptionsBudgetList returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Budgets
//	@Success		204
//	@Router			/budgets [options]
func OptionsBudgetList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// GetBudgets returns all budgets
//
//	@Summary		Get budgets
//	@Description	Returns the monthly budgets of all categories that have one
//	@Tags			Budgets
//	@Produce		json
//	@Success		200	{object}	BudgetListResponse
//	@Failure		500	{object}	httputil.HTTPError
//	@Router			/budgets [get]
func (co Controller) GetBudgets(c *gin.Context) {
	budgets, err := co.Ledger.Budgets(c.Request.Context())
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, BudgetListResponse{Budgets: budgets})
}

// SetBudget creates or replaces the budget of a category
//
//	@Summary		Set budget
//	@Description	Sets the monthly limit of a category, replacing an existing limit
//	@Tags			Budgets
//	@Accept			json
//	@Produce		json
//	@Success		200		{object}	BudgetResponse
//	@Failure		400		{object}	httputil.HTTPError
//	@Failure		500		{object}	httputil.HTTPError
//	@Param			budget	body		BudgetEditable	true	"Budget"
//	@Router			/budgets [post]
func (co Controller) SetBudget(c *gin.Context) {
	var editable BudgetEditable
	if err := httputil.BindData(c, &editable); err != nil {
		abort(c, err)
		return
	}

	budget, err := co.Ledger.SetBudget(c.Request.Context(), editable.Category, editable.MonthlyLimit)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, BudgetResponse{Budget: budget})
}
