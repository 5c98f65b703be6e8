package controllers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spendwise/backend/internal/httputil"
	"github.com/spendwise/backend/internal/ledger"
	"github.com/spendwise/backend/internal/models"
)

type TransactionListResponse struct {
	Transactions []models.Transaction `json:"transactions"`
}

func (co Controller) RegisterTransactionRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsTransactionList)
		r.GET("", co.GetTransactions)
	}

	{
		r.OPTIONS("/export", OptionsTransactionExport)
		r.GET("/export", co.ExportTransactions)
	}

	{
		r.OPTIONS("/:id", OptionsTransactionDetail)
		r.DELETE("/:id", co.DeleteTransaction)
	}
}

// OptionsTransactionList returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Transactions
//	@Success		204
//	@Router			/transactions [options]
func OptionsTransactionList(c *gin.Context) {
	httputil.OptionsGet(c)
}

// OptionsTransactionExport returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Transactions
//	@Success		204
//	@Router			/transactions/export [options]
func OptionsTransactionExport(c *gin.Context) {
	httputil.OptionsGet(c)
}

// OptionsTransactionDetail returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Transactions
//	@Success		204
//	@Failure		400	{object}	httputil.HTTPError
//	@Param			id	path		string	true	"ID formatted as string"
//	@Router			/transactions/{id} [options]
func OptionsTransactionDetail(c *gin.Context) {
	if _, err := httputil.UUIDFromString(c.Param("id")); err != nil {
		abort(c, err)
		return
	}

	httputil.OptionsDelete(c)
}

// GetTransactions returns the most recent transactions
//
//	@Summary		Get transactions
//	@Description	Returns the most recent transactions first
//	@Tags			Transactions
//	@Produce		json
//	@Success		200		{object}	TransactionListResponse
//	@Failure		400		{object}	httputil.HTTPError
//	@Failure		500		{object}	httputil.HTTPError
//	@Param			limit	query		int	false	"Maximum number of transactions to return. Defaults to 30."
//	@Router			/transactions [get]
func (co Controller) GetTransactions(c *gin.Context) {
	limit, err := httputil.IntQuery(c, "limit", ledger.DefaultTransactionLimit)
	if err != nil {
		abort(c, err)
		return
	}

	transactions, err := co.Ledger.ListTransactions(c.Request.Context(), limit)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, TransactionListResponse{Transactions: transactions})
}

// ExportTransactions returns the transactions of a month as CSV
//
//	@Summary		Export transactions
//	@Description	Returns all transactions of the month as CSV
//	@Tags			Transactions
//	@Produce		text/csv
//	@Success		200
//	@Failure		400		{object}	httputil.HTTPError
//	@Failure		500		{object}	httputil.HTTPError
//	@Param			month	query		string	false	"Month in YYYY-MM format. Defaults to the current month."
//	@Router			/transactions/export [get]
func (co Controller) ExportTransactions(c *gin.Context) {
	m, err := co.Ledger.Month(c.Query("month"))
	if err != nil {
		abort(c, err)
		return
	}

	var buf bytes.Buffer
	if err := co.Ledger.ExportTransactions(c.Request.Context(), m, &buf); err != nil {
		abort(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="transactions-`+m.String()+`.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// DeleteTransaction deletes a transaction
//
//	@Summary		Delete transaction
//	@Description	Deletes a transaction. It is no longer part of any list or aggregate.
//	@Tags			Transactions
//	@Success		204
//	@Failure		400	{object}	httputil.HTTPError
//	@Failure		404	{object}	httputil.HTTPError
//	@Failure		500	{object}	httputil.HTTPError
//	@Param			id	path		string	true	"ID formatted as string"
//	@Router			/transactions/{id} [delete]
func (co Controller) DeleteTransaction(c *gin.Context) {
	id, err := httputil.UUIDFromString(c.Param("id"))
	if err != nil {
		abort(c, err)
		return
	}

	if err := co.Ledger.DeleteTransaction(c.Request.Context(), id); err != nil {
		abort(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
