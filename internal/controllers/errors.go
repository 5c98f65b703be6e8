package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spendwise/backend/internal/httputil"
	"github.com/spendwise/backend/internal/models"
	"github.com/spendwise/backend/internal/parser"
)

// status returns the appropriate status for an error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	var parseError *parser.ParseError
	if errors.As(err, &parseError) {
		return http.StatusUnprocessableEntity
	}

	return http.StatusBadRequest
}

func abort(c *gin.Context, err error) {
	c.AbortWithStatusJSON(status(err), httputil.HTTPError{Detail: err.Error()})
}
