package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
)

var (
	ErrTransactionImmutable    = errors.New("transactions cannot be changed after they have been recorded")
	ErrAlertImmutable          = errors.New("alerts cannot be changed after they have been raised")
	ErrBudgetLimitNotPositive  = errors.New("the monthly limit of a budget must be greater than zero")
	ErrBudgetCategoryNotUnique = errors.New("a budget for this category already exists")
	ErrMatchRuleEmpty          = errors.New("the match of a match rule must not be empty")
)
