package errors

import (
	"errors"
)

var (
	ErrPharmacyNotFound = errors.New("pharmacy not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrMaskNotFound     = errors.New("mask not found")

	ErrInvalidTime      = errors.New("invalid time format")
	ErrInvalidDate      = errors.New("invalid date format")
	ErrInvalidQuantity  = errors.New("quantity must be positive")
	ErrInvalidSortField = errors.New("sort_by must be name or price")
	ErrInvalidOrder     = errors.New("order must be asc or desc")
	ErrInvalidOperator  = errors.New("op must be gt or lt")
	ErrInvalidTopLimit  = errors.New("top must be at least 1")
	ErrEmptyKeyword     = errors.New("keyword must not be empty")
	ErrNoItemsToOrder   = errors.New("no items to purchase")
	ErrMissingParameter = errors.New("missing required parameter")

	ErrInsufficientFunds = errors.New("insufficient balance")

	ErrTransactionFailed = errors.New("transaction failed")
)
