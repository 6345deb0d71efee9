package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
)

// Payment errors
var (
	ErrPaymentAmountNotPositive = errors.New("payment amount must be positive")
	ErrPaymentTypeInvalid       = errors.New("payment type must be one of emi, salary, material, contractor, designer")
	ErrPaymentStatusInvalid     = errors.New("payment status must be one of pending, paid, overdue")
	ErrPaymentAlreadyPaid       = errors.New("the payment has already been paid")
	ErrInstallmentAmount        = errors.New("installment amount must be positive")
	ErrInstallmentStatusInvalid = errors.New("installment status must be one of pending, paid")
	ErrProjectIDEmpty           = errors.New("the project ID must not be empty")
	ErrPaymentIDInUse           = errors.New("the payment ID is already used by a different payment")
)

// Pool errors
var (
	ErrInsufficientFunds = errors.New("the remaining pool balance is insufficient for this allocation")
	ErrPoolConflict      = errors.New("the project pool was modified concurrently, please retry")
	ErrCostNegative      = errors.New("total cost and material cost must not be negative")
	ErrCurrencyInvalid   = errors.New("the currency must be a valid ISO 4217 code")
)
