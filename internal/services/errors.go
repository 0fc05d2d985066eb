package services

import (
	"errors"
	"net/http"
)

type ErrorKind int

const (
	KindNotFound ErrorKind = iota + 1
	KindBadRequest
)

// ServiceError is a domain failure whose Message is safe to show to the caller.
type ServiceError struct {
	Kind    ErrorKind
	Message string
}

func (e *ServiceError) Error() string { return e.Message }

func (e *ServiceError) StatusCode() int {
	if e.Kind == KindNotFound {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}

var (
	ErrBankAccountNotFound = &ServiceError{KindNotFound, "Your linked bank account was not found."}
	ErrUserNotFound        = &ServiceError{KindNotFound, "User not found."}
	ErrReceiverNotFound    = &ServiceError{KindNotFound, "No user found with associated email."}

	ErrInvalidAmount           = &ServiceError{KindBadRequest, "Amount should be at least 1."}
	ErrInsufficientBankFunds   = &ServiceError{KindBadRequest, "You do not have enough funds in your bank account."}
	ErrInsufficientBalance     = &ServiceError{KindBadRequest, "You do not have enough balance to transfer."}
	ErrSelfTransfer            = &ServiceError{KindBadRequest, "You can't transfer funds to yourself."}
	ErrTransactionLimitReached = &ServiceError{KindBadRequest, "You have reached your monthly transaction limit. Please verify your account to continue."}

	ErrStatementsNotFound    = &ServiceError{KindNotFound, "No statements found."}
	ErrNoLoadFunds           = &ServiceError{KindNotFound, "You are yet to load funds."}
	ErrTransactionNotFound   = &ServiceError{KindNotFound, "Transaction not found."}
	ErrNotificationsNotFound = &ServiceError{KindNotFound, "No available notifications."}
	ErrBankAccountsNotFound  = &ServiceError{KindNotFound, "No linked bank accounts found."}
)

const internalErrorMessage = "Something went wrong. Please try again later."

// StatusAndMessage maps err to what the client sees. Anything that is not a
// ServiceError is reported as a generic 500.
func StatusAndMessage(err error) (int, string) {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.StatusCode(), se.Message
	}
	return http.StatusInternalServerError, internalErrorMessage
}
