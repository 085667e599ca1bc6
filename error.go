package tellergo

import (
	"errors"
	"fmt"
)

var (
	ErrInternalServer  = errors.New("internal server error")
	ErrTooManyRequests = errors.New("too many requests")
	ErrUnavailable     = errors.New("service unavailable")

	// Withdrawal policy violations. The balance is untouched and no
	// transaction is recorded when either of these is returned.
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrOverdraftLimit    = errors.New("overdraft limit reached")
)

type ErrBadRequest struct {
	Fields map[string]string `json:"fields"`
}

func (e ErrBadRequest) Error() string {
	return fmt.Sprintf("missing/invalid params: %v", e.Fields)
}

type ErrNotFound struct {
	Number int64 `json:"account_number"`
}

func (e ErrNotFound) Error() string {
	return "account not found"
}

type ErrConflict struct {
	Number int64 `json:"account_number"`
}

func (e ErrConflict) Error() string {
	return "account number already in use"
}
