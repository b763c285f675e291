// Package ledger implements the accounting core: one use-case function per
// ledger event (orders, imports, debts, lendings, payroll, fund sweeps).
// Every function runs inside the caller-supplied transaction, validates
// preconditions against current balances, mutates the owning rows and
// persists the event. Updates and deletes reverse the prior effect before
// applying the new one, so every balance stays the running sum of the events
// that reference it.
package ledger

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

const (
	CodeValidation = "validation"
	CodeConflict   = "conflict"
	CodeNotFound   = "not_found"
)

// Error is a typed ledger failure; the HTTP layer maps Code to a status.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

func Invalid(format string, args ...any) *Error {
	return &Error{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) *Error {
	return &Error{Code: CodeConflict, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// notFoundOr converts gorm's record-not-found into a ledger NotFound and
// passes every other error through untouched.
func notFoundOr(err error, what string, id any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound("%s %v not found", what, id)
	}
	return err
}
