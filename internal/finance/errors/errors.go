package errors

import (
	"errors"
	"fmt"
)

// ValidationError marks malformed or cross-field-invalid input. The caller
// has to fix the request; retrying as-is will fail again.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}

func IsValidationError(err error) bool {
	var validationError *ValidationError
	return errors.As(err, &validationError)
}

// NotFoundError marks a referenced entity that is absent, soft-deleted, or
// owned by a different user. The three cases are indistinguishable on purpose.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string {
	return e.Msg
}

func NewNotFoundError(msg string) error {
	return &NotFoundError{Msg: msg}
}

func IsNotFoundError(err error) bool {
	var notFoundError *NotFoundError
	return errors.As(err, &notFoundError)
}

// ConflictError marks a duplicate name or a violation of the
// "at least one default/existing" property invariant.
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string {
	return e.Msg
}

func NewConflictError(msg string) error {
	return &ConflictError{Msg: msg}
}

func IsConflictError(err error) bool {
	var conflictError *ConflictError
	return errors.As(err, &conflictError)
}

// StateError marks an operation that is invalid for the entity's current
// state, e.g. generating a transaction from an inactive expense.
type StateError struct {
	Msg string
}

func (e *StateError) Error() string {
	return e.Msg
}

func NewStateError(msg string) error {
	return &StateError{Msg: msg}
}

func IsStateError(err error) bool {
	var stateError *StateError
	return errors.As(err, &stateError)
}

var (
	ErrCategoryNotFound    = NewNotFoundError("Category not found")
	ErrExpenseNotFound     = NewNotFoundError("Expense not found")
	ErrTransactionNotFound = NewNotFoundError("Transaction not found")
	ErrNoteNotFound        = NewNotFoundError("Note not found")
	ErrPropertyNotFound    = NewNotFoundError("Property not found")

	ErrExpenseInactive = NewStateError("Cannot generate transaction from inactive expense")
)

func NewDuplicateNameError(entity, name string) error {
	return &ConflictError{Msg: fmt.Sprintf("%s with name '%s' already exists", entity, name)}
}
