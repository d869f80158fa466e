/*
errors.go - Centralized error types for the ledger

ERROR CATEGORIES:
  1. Validation errors - user input fails a precondition. Never mutate state.
  2. Persistence errors - storage read/write failures. Absorbed by the
     Persister: logged, never returned to ledger callers.

A delete of an unknown transaction is NOT an error: DeleteTransaction
returns the unchanged ledger and false.

USAGE:
  if ledger.IsValidation(err) {
      // re-prompt the user with err.Error()
  }
  var short *ledger.InsufficientBalanceError
  if errors.As(err, &short) { ... }
*/
package ledger

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrValidation is the umbrella sentinel for every rejected input.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidAmount is returned when an amount is not strictly positive.
	ErrInvalidAmount = errors.New("amount must be greater than zero")

	// ErrEmptyLabel is returned when a label is empty after trimming.
	ErrEmptyLabel = errors.New("label cannot be empty")

	// ErrInvalidType is returned for a transaction type other than expense/income.
	ErrInvalidType = errors.New("invalid transaction type")

	// ErrInsufficientBalance is returned when an expense exceeds the current balance.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrNotInitialized is returned when transactions are added before an
	// initial balance was set.
	ErrNotInitialized = errors.New("ledger not initialized")

	// ErrDuplicateID is returned when a provided transaction id is already in
	// the ledger. Ids are never reused.
	ErrDuplicateID = errors.New("duplicate transaction id")

	// ErrPersistence is the sentinel behind every PersistenceError.
	ErrPersistence = errors.New("persistence failure")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ValidationError describes a rejected input in human-readable terms.
type ValidationError struct {
	Field   string // "amount", "label", "type", "id", "balance"
	Message string
	Reason  error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() []error {
	if e.Reason == nil {
		return []error{ErrValidation}
	}
	return []error{ErrValidation, e.Reason}
}

func newValidationError(field string, reason error, format string, args ...any) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf(format, args...),
		Reason:  reason,
	}
}

// InsufficientBalanceError provides details about a balance shortage.
type InsufficientBalanceError struct {
	Available decimal.Decimal
	Requested decimal.Decimal
	Shortfall decimal.Decimal
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: available %s, requested %s, shortfall %s",
		e.Available.StringFixed(2), e.Requested.StringFixed(2), e.Shortfall.StringFixed(2))
}

func (e *InsufficientBalanceError) Unwrap() error {
	return ErrInsufficientBalance
}

// PersistenceError wraps a storage failure with the operation and key.
type PersistenceError struct {
	Op  string // "save", "load", "delete", "encode", "decode"
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() []error {
	return []error{ErrPersistence, e.Err}
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsValidation returns true if err was caused by invalid user input.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsPersistence returns true if err came from the storage layer.
func IsPersistence(err error) bool {
	return errors.Is(err, ErrPersistence)
}
