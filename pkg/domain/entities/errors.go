package entities

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Sentinel errors for the ledger failure categories. Typed errors below match
// these through errors.Is.
var (
	ErrNotFound          = errors.New("ledger: not found")
	ErrInvalidState      = errors.New("ledger: invalid state")
	ErrValidation        = errors.New("ledger: validation failed")
	ErrInsufficientStock = errors.New("ledger: insufficient stock")
	ErrOverReceipt       = errors.New("ledger: over receipt")
	ErrIO                = errors.New("ledger: io failure")
	ErrReconciliation    = errors.New("ledger: reconciliation required")
)

// NotFoundError reports a referenced entity that does not exist
type NotFoundError struct {
	Entity string
	ID     string
}

func NewNotFoundError(entity, id string) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// InvalidStateError reports an operation that is illegal for the entity's current status
type InvalidStateError struct {
	Entity    string
	ID        string
	Operation string
	Current   string
	Expected  string
}

func (e *InvalidStateError) Error() string {
	msg := fmt.Sprintf("cannot %s %s %s: status is %s", e.Operation, e.Entity, e.ID, e.Current)
	if e.Expected != "" {
		msg += ", expected " + e.Expected
	}
	return msg
}

func (e *InvalidStateError) Is(target error) bool { return target == ErrInvalidState }

// ValidationError reports malformed or missing input
type ValidationError struct {
	Field  string
	Reason string
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// InsufficientStockError reports a bobbin deduction larger than the in_stock quantity
type InsufficientStockError struct {
	BobbinType string
	Requested  int64
	Available  int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("not enough %s bobbins in stock: requested %d, available %d",
		e.BobbinType, e.Requested, e.Available)
}

func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

// OverReceiptError reports that accepting a receipt would push the received weight
// above the roll's initial weight without a wastage override. The figures let the
// caller decide whether to retry with wastage marked.
type OverReceiptError struct {
	RollID             string
	InitialWeight      decimal.Decimal
	PreviouslyReceived decimal.Decimal
	CurrentReceived    decimal.Decimal
	Pending            decimal.Decimal
}

func (e *OverReceiptError) Error() string {
	return fmt.Sprintf(
		"roll %s over receipt: initial %s, previously received %s, current %s, pending %s (mark wastage to accept)",
		e.RollID,
		e.InitialWeight.StringFixed(2),
		e.PreviouslyReceived.StringFixed(2),
		e.CurrentReceived.StringFixed(2),
		e.Pending.StringFixed(2),
	)
}

func (e *OverReceiptError) Is(target error) bool { return target == ErrOverReceipt }

// IOError wraps a failure of the underlying table files
type IOError struct {
	Op    string
	Table string
	Err   error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Table, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

func (e *IOError) Is(target error) bool { return target == ErrIO }

// ReconciliationError lists boxes a dispatch references but could not be moved to dispatched.
// The dispatch record itself was persisted.
type ReconciliationError struct {
	DispatchID string
	Failed     map[string]error
}

func (e *ReconciliationError) Error() string {
	ids := make([]string, 0, len(e.Failed))
	for id := range e.Failed {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, fmt.Sprintf("%s (%v)", id, e.Failed[id]))
	}
	return fmt.Sprintf("dispatch %s recorded but boxes not transitioned: %s", e.DispatchID, strings.Join(parts, "; "))
}

func (e *ReconciliationError) Is(target error) bool { return target == ErrReconciliation }

// FailedBoxIDs returns the sorted IDs of boxes that need reconciliation
func (e *ReconciliationError) FailedBoxIDs() []string {
	ids := make([]string, 0, len(e.Failed))
	for id := range e.Failed {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
