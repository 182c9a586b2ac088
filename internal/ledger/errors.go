package ledger

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for errors.Is checks across the ledger's typed errors.
var (
	ErrDuplicate  = errors.New("already exists")
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
)

// DuplicateUnitError is returned when adding a unit whose name is taken.
type DuplicateUnitError struct {
	Name string
}

func (e *DuplicateUnitError) Error() string {
	return fmt.Sprintf("unit %q already exists", e.Name)
}

func (e *DuplicateUnitError) Unwrap() error { return ErrDuplicate }

// UnitNotFoundError is returned when an operation names an unknown unit.
type UnitNotFoundError struct {
	Name string
}

func (e *UnitNotFoundError) Error() string {
	return fmt.Sprintf("unit %q not found", e.Name)
}

func (e *UnitNotFoundError) Unwrap() error { return ErrNotFound }

// PaymentNotFoundError is returned when a payment ID is not in the unit.
type PaymentNotFoundError struct {
	Unit string
	ID   string
}

func (e *PaymentNotFoundError) Error() string {
	return fmt.Sprintf("payment %s not found in unit %q", e.ID, e.Unit)
}

func (e *PaymentNotFoundError) Unwrap() error { return ErrNotFound }

// FieldError describes one invalid or missing input field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError collects every field problem found in one input.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }
