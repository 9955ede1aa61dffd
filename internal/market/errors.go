// Package market holds the marketplace rules shared by the write actions, the
// services and the HTTP handlers: the error taxonomy, the item state machine,
// ownership, commission and listing validation.
package market

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidOwner     = errors.New("requester is not the seller")
	ErrItemNotAvailable = errors.New("item is not available")
	ErrValidation       = errors.New("validation failed")
	ErrAlreadyExists    = errors.New("already exists")
	ErrSelfPurchase     = errors.New("seller cannot purchase their own item")
)

// FieldProblem is one rejected input field.
type FieldProblem struct {
	Field   string
	Message string
}

// ValidationError lists every problem found in one input. It matches
// ErrValidation with errors.Is.
type ValidationError struct {
	Problems []FieldProblem
}

func (e *ValidationError) Add(field, message string) {
	e.Problems = append(e.Problems, FieldProblem{Field: field, Message: message})
}

// OrNil returns e as an error when it holds problems.
func (e *ValidationError) OrNil() error {
	if len(e.Problems) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		parts[i] = fmt.Sprintf("%s: %s", p.Field, p.Message)
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
