package shared

import (
	"errors"
	"fmt"
)

// Kind classifies an outcome so the HTTP edge can pick a status code.
type Kind string

const (
	KindValidation Kind = "VALIDATION"
	KindNotFound   Kind = "NOT_FOUND"
	KindConflict   Kind = "CONFLICT"
	KindExpired    Kind = "EXPIRED"
	KindAuth       Kind = "AUTH"
	KindDependency Kind = "DEPENDENCY_FAILURE"
)

// Error is a stable, client-visible outcome. Code and Number never change once
// published; Message is what the client reads. Err holds the dependency cause
// and is only ever logged.
type Error struct {
	Kind    Kind
	Code    string
	Number  int
	Message string
	Err     error
}

// NewError declares a sentinel outcome.
func NewError(kind Kind, code string, number int, message string) *Error {
	return &Error{Kind: kind, Code: code, Number: number, Message: message}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s (%d): %s: %v", e.Code, e.Number, e.Message, e.Err)
	}
	return fmt.Sprintf("%s (%d): %s", e.Code, e.Number, e.Message)
}

// Unwrap exposes the dependency cause.
func (e *Error) Unwrap() error { return e.Err }

// Is matches any Error with the same code and number, so a sentinel still
// matches after WithCause.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code && e.Number == other.Number
}

// WithCause returns a copy of the sentinel carrying err.
func (e *Error) WithCause(err error) *Error {
	cp := *e
	cp.Err = err
	return &cp
}

// KindOf reports the Kind of err, or KindDependency for unclassified errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindDependency
}

// ErrNotFound is the store-level "no rows" sentinel shared by repositories.
var ErrNotFound = errors.New("not found")
