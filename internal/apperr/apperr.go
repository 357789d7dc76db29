// Package apperr is the error taxonomy shared by services and the HTTP boundary.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindBadRequest
	KindNotFound
	KindConflict
	KindDestructiveChange
	KindImmutableField
	KindUnauthorized
	KindForbidden
	KindRepository
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindBadRequest:
		return "bad_request"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindDestructiveChange:
		return "destructive_change"
	case KindImmutableField:
		return "immutable_field"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindRepository:
		return "repository"
	default:
		return "unknown"
	}
}

// Status is the HTTP status a kind serializes to.
func (k Kind) Status() int {
	switch k {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindBadRequest, KindDestructiveChange, KindImmutableField:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// FieldErrors maps a JSON field name to its messages in declaration order.
type FieldErrors map[string][]string

func (fe FieldErrors) Add(field, msg string) {
	fe[field] = append(fe[field], msg)
}

type Error struct {
	Kind        Kind
	Message     string
	FieldErrors FieldErrors
	// Reason carries the underlying store error text for repository errors.
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(fe FieldErrors) *Error {
	return &Error{Kind: KindValidation, Message: "Validation failed", FieldErrors: fe}
}

func BadRequest(msg string) *Error {
	return &Error{Kind: KindBadRequest, Message: msg}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func Conflict(msg, field, fieldMsg string) *Error {
	return &Error{Kind: KindConflict, Message: msg, FieldErrors: FieldErrors{field: {fieldMsg}}}
}

func DestructiveChange(msg string, fe FieldErrors) *Error {
	return &Error{Kind: KindDestructiveChange, Message: msg, FieldErrors: fe}
}

func ImmutableField(msg string, fe FieldErrors) *Error {
	return &Error{Kind: KindImmutableField, Message: msg, FieldErrors: fe}
}

func Unauthorized(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Message: msg}
}

func Forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

// Repository wraps a store failure. The reason is exposed to callers; the
// wrapped error is kept for logs.
func Repository(msg string, err error) *Error {
	e := &Error{Kind: KindRepository, Message: msg, Err: err}
	if err != nil {
		e.Reason = err.Error()
	}
	return e
}

// KindOf returns KindUnknown for errors outside the taxonomy.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
