// Package apperrors holds the domain error taxonomy shared by every layer.
// Storage drivers translate their failures into it, use-cases wrap it, and a
// single point at the HTTP boundary maps it to status codes.
package apperrors

import (
	"errors"
	"fmt"
)

// Kind tags an Error with its place in the taxonomy.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidInput
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindDuplicate
	KindInvalidRelation
	KindStorageUnavailable
	KindOperationFailed
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindDuplicate:
		return "duplicate"
	case KindInvalidRelation:
		return "invalid_relation"
	case KindStorageUnavailable:
		return "storage_unavailable"
	case KindOperationFailed:
		return "operation_failed"
	default:
		return "unknown"
	}
}

// FieldError is one entry of a validation detail list.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the tagged-variant domain error. Entity and Field carry the
// structured payload of storage-shaped kinds (Duplicate, InvalidRelation,
// NotFound); Fields carries validation detail; Err is the underlying cause.
type Error struct {
	Kind    Kind
	Entity  string
	Field   string
	Message string
	Fields  []FieldError
	Err     error
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

// NewInvalidInput reports a validation failure with a field detail list.
func NewInvalidInput(message string, fields ...FieldError) *Error {
	return &Error{Kind: KindInvalidInput, Message: message, Fields: fields}
}

// NewUnauthorized reports a missing or invalid credential. cause stays
// internal for logging and is never surfaced outward.
func NewUnauthorized(message string, cause error) *Error {
	return &Error{Kind: KindUnauthorized, Message: message, Err: cause}
}

// NewForbidden reports an ownership check failure. It must never be wrapped
// by an OperationFailed error so the boundary can map it to 403 distinctly.
func NewForbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

// NewNotFound reports an absent entity.
func NewNotFound(entity string, identifier string) *Error {
	return &Error{
		Kind:    KindNotFound,
		Entity:  entity,
		Message: fmt.Sprintf("%s with identifier %s not found", entity, identifier),
	}
}

// NewDuplicate reports a uniqueness violation on field.
func NewDuplicate(entity string, field string) *Error {
	return &Error{
		Kind:    KindDuplicate,
		Entity:  entity,
		Field:   field,
		Message: fmt.Sprintf("a %s with this value of %s already exists", entity, field),
	}
}

// NewInvalidRelation reports a foreign-key violation.
func NewInvalidRelation(entity string, field string, message string) *Error {
	return &Error{Kind: KindInvalidRelation, Entity: entity, Field: field, Message: message}
}

// NewStorageUnavailable reports a connection-level or otherwise
// unclassifiable storage failure.
func NewStorageUnavailable(message string, cause error) *Error {
	return &Error{Kind: KindStorageUnavailable, Message: message, Err: cause}
}

// NewOperationFailed wraps an arbitrary use-case failure, preserving the
// cause so the boundary can still recognize a domain kind underneath.
func NewOperationFailed(message string, cause error) *Error {
	return &Error{Kind: KindOperationFailed, Message: message, Err: cause}
}

// KindOf walks the cause chain until it finds a recognized kind. An
// OperationFailed wrapper is transparent: the wrapped kind wins when one
// exists, so a failed delete caused by a missing row still reads as NotFound.
func KindOf(err error) Kind {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return KindUnknown
	}
	if appErr.Kind == KindOperationFailed && appErr.Err != nil {
		if inner := KindOf(appErr.Err); inner != KindUnknown {
			return inner
		}
	}
	return appErr.Kind
}

// Find returns the innermost *Error whose kind is not OperationFailed, or
// the outermost one when the whole chain is wrappers. Nil when err carries
// no domain error at all.
func Find(err error) *Error {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return nil
	}
	if appErr.Kind == KindOperationFailed && appErr.Err != nil {
		if inner := Find(appErr.Err); inner != nil {
			return inner
		}
	}
	return appErr
}

// IsKind reports whether err's effective kind (after unwrapping) is k.
func IsKind(err error, k Kind) bool {
	return KindOf(err) == k
}
