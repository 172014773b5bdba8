// Package apperr defines the error kinds returned by the tuition services.
//
// Every operation fails with one of a small set of kinds so the HTTP layer can
// translate them uniformly:
//
//	Validation        malformed or out-of-range input (carries per-field detail)
//	NotFound          the addressed entity does not exist
//	MissingDependency a referenced entity (e.g. the owning student) does not exist
//	Conflict          a uniqueness rule was violated
//	Storage           connectivity / I/O failure of the storage layer
package apperr

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindValidation        Kind = "VALIDATION_ERROR"
	KindNotFound          Kind = "NOT_FOUND"
	KindMissingDependency Kind = "MISSING_DEPENDENCY"
	KindConflict          Kind = "CONFLICT"
	KindStorage           Kind = "STORAGE_ERROR"
)

type Error struct {
	Kind    Kind
	Message string
	Fields  map[string][]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(message string, fields map[string][]string) *Error {
	if fields == nil {
		fields = map[string][]string{}
	}
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

// Field builds a validation error for a single field.
func Field(field, message string) *Error {
	return Validation("validation failed", map[string][]string{field: {message}})
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func MissingDependency(message string) *Error {
	return &Error{Kind: KindMissingDependency, Message: message}
}

func Conflict(message string, cause error) *Error {
	return &Error{Kind: KindConflict, Message: message, Err: cause}
}

func Storage(op string, cause error) *Error {
	return &Error{Kind: KindStorage, Message: op, Err: cause}
}

// KindOf returns the kind of err, or KindStorage for errors that did not come
// from this package.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindStorage
}

func Is(err error, kind Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == kind
}
