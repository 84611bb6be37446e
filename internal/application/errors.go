package application

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures so the HTTP layer can pick a status code.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindInvalidID
	KindMissingField
	KindInvalidReference
	KindInvalidType
	KindDuplicateName
	KindNotFound
	KindUnauthorized
	KindValidation
	KindMalformed
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidID:
		return "InvalidId"
	case KindMissingField:
		return "MissingField"
	case KindInvalidReference:
		return "InvalidReference"
	case KindInvalidType:
		return "InvalidType"
	case KindDuplicateName:
		return "DuplicateName"
	case KindNotFound:
		return "NotFound"
	case KindUnauthorized:
		return "Unauthorized"
	case KindValidation:
		return "ValidationError"
	case KindMalformed:
		return "BadRequest"
	default:
		return "Internal"
	}
}

// Error is the domain error returned by every service in this package.
// Message is safe to show to clients except for KindInternal.
type Error struct {
	Kind    ErrorKind
	Field   string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = &Error{Kind: KindUnauthorized, Message: "Unauthorized"}
)

func InvalidID() *Error {
	return &Error{Kind: KindInvalidID, Field: "id", Message: "The `id` is not valid"}
}

func MissingField(field string) *Error {
	return &Error{Kind: KindMissingField, Field: field, Message: fmt.Sprintf("Missing %s in request body", field)}
}

func InvalidReference(field string) *Error {
	if field == "tag" {
		return &Error{Kind: KindInvalidReference, Field: "tags", Message: "The `tags` array contains an invalid `id`"}
	}
	return &Error{Kind: KindInvalidReference, Field: field, Message: fmt.Sprintf("The `%s` is not valid", field)}
}

func InvalidType(field string) *Error {
	return &Error{Kind: KindInvalidType, Field: field, Message: fmt.Sprintf("The `%s` property must be an array", field)}
}

func DuplicateName(label string) *Error {
	return &Error{Kind: KindDuplicateName, Field: "name", Message: fmt.Sprintf("The %s name already exists", label)}
}

func NotFound() *Error {
	return &Error{Kind: KindNotFound, Message: "Not Found"}
}

// Validation is the registration-only 422 error pointing at one field.
func Validation(field, message string) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: message}
}

// Malformed reports a body that could not be decoded at all.
func Malformed(err error) *Error {
	return &Error{Kind: KindMalformed, Message: "Bad Request", Err: err}
}

func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "Internal Server Error", Err: err}
}

// KindOf reports the kind of err; anything that is not an *Error is internal.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
