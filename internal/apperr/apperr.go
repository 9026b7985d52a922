// Package apperr defines the closed set of error kinds the API boundary
// knows how to translate into HTTP responses. Handlers and repos return
// *apperr.Error values instead of matching on error strings.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	Validation Kind = iota + 1
	Conflict
	TokenExpired
	TokenInvalid
	Unauthenticated
	Forbidden
	NotFound
	Internal
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case Conflict:
		return "conflict"
	case TokenExpired:
		return "token_expired"
	case TokenInvalid:
		return "token_invalid"
	case Unauthenticated:
		return "unauthenticated"
	case Forbidden:
		return "forbidden"
	case NotFound:
		return "not_found"
	default:
		return "internal"
	}
}

// FieldViolation reports a single invalid field on a create/register payload.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type Error struct {
	Kind    Kind
	Message string
	Fields  []FieldViolation
	Err     error // wrapped cause, not exposed to clients in prod
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

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func WithFields(message string, fields ...FieldViolation) *Error {
	return &Error{Kind: Validation, Message: message, Fields: fields}
}

// KindOf extracts the kind from any error; non-app errors are Internal.
func KindOf(err error) Kind {
	var appErr *Error

	if errors.As(err, &appErr) {
		return appErr.Kind
	}

	return Internal
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// HTTPStatus maps a kind to its boundary status code. Conflict maps to 400
// rather than 409 to preserve the deployed wire contract.
func (k Kind) HTTPStatus() int {
	switch k {
	case Validation, Conflict:
		return http.StatusBadRequest
	case TokenExpired, TokenInvalid, Unauthenticated:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
