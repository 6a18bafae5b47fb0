// Package apperr classifies failures into a small set of kinds so that
// handlers can answer with stable status codes and messages instead of
// the database driver's wording.
package apperr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

type Kind string

const (
	KindValidation   Kind = "validation"
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindUnavailable  Kind = "unavailable"
)

// Error carries a kind, a message that is safe to show to end users, and
// the underlying cause for logging.
type Error struct {
	Kind    Kind
	Message string
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

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func Validation(message string) *Error {
	return New(KindValidation, message)
}

func NotFound(message string) *Error {
	return New(KindNotFound, message)
}

func Forbidden(message string) *Error {
	return New(KindForbidden, message)
}

func Unauthorized(message string) *Error {
	return New(KindUnauthorized, message)
}

// KindOf returns the kind of err. Unclassified errors are unavailable.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return classify(err)
}

// FromDB maps an error returned by the data access layer. resource names
// the entity in the user-facing message ("trip", "booking", ...).
func FromDB(err error, resource string) *Error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	switch classify(err) {
	case KindNotFound:
		return Wrap(KindNotFound, resource+" not found", err)
	case KindConflict:
		return Wrap(KindConflict, resource+" already exists", err)
	case KindValidation:
		return Wrap(KindValidation, "invalid "+resource, err)
	default:
		return Wrap(KindUnavailable, "service temporarily unavailable", err)
	}
}

// FromBinding maps a request decoding failure to a validation error
// naming the first offending field. Decoder and validator wording stays
// in the wrapped cause.
func FromBinding(err error) *Error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return Wrap(KindValidation, fieldMessage(verrs[0]), err)
	}
	return Wrap(KindValidation, "invalid request body", err)
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "len":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be %s characters", field, fe.Param())
		}
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	}
	return field + " is invalid"
}

func classify(err error) Kind {
	var verrs validator.ValidationErrors
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return KindNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return KindConflict
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return KindValidation
	case errors.As(err, &verrs):
		return KindValidation
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindUnavailable
	default:
		return KindUnavailable
	}
}

// HTTPStatus returns the response status for a kind.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindValidation:
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
		return http.StatusServiceUnavailable
	}
}
