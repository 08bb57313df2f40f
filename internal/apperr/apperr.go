// Package apperr defines the recoverable error taxonomy shared by every
// service. Handlers translate kinds to HTTP statuses; none of these should
// ever crash the process.
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

type Kind int

const (
	KindNotFound Kind = iota + 1
	KindConflict
	KindInvalidOperation
	KindReloadValidation
)

type Error struct {
	Kind    Kind
	Message string
	Records []string // offending record identifiers, for reload validation
}

func (e *Error) Error() string {
	if len(e.Records) > 0 {
		return fmt.Sprintf("%s (records: %s)", e.Message, strings.Join(e.Records, ", "))
	}
	return e.Message
}

// HTTPStatus maps the error kind to the status the presentation layer returns.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindNotFound:
		return 404
	case KindConflict:
		return 409
	case KindInvalidOperation:
		return 422
	case KindReloadValidation:
		return 400
	default:
		return 500
	}
}

func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func InvalidOperation(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidOperation, Message: fmt.Sprintf(format, args...)}
}

func ReloadValidation(message string, records []string) *Error {
	return &Error{Kind: KindReloadValidation, Message: message, Records: records}
}

func is(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

func IsNotFound(err error) bool         { return is(err, KindNotFound) }
func IsConflict(err error) bool         { return is(err, KindConflict) }
func IsInvalidOperation(err error) bool { return is(err, KindInvalidOperation) }
func IsReloadValidation(err error) bool { return is(err, KindReloadValidation) }
