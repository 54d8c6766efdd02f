package domain

import (
	"errors"
	"fmt"
)

type ErrorCode string

const (
	ErrorCodeNotFound   ErrorCode = "not_found"
	ErrorCodeValidation ErrorCode = "validation"
	ErrorCodeConflict   ErrorCode = "conflict"
)

// Error is a domain failure carrying a human-readable message for the admin.
type Error struct {
	Code    ErrorCode
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code && (t.Message == "" || t.Message == e.Message)
}

var (
	ErrNotFound   = &Error{Code: ErrorCodeNotFound}
	ErrValidation = &Error{Code: ErrorCodeValidation}
	ErrConflict   = &Error{Code: ErrorCodeConflict}
)

func NotFoundError(format string, args ...interface{}) error {
	return &Error{Code: ErrorCodeNotFound, Message: fmt.Sprintf(format, args...)}
}

func ValidationError(format string, args ...interface{}) error {
	return &Error{Code: ErrorCodeValidation, Message: fmt.Sprintf(format, args...)}
}

func ConflictError(format string, args ...interface{}) error {
	return &Error{Code: ErrorCodeConflict, Message: fmt.Sprintf(format, args...)}
}

// AsError extracts the domain failure from a wrapped error chain.
func AsError(err error) (*Error, bool) {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr, true
	}
	return nil, false
}
