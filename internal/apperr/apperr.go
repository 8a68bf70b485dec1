// Package apperr defines the error kinds surfaced to API callers.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrInsufficientShares = errors.New("insufficient shares")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrConflict           = errors.New("conflict")
	ErrForbidden          = errors.New("forbidden")
	ErrUnauthorized       = errors.New("unauthorized")
)

func wrap(kind error, format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), kind)
}

// NotFound reports a missing record, e.g. NotFound("stock %d", id).
func NotFound(format string, args ...any) error {
	return wrap(ErrNotFound, format, args...)
}

func InsufficientFunds(format string, args ...any) error {
	return wrap(ErrInsufficientFunds, format, args...)
}

func InsufficientShares(format string, args ...any) error {
	return wrap(ErrInsufficientShares, format, args...)
}

func InvalidArgument(format string, args ...any) error {
	return wrap(ErrInvalidArgument, format, args...)
}

func Conflict(format string, args ...any) error {
	return wrap(ErrConflict, format, args...)
}

func Forbidden(format string, args ...any) error {
	return wrap(ErrForbidden, format, args...)
}

func Unauthorized(format string, args ...any) error {
	return wrap(ErrUnauthorized, format, args...)
}

// Kind returns the sentinel err wraps, or nil for unclassified errors.
func Kind(err error) error {
	for _, kind := range []error{
		ErrNotFound, ErrInsufficientFunds, ErrInsufficientShares,
		ErrInvalidArgument, ErrConflict, ErrForbidden, ErrUnauthorized,
	} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
