package service

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"usertable-api/internal/repository"
)

// Kind classifies a service failure so transports can pick a status code.
type Kind int

const (
	// KindDatabase is any statement failure not covered by another kind.
	KindDatabase Kind = iota
	KindValidation
	KindNotFound
	// KindUnavailable means the database could not be reached or timed out.
	KindUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindUnavailable:
		return "unavailable"
	default:
		return "database"
	}
}

// Error is returned by every service operation that fails. Op names the
// operation and Column the column it was acting on, when there is one.
type Error struct {
	Kind   Kind
	Op     string
	Column string
	Err    error
}

func (e *Error) Error() string { return e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

// KindOf reports the kind of err, defaulting to KindDatabase.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindDatabase
}

func validationError(format string, args ...interface{}) error {
	return &Error{Kind: KindValidation, Err: fmt.Errorf(format, args...)}
}

// fail classifies err and records where it happened. Fields already set by an
// inner call are kept.
func fail(op, column string, err error) error {
	err = classify(err)
	var se *Error
	if errors.As(err, &se) {
		if se.Op == "" {
			se.Op = op
		}
		if se.Column == "" {
			se.Column = column
		}
	}
	return err
}

// classify wraps a repository error with its kind.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var se *Error
	if errors.As(err, &se) {
		return err
	}

	kind := KindDatabase
	switch {
	case errors.Is(err, repository.ErrColumnNotFound):
		kind = KindNotFound
	case errors.Is(err, repository.ErrColumnExists):
		kind = KindValidation
	case unavailable(err):
		kind = KindUnavailable
	}
	return &Error{Kind: kind, Err: err}
}

// unavailable reports infrastructure failures. A canceled context means the
// client went away and stays KindDatabase.
func unavailable(err error) bool {
	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
