// Package services implements the reservation and ledger engine:
// availability resolution, the reservation lifecycle, rate management,
// the folio charge ledger, payment reconciliation and channel
// commission figures. Controllers stay thin and translate the error
// classes below into HTTP responses.
package services

import (
	"errors"
	"fmt"
)

// Error classes. Every error returned by the engine wraps exactly one
// of these so callers can branch with errors.Is and map to a response
// without parsing messages.
var (
	// ErrValidation marks malformed input: missing fields, bad date
	// ranges, non-positive amounts.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks an unknown guest/room/channel/reservation/
	// payment reference. Absence is a recoverable answer, never a panic.
	ErrNotFound = errors.New("not found")

	// ErrBusinessRule marks a domain guard violation with a
	// business-meaningful message.
	ErrBusinessRule = errors.New("business rule violation")

	// ErrConcurrencyConflict marks a version mismatch or lock
	// contention that survived the bounded retry loop.
	ErrConcurrencyConflict = errors.New("concurrency conflict")
)

// Named guard violations. All are recoverable; the HTTP layer surfaces
// them verbatim.
var (
	ErrInvalidStateTransition = fmt.Errorf("%w: invalid state transition", ErrBusinessRule)
	ErrRoomUnavailable        = fmt.Errorf("%w: room unavailable", ErrBusinessRule)
	ErrCapacityExceeded       = fmt.Errorf("%w: capacity exceeded", ErrBusinessRule)
	ErrDateRangeInvalid       = fmt.Errorf("%w: check-out date must be after check-in date", ErrValidation)
	ErrBookingConflict        = fmt.Errorf("%w: booking conflict, please retry", ErrConcurrencyConflict)
	ErrOverpayment            = fmt.Errorf("%w: overpayment", ErrBusinessRule)
	ErrOverRefund             = fmt.Errorf("%w: refund exceeds refundable amount", ErrBusinessRule)
	ErrDuplicateChannelCode   = fmt.Errorf("%w: channel code already exists", ErrBusinessRule)
)

func validationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func notFoundError(resource, field string, value interface{}) error {
	return fmt.Errorf("%w: %s with %s '%v'", ErrNotFound, resource, field, value)
}

func businessError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrBusinessRule, fmt.Sprintf(format, args...))
}

// errStaleVersion signals an optimistic-lock miss inside a transaction;
// callers retry the whole unit of work a bounded number of times before
// surfacing ErrConcurrencyConflict.
var errStaleVersion = errors.New("stale reservation version")
