package usecase

import (
	"errors"
	"fmt"

	"transgo-ticketing/internal/data/entity"
)

// Sentinel errors surfaced at the request boundary. Handlers map them to HTTP
// status codes with errors.Is/errors.As; services wrap them with context.
var (
	ErrRouteNotFound   = errors.New("route not found")
	ErrTicketNotFound  = errors.New("ticket not found")
	ErrNotTicketOwner  = errors.New("ticket does not belong to user")
	ErrRouteCodeExists = errors.New("route code already exists")

	// ErrAlreadySettled: once a ticket's payment settled
	// successfully, no further settlement attempt is accepted.
	ErrAlreadySettled = errors.New("ticket payment already settled")

	// ErrAmountMismatch rejects a settle call whose amount differs from the
	// fare captured at booking time.
	ErrAmountMismatch = errors.New("payment amount does not match ticket total")

	// ErrTicketNotPayable rejects settlement of used/expired/cancelled tickets.
	ErrTicketNotPayable = errors.New("ticket is not payable")
)

// ValidationError carries per-field validation messages for a bad request.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %v", e.Fields)
}

// SettlementDeclinedError is a declined payment. The attempt was recorded;
// retrying with a new settle call is safe.
type SettlementDeclinedError struct {
	Message string
}

func (e *SettlementDeclinedError) Error() string {
	return e.Message
}

// SettlementSystemError is a transient infrastructure failure during
// settlement (gateway unreachable, timeout, store failure). Safe to retry.
type SettlementSystemError struct {
	Err error
}

func (e *SettlementSystemError) Error() string {
	return fmt.Sprintf("settlement system error: %v", e.Err)
}

func (e *SettlementSystemError) Unwrap() error {
	return e.Err
}

// IllegalTransitionError reports a lifecycle event applied to a ticket whose
// current status does not permit it. Never coerced silently.
type IllegalTransitionError struct {
	Status entity.TicketStatus
	Event  TicketEvent
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("cannot apply event %q to ticket in status %q", e.Event, e.Status)
}
