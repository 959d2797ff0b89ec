package booking

import (
	"fmt"
	"strings"

	"shutterhub/models"
)

// ValidationError reports a malformed booking request (inverted or past-dated
// interval, unknown status, missing fields).
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s", e.Message)
}

// NewValidationError builds a ValidationError from a format string.
func NewValidationError(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ConflictError means the requested interval overlaps existing reservations
// on the resource. Conflicts carries the overlapping intervals for diagnostics.
type ConflictError struct {
	ResourceID string
	Conflicts  []models.Interval
}

func (e *ConflictError) Error() string {
	parts := make([]string, 0, len(e.Conflicts))
	for _, iv := range e.Conflicts {
		parts = append(parts, fmt.Sprintf("[%s, %s)", iv.Start.Format("2006-01-02T15:04"), iv.End.Format("2006-01-02T15:04")))
	}
	return fmt.Sprintf("conflict: resource %s is unavailable, reserved %s", e.ResourceID, strings.Join(parts, ", "))
}

// NotFoundError reports an unknown resource or booking.
type NotFoundError struct {
	Kind string // "resource" or "booking"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("not found: %s %s", e.Kind, e.ID)
}

// PermissionError means the acting party is not authorized for the operation.
type PermissionError struct {
	ActorID string
	Action  string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("permission: actor %s may not %s", e.ActorID, e.Action)
}

// InvalidTransitionError reports a status change not permitted from the
// booking's current state.
type InvalidTransitionError struct {
	From models.BookingStatus
	To   models.BookingStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition: %s -> %s", e.From, e.To)
}

// PaymentError wraps a failure from the payment collaborator. The booking is
// left pending and the charge may be retried.
type PaymentError struct {
	BookingID string
	Err       error
}

func (e *PaymentError) Error() string {
	return fmt.Sprintf("payment failed for booking %s: %v", e.BookingID, e.Err)
}

func (e *PaymentError) Unwrap() error {
	return e.Err
}
