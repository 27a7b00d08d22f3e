package booking

import (
	"fmt"
	"strings"

	"santai/models"
)

// ValidationError signals malformed or incomplete creation input. Callers
// must not retry without correcting the input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewMissingFieldsError builds a ValidationError naming each absent field.
func NewMissingFieldsError(fields []string) *ValidationError {
	return &ValidationError{
		Message: fmt.Sprintf("missing required fields: %s", strings.Join(fields, ", ")),
	}
}

// NewInvalidDurationError builds a ValidationError for an unsupported
// service duration.
func NewInvalidDurationError(duration string) *ValidationError {
	return &ValidationError{
		Message: fmt.Sprintf("invalid service duration %q: must be one of 60, 90, 120", duration),
	}
}

// DuplicateBookingError signals that an unresolved booking for the same
// therapist, customer and slot already exists within the duplicate window.
// Callers should treat this as success-equivalent rather than retry.
type DuplicateBookingError struct {
	ExistingBookingID string
}

func (e *DuplicateBookingError) Error() string {
	return fmt.Sprintf("duplicate booking: booking %s already pending for this customer and slot", e.ExistingBookingID)
}

// NotFoundError signals that the referenced booking does not exist.
type NotFoundError struct {
	BookingID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("booking %s not found", e.BookingID)
}

// AuthorizationError signals that a therapist other than the assignee
// attempted to act on a booking.
type AuthorizationError struct {
	BookingID           string
	AssignedTherapistID string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("booking %s is assigned to therapist %s", e.BookingID, e.AssignedTherapistID)
}

// IllegalTransitionError signals an attempted transition not permitted from
// the booking's current status. Allowed may be empty for terminal states.
type IllegalTransitionError struct {
	From    models.BookingStatus
	To      models.BookingStatus
	Allowed []models.BookingStatus
}

func (e *IllegalTransitionError) Error() string {
	if len(e.Allowed) == 0 {
		return fmt.Sprintf("cannot transition from %s to %s: %s is a terminal state",
			e.From.DisplayName(), e.To.DisplayName(), e.From.DisplayName())
	}
	allowed := make([]string, len(e.Allowed))
	for i, s := range e.Allowed {
		allowed[i] = s.DisplayName()
	}
	return fmt.Sprintf("cannot transition from %s to %s: allowed transitions are %s",
		e.From.DisplayName(), e.To.DisplayName(), strings.Join(allowed, ", "))
}

// ExpiredError signals that the booking's response deadline has passed.
type ExpiredError struct {
	BookingID   string
	MinutesPast int
}

func (e *ExpiredError) Error() string {
	return fmt.Sprintf("booking %s expired %d minute(s) ago", e.BookingID, e.MinutesPast)
}

// StorageError wraps a failure of the underlying document store. Safe to
// retry with backoff.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
