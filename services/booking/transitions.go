package booking

import (
	"time"

	"santai/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// validTransitions is the source of truth for legal status changes.
// Statuses without an entry (the pre-booking funnel states) have no legal
// transitions. Terminal states map to an empty slice.
var validTransitions = map[models.BookingStatus][]models.BookingStatus{
	models.StatusPendingAccept: {models.StatusActive, models.StatusCancelled, models.StatusExpired},
	models.StatusActive:        {models.StatusCompleted, models.StatusCancelled},
	models.StatusCompleted:     {},
	models.StatusCancelled:     {},
	models.StatusExpired:       {},
}

// canTransition reports whether moving from one status to another is legal.
func canTransition(from, to models.BookingStatus) bool {
	for _, allowed := range validTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// AcceptBooking transitions a pending booking to active on behalf of its
// assigned therapist. Checks run in strict order and each short-circuits:
// lookup, authorization, state machine, deadline, commit.
func (svc *DefaultBookingService) AcceptBooking(bookingID, therapistID, therapistName string) (*models.Booking, error) {
	booking, err := svc.lookup(bookingID)
	if err != nil {
		return nil, err
	}

	if booking.TherapistID != therapistID {
		return nil, &AuthorizationError{BookingID: bookingID, AssignedTherapistID: booking.TherapistID}
	}

	if !canTransition(booking.Status, models.StatusActive) {
		return nil, &IllegalTransitionError{
			From:    booking.Status,
			To:      models.StatusActive,
			Allowed: validTransitions[booking.Status],
		}
	}

	now := time.Now()
	if now.After(booking.ResponseDeadline) {
		minutesPast := int(now.Sub(booking.ResponseDeadline).Minutes())
		if minutesPast < 1 {
			minutesPast = 1
		}
		return nil, &ExpiredError{BookingID: bookingID, MinutesPast: minutesPast}
	}

	fields := bson.M{
		"status":      models.StatusActive,
		"accepted_at": now,
		"updated_at":  now,
	}
	if therapistName != "" {
		fields["therapist_name"] = therapistName
	}

	updated, err := svc.Repo.UpdateFields(bookingID, fields)
	if err != nil {
		return nil, &StorageError{Op: "accept booking", Err: err}
	}

	zap.L().Info("acceptBooking: booking accepted",
		zap.String("bookingId", bookingID),
		zap.String("therapistId", therapistID))

	return updated, nil
}

// RejectBooking transitions a booking to cancelled on behalf of its
// assigned therapist. Unlike Accept it does not check the deadline:
// declining late is harmless and the expiry sweeper resolves the race
// either way.
func (svc *DefaultBookingService) RejectBooking(bookingID, therapistID, reason string) (*models.Booking, error) {
	booking, err := svc.lookup(bookingID)
	if err != nil {
		return nil, err
	}

	if booking.TherapistID != therapistID {
		return nil, &AuthorizationError{BookingID: bookingID, AssignedTherapistID: booking.TherapistID}
	}

	if !canTransition(booking.Status, models.StatusCancelled) {
		return nil, &IllegalTransitionError{
			From:    booking.Status,
			To:      models.StatusCancelled,
			Allowed: validTransitions[booking.Status],
		}
	}

	if reason == "" {
		reason = "Therapist unavailable"
	}

	now := time.Now()
	updated, err := svc.Repo.UpdateFields(bookingID, bson.M{
		"status":        models.StatusCancelled,
		"rejected_at":   now,
		"updated_at":    now,
		"cancel_reason": reason,
	})
	if err != nil {
		return nil, &StorageError{Op: "reject booking", Err: err}
	}

	zap.L().Info("rejectBooking: booking rejected",
		zap.String("bookingId", bookingID),
		zap.String("therapistId", therapistID),
		zap.String("reason", reason))

	return updated, nil
}

// CompleteBooking transitions an active booking to completed.
func (svc *DefaultBookingService) CompleteBooking(bookingID, therapistID string) (*models.Booking, error) {
	booking, err := svc.lookup(bookingID)
	if err != nil {
		return nil, err
	}

	if booking.TherapistID != therapistID {
		return nil, &AuthorizationError{BookingID: bookingID, AssignedTherapistID: booking.TherapistID}
	}

	if !canTransition(booking.Status, models.StatusCompleted) {
		return nil, &IllegalTransitionError{
			From:    booking.Status,
			To:      models.StatusCompleted,
			Allowed: validTransitions[booking.Status],
		}
	}

	now := time.Now()
	updated, err := svc.Repo.UpdateFields(bookingID, bson.M{
		"status":       models.StatusCompleted,
		"completed_at": now,
		"updated_at":   now,
	})
	if err != nil {
		return nil, &StorageError{Op: "complete booking", Err: err}
	}

	zap.L().Info("completeBooking: booking completed", zap.String("bookingId", bookingID))

	return updated, nil
}

// ExpireBooking transitions an overdue pending booking to expired. Invoked
// by the expiry worker, never by clients.
func (svc *DefaultBookingService) ExpireBooking(bookingID, reason string) (*models.Booking, error) {
	booking, err := svc.lookup(bookingID)
	if err != nil {
		return nil, err
	}

	if !canTransition(booking.Status, models.StatusExpired) {
		return nil, &IllegalTransitionError{
			From:    booking.Status,
			To:      models.StatusExpired,
			Allowed: validTransitions[booking.Status],
		}
	}

	if reason == "" {
		reason = "Response timeout"
	}

	now := time.Now()
	updated, err := svc.Repo.UpdateFields(bookingID, bson.M{
		"status":        models.StatusExpired,
		"expired_at":    now,
		"updated_at":    now,
		"cancel_reason": reason,
	})
	if err != nil {
		return nil, &StorageError{Op: "expire booking", Err: err}
	}

	zap.L().Info("expireBooking: booking expired",
		zap.String("bookingId", bookingID),
		zap.String("reason", reason))

	return updated, nil
}

// lookup resolves a booking by business identifier, mapping storage
// failures and missing documents to the error taxonomy.
func (svc *DefaultBookingService) lookup(bookingID string) (*models.Booking, error) {
	booking, err := svc.Repo.GetByBookingID(bookingID)
	if err != nil {
		return nil, &StorageError{Op: "lookup booking", Err: err}
	}
	if booking == nil {
		return nil, &NotFoundError{BookingID: bookingID}
	}
	return booking, nil
}
