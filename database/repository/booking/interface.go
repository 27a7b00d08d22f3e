package bookingRepo

import (
	"santai/models"

	"go.mongodb.org/mongo-driver/bson"
)

// BookingRepository defines the document-store contract the booking
// lifecycle manager consumes: bounded list queries, insert, and partial
// updates. Records are never deleted; termination is a status value.
type BookingRepository interface {
	// Insert persists a new booking document.
	Insert(booking *models.Booking) error

	// GetByBookingID resolves a booking by its business identifier.
	// Returns (nil, nil) when no document matches.
	GetByBookingID(bookingID string) (*models.Booking, error)

	// ListByTherapist returns up to limit bookings assigned to the
	// therapist, newest first.
	ListByTherapist(therapistID string, limit int64) ([]models.Booking, error)

	// ListPendingByTherapist returns up to limit pending_accept bookings
	// assigned to the therapist, newest first.
	ListPendingByTherapist(therapistID string, limit int64) ([]models.Booking, error)

	// UpdateFields applies a partial $set update to the booking identified
	// by its business identifier and returns the updated document.
	UpdateFields(bookingID string, fields bson.M) (*models.Booking, error)
}
