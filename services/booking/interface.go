package booking

import (
	"context"

	bookingRepo "santai/database/repository/booking"
	"santai/models"

	"github.com/go-redis/redis/v8"
)

// BookingService is the single authority for creating bookings and
// validating every subsequent state transition. It enforces the lifecycle
// invariants itself rather than relying on callers to have checked them.
type BookingService interface {
	CreateBooking(input models.BookingInput) (*models.Booking, error)
	AcceptBooking(bookingID, therapistID, therapistName string) (*models.Booking, error)
	RejectBooking(bookingID, therapistID, reason string) (*models.Booking, error)
	CompleteBooking(bookingID, therapistID string) (*models.Booking, error)
	ExpireBooking(bookingID, reason string) (*models.Booking, error)
	ListPendingForTherapist(therapistID string) ([]models.Booking, error)
	SubscribeToTherapistBookings(ctx context.Context, therapistID string, onEvent func(models.BookingEvent)) Subscription
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Repo bookingRepo.BookingRepository

	// Events is the pub/sub client for the booking change channel. May be
	// nil; subscriptions then degrade to inactive (fail-open).
	Events        *redis.Client
	EventsChannel string

	// ResponseTimeoutMinutes is how long the assigned therapist has to
	// respond to a new booking.
	ResponseTimeoutMinutes int

	// DuplicateWindowMinutes is the lookback used to suppress duplicate
	// submissions for the same therapist/customer/slot.
	DuplicateWindowMinutes int

	// ListingMaxItems bounds every provider-scoped query.
	ListingMaxItems int64
}
