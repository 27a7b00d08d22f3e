package booking

import (
	"errors"
	"sync"
	"time"

	"santai/models"

	"go.mongodb.org/mongo-driver/bson"
)

// memoryBookingRepo is an in-memory BookingRepository for service tests.
type memoryBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking // keyed by BookingID

	failInsert bool
	failList   bool
	failGet    bool
	failUpdate bool
}

func newMemoryBookingRepo() *memoryBookingRepo {
	return &memoryBookingRepo{bookings: make(map[string]*models.Booking)}
}

var errStorageDown = errors.New("storage down")

func (r *memoryBookingRepo) Insert(booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failInsert {
		return errStorageDown
	}
	cp := *booking
	r.bookings[booking.BookingID] = &cp
	return nil
}

func (r *memoryBookingRepo) GetByBookingID(bookingID string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failGet {
		return nil, errStorageDown
	}
	b, ok := r.bookings[bookingID]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *memoryBookingRepo) ListByTherapist(therapistID string, limit int64) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failList {
		return nil, errStorageDown
	}
	var out []models.Booking
	for _, b := range r.bookings {
		if b.TherapistID == therapistID && int64(len(out)) < limit {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *memoryBookingRepo) ListPendingByTherapist(therapistID string, limit int64) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failList {
		return nil, errStorageDown
	}
	var out []models.Booking
	for _, b := range r.bookings {
		if b.TherapistID == therapistID && b.Status == models.StatusPendingAccept && int64(len(out)) < limit {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *memoryBookingRepo) UpdateFields(bookingID string, fields bson.M) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failUpdate {
		return nil, errStorageDown
	}
	b, ok := r.bookings[bookingID]
	if !ok {
		return nil, errors.New("booking not found")
	}
	for key, value := range fields {
		switch key {
		case "status":
			b.Status = value.(models.BookingStatus)
		case "therapist_name":
			b.TherapistName = value.(string)
		case "cancel_reason":
			b.CancelReason = value.(string)
		case "updated_at":
			b.UpdatedAt = value.(time.Time)
		case "accepted_at":
			t := value.(time.Time)
			b.AcceptedAt = &t
		case "rejected_at":
			t := value.(time.Time)
			b.RejectedAt = &t
		case "completed_at":
			t := value.(time.Time)
			b.CompletedAt = &t
		case "expired_at":
			t := value.(time.Time)
			b.ExpiredAt = &t
		}
	}
	cp := *b
	return &cp, nil
}

// seed inserts a booking directly, bypassing service validation.
func (r *memoryBookingRepo) seed(b models.Booking) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := b
	r.bookings[b.BookingID] = &cp
}

func newTestService(repo *memoryBookingRepo) *DefaultBookingService {
	return &DefaultBookingService{Repo: repo}
}

func validInput() models.BookingInput {
	return models.BookingInput{
		UserID:           "user-1",
		TherapistID:      "therapist-1",
		TherapistName:    "Ayu",
		ServiceDuration:  "90",
		Location:         "Jl. Sunset Road 88, Kuta",
		Price:            350000,
		CustomerName:     "Budi",
		CustomerWhatsApp: "+6281234567890",
		Date:             "2026-09-01",
		Time:             "14:00",
		Status:           "pending_accept",
	}
}
