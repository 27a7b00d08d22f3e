package booking

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"santai/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// validDurations is the closed set of service durations, in minutes.
var validDurations = map[string]bool{"60": true, "90": true, "120": true}

// CreateBooking validates the request, enforces the duplicate window and
// persists a new pending booking. The only side effect is the single write;
// notification dispatch belongs to the caller.
func (svc *DefaultBookingService) CreateBooking(input models.BookingInput) (*models.Booking, error) {
	logger := zap.L()

	// Normalize status first: unknown or missing input status maps to
	// pending_accept rather than failing, since legacy clients still send
	// funnel states the server no longer tracks.
	status, ok := models.ParseBookingStatus(input.Status)
	if !ok {
		if input.Status != "" {
			logger.Warn("createBooking: unrecognized status, defaulting to pending_accept",
				zap.String("status", input.Status))
		}
		status = models.StatusPendingAccept
	}

	// Apply legacy field aliases before checking presence.
	userID := firstNonEmpty(input.UserID, input.CustomerID)
	location := firstNonEmpty(input.Location, input.Address, input.LocationZone)
	price := input.Price
	if price == 0 {
		price = input.TotalPrice
	}
	serviceDuration := input.ServiceDuration
	if serviceDuration == "" && input.Duration != 0 {
		serviceDuration = strconv.Itoa(input.Duration)
	}

	var missing []string
	if userID == "" {
		missing = append(missing, "userId")
	}
	if input.TherapistID == "" {
		missing = append(missing, "therapistId")
	}
	if serviceDuration == "" {
		missing = append(missing, "serviceDuration")
	}
	if location == "" {
		missing = append(missing, "location")
	}
	if price == 0 {
		missing = append(missing, "price")
	}
	if input.CustomerName == "" {
		missing = append(missing, "customerName")
	}
	if input.CustomerWhatsApp == "" {
		missing = append(missing, "customerWhatsApp")
	}
	if len(missing) > 0 {
		return nil, NewMissingFieldsError(missing)
	}

	if !validDurations[serviceDuration] {
		return nil, NewInvalidDurationError(serviceDuration)
	}

	now := time.Now()
	date := input.Date
	if date == "" {
		date = now.Format("2006-01-02")
	}
	slot := input.Time
	if slot == "" {
		slot = now.Format("15:04")
	}

	if err := svc.checkDuplicate(input.TherapistID, input.CustomerWhatsApp, date, slot, now); err != nil {
		return nil, err
	}

	// Generate the business identifier only after the duplicate check so
	// rejected attempts never burn an identifier.
	bookingID := generateBookingID(now)

	record := &models.Booking{
		ID:               uuid.NewString(),
		BookingID:        bookingID,
		UserID:           userID,
		TherapistID:      input.TherapistID,
		TherapistName:    input.TherapistName,
		Status:           status,
		ServiceDuration:  serviceDuration,
		Location:         location,
		Price:            price,
		CustomerName:     input.CustomerName,
		CustomerWhatsApp: input.CustomerWhatsApp,
		Date:             date,
		Time:             slot,
		CreatedAt:        now,
		UpdatedAt:        now,
		ResponseDeadline: now.Add(time.Duration(svc.responseTimeoutMinutes()) * time.Minute),
	}

	if err := svc.Repo.Insert(record); err != nil {
		return nil, &StorageError{Op: "create booking", Err: err}
	}

	logger.Info("createBooking: booking created",
		zap.String("bookingId", record.BookingID),
		zap.String("therapistId", record.TherapistID),
		zap.String("status", string(record.Status)))

	return record, nil
}

// checkDuplicate scans the therapist's recent bookings for an unresolved
// booking matching the same customer and slot. Best-effort duplicate
// suppression over a closed window, not a global uniqueness constraint.
func (svc *DefaultBookingService) checkDuplicate(therapistID, whatsApp, date, slot string, now time.Time) error {
	existing, err := svc.Repo.ListByTherapist(therapistID, svc.listingMaxItems())
	if err != nil {
		return &StorageError{Op: "duplicate check", Err: err}
	}

	window := time.Duration(svc.duplicateWindowMinutes()) * time.Minute
	for _, b := range existing {
		if now.Sub(b.CreatedAt) > window {
			continue
		}
		if b.CustomerWhatsApp != whatsApp || b.Date != date || b.Time != slot {
			continue
		}
		if b.Status != models.StatusPendingAccept && b.Status != models.StatusActive {
			continue
		}
		return &DuplicateBookingError{ExistingBookingID: b.BookingID}
	}
	return nil
}

// generateBookingID builds a business identifier from the creation
// timestamp plus a random suffix, e.g. "BK1735689600000_A1B2C3".
func generateBookingID(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("BK%d_%s", now.UnixMilli(), suffix)
}

func (svc *DefaultBookingService) responseTimeoutMinutes() int {
	if svc.ResponseTimeoutMinutes > 0 {
		return svc.ResponseTimeoutMinutes
	}
	return 5
}

func (svc *DefaultBookingService) duplicateWindowMinutes() int {
	if svc.DuplicateWindowMinutes > 0 {
		return svc.DuplicateWindowMinutes
	}
	return 10
}

func (svc *DefaultBookingService) listingMaxItems() int64 {
	if svc.ListingMaxItems > 0 {
		return svc.ListingMaxItems
	}
	return 100
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
