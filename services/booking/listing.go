package booking

import (
	"time"

	"santai/models"
)

// ListPendingForTherapist returns the therapist's pending bookings whose
// response deadline has not yet passed. Records already past the deadline
// are filtered out here rather than waiting for the expiry worker, so the
// dashboard never shows a booking the therapist can no longer accept.
func (svc *DefaultBookingService) ListPendingForTherapist(therapistID string) ([]models.Booking, error) {
	pending, err := svc.Repo.ListPendingByTherapist(therapistID, svc.listingMaxItems())
	if err != nil {
		return nil, &StorageError{Op: "list pending bookings", Err: err}
	}

	now := time.Now()
	actionable := make([]models.Booking, 0, len(pending))
	for _, b := range pending {
		if now.After(b.ResponseDeadline) {
			continue
		}
		actionable = append(actionable, b)
	}
	return actionable, nil
}
