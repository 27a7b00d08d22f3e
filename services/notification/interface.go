package notification

import (
	"firebase.google.com/go/v4/messaging"

	therapistRepo "santai/database/repository/therapist"
	"santai/models"
)

// NotificationService delivers push notifications to therapists. All sends
// are best-effort: delivery failures are logged, never propagated into the
// booking flow.
type NotificationService interface {
	NotifyBookingCreated(booking *models.Booking)
	NotifyBookingExpired(booking *models.Booking)
}

// DefaultNotificationService implements NotificationService using Firebase
// Cloud Messaging. A nil Client disables delivery.
type DefaultNotificationService struct {
	Client        *messaging.Client
	TherapistRepo therapistRepo.TherapistRepository
}
