package notification

import (
	"context"
	"fmt"
	"time"

	"santai/models"

	"firebase.google.com/go/v4/messaging"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// NotifyBookingCreated pushes a "new booking" notification to the assigned
// therapist's device.
func (svc *DefaultNotificationService) NotifyBookingCreated(booking *models.Booking) {
	title := "New booking request"
	body := fmt.Sprintf("%s requested a %s-minute session on %s at %s",
		booking.CustomerName, booking.ServiceDuration, booking.Date, booking.Time)
	svc.push(booking, "booking_created", title, body)
}

// NotifyBookingExpired tells the therapist a request lapsed unanswered.
func (svc *DefaultNotificationService) NotifyBookingExpired(booking *models.Booking) {
	title := "Booking request expired"
	body := fmt.Sprintf("The request from %s for %s at %s expired without a response",
		booking.CustomerName, booking.Date, booking.Time)
	svc.push(booking, "booking_expired", title, body)
}

func (svc *DefaultNotificationService) push(booking *models.Booking, event, title, body string) {
	logger := zap.L()

	if svc.Client == nil {
		logger.Debug("notification: fcm client not configured, skipping push",
			zap.String("bookingId", booking.BookingID))
		return
	}

	therapist, err := svc.TherapistRepo.GetByIDWithProjection(booking.TherapistID, bson.M{"fcm_token": 1})
	if err != nil {
		logger.Warn("notification: failed to resolve therapist device token",
			zap.String("therapistId", booking.TherapistID), zap.Error(err))
		return
	}
	if therapist.FCMToken == "" {
		logger.Debug("notification: therapist has no device token registered",
			zap.String("therapistId", booking.TherapistID))
		return
	}

	msg := &messaging.Message{
		Token: therapist.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: map[string]string{
			"event":     event,
			"bookingId": booking.BookingID,
			"status":    string(booking.Status),
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := svc.Client.Send(ctx, msg); err != nil {
		logger.Warn("notification: push delivery failed",
			zap.String("bookingId", booking.BookingID),
			zap.String("therapistId", booking.TherapistID),
			zap.Error(err))
		return
	}

	logger.Info("notification: push delivered",
		zap.String("bookingId", booking.BookingID),
		zap.String("event", event))
}
