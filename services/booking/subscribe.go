package booking

import (
	"context"
	"encoding/json"
	"time"

	"santai/models"

	"go.uber.org/zap"
)

// Subscription is the handle returned by SubscribeToTherapistBookings.
// Active is false when the realtime channel could not be established; the
// caller falls back to polling. Unsubscribe is always safe to call.
type Subscription struct {
	Active      bool
	Unsubscribe func()
}

// SubscribeToTherapistBookings streams booking change events for a single
// therapist. Delivery is best-effort: a broken channel never fails the
// caller, it only stops the stream (fail-open). Events are filtered to
// pending bookings still inside their response deadline.
func (svc *DefaultBookingService) SubscribeToTherapistBookings(ctx context.Context, therapistID string, onEvent func(models.BookingEvent)) Subscription {
	logger := zap.L()

	if svc.Events == nil {
		logger.Warn("subscribe: events client not configured, realtime disabled",
			zap.String("therapistId", therapistID))
		return Subscription{Active: false, Unsubscribe: func() {}}
	}

	pubsub := svc.Events.Subscribe(ctx, svc.EventsChannel)

	// Force the subscribe round-trip now so setup failures surface here
	// instead of silently producing a dead channel.
	if _, err := pubsub.Receive(ctx); err != nil {
		logger.Warn("subscribe: failed to establish realtime channel",
			zap.String("therapistId", therapistID),
			zap.Error(err))
		_ = pubsub.Close()
		return Subscription{Active: false, Unsubscribe: func() {}}
	}

	go func() {
		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var event models.BookingEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					logger.Warn("subscribe: dropping malformed event payload", zap.Error(err))
					continue
				}
				if !relevantToTherapist(event, therapistID) {
					continue
				}
				onEvent(event)
			}
		}
	}()

	logger.Info("subscribe: realtime channel established",
		zap.String("therapistId", therapistID))

	return Subscription{
		Active: true,
		Unsubscribe: func() {
			if err := pubsub.Close(); err != nil {
				logger.Warn("subscribe: error closing realtime channel", zap.Error(err))
			}
		},
	}
}

// relevantToTherapist reports whether an event should reach a therapist's
// stream: their booking, still pending, deadline not yet passed.
func relevantToTherapist(event models.BookingEvent, therapistID string) bool {
	if event.Booking.TherapistID != therapistID {
		return false
	}
	if event.Booking.Status != models.StatusPendingAccept {
		return false
	}
	return !time.Now().After(event.Booking.ResponseDeadline)
}
