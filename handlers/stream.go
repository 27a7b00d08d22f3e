package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"santai/models"
	"santai/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StreamBookingsHandler streams booking change events to the authenticated
// therapist over server-sent events. If the realtime channel cannot be
// established the handler answers 503 and the client falls back to polling
// the pending list.
func StreamBookingsHandler(bookingSvc booking.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		therapistID := c.GetString("therapistID")

		events := make(chan models.BookingEvent, 16)
		sub := bookingSvc.SubscribeToTherapistBookings(c.Request.Context(), therapistID, func(event models.BookingEvent) {
			select {
			case events <- event:
			default:
				// Slow consumer; drop rather than block the subscriber.
				zap.L().Warn("stream: dropping event for slow consumer",
					zap.String("therapistId", therapistID))
			}
		})
		if !sub.Active {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error": "realtime updates unavailable, poll the pending list instead",
			})
			return
		}
		defer sub.Unsubscribe()

		c.Writer.Header().Set("Content-Type", "text/event-stream")
		c.Writer.Header().Set("Cache-Control", "no-cache")
		c.Writer.Header().Set("Connection", "keep-alive")

		c.Stream(func(w io.Writer) bool {
			select {
			case <-c.Request.Context().Done():
				return false
			case event := <-events:
				payload, err := json.Marshal(event)
				if err != nil {
					zap.L().Warn("stream: failed to encode event", zap.Error(err))
					return true
				}
				c.SSEvent(event.Event, string(payload))
				return true
			}
		})
	}
}
