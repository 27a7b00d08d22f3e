package handlers

import (
	"errors"
	"net/http"

	"santai/models"
	"santai/services/booking"
	"santai/services/notification"
	"santai/services/tasks"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// CreateBookingHandler accepts a public booking request. On success it
// dispatches the therapist push notification and schedules the expiry task;
// neither side effect can fail the request.
func CreateBookingHandler(bookingSvc booking.BookingService, notifSvc notification.NotificationService, expiryQueue *asynq.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.BookingInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}

		created, err := bookingSvc.CreateBooking(input)
		if err != nil {
			writeBookingError(c, err)
			return
		}

		go notifSvc.NotifyBookingCreated(created)
		scheduleExpiry(expiryQueue, created)

		c.JSON(http.StatusCreated, gin.H{"booking": created})
	}
}

// AcceptBookingHandler lets the authenticated therapist accept a booking.
func AcceptBookingHandler(bookingSvc booking.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		therapistID := c.GetString("therapistID")
		therapistName := c.GetString("therapistName")
		bookingID := c.Param("bookingID")

		updated, err := bookingSvc.AcceptBooking(bookingID, therapistID, therapistName)
		if err != nil {
			writeBookingError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"booking": updated})
	}
}

// RejectBookingHandler lets the authenticated therapist decline a booking.
func RejectBookingHandler(bookingSvc booking.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		therapistID := c.GetString("therapistID")
		bookingID := c.Param("bookingID")

		var body struct {
			Reason string `json:"reason"`
		}
		// Body is optional; a bare POST declines with the default reason.
		_ = c.ShouldBindJSON(&body)

		updated, err := bookingSvc.RejectBooking(bookingID, therapistID, body.Reason)
		if err != nil {
			writeBookingError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"booking": updated})
	}
}

// CompleteBookingHandler marks an active booking as completed.
func CompleteBookingHandler(bookingSvc booking.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		therapistID := c.GetString("therapistID")
		bookingID := c.Param("bookingID")

		updated, err := bookingSvc.CompleteBooking(bookingID, therapistID)
		if err != nil {
			writeBookingError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"booking": updated})
	}
}

// ListPendingHandler returns the therapist's actionable pending bookings.
func ListPendingHandler(bookingSvc booking.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		therapistID := c.GetString("therapistID")

		pending, err := bookingSvc.ListPendingForTherapist(therapistID)
		if err != nil {
			writeBookingError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"bookings": pending, "count": len(pending)})
	}
}

// scheduleExpiry enqueues the deferred task that expires the booking at its
// response deadline. Enqueue failure is logged, not surfaced: the pending
// list filters overdue bookings regardless.
func scheduleExpiry(expiryQueue *asynq.Client, created *models.Booking) {
	if expiryQueue == nil {
		return
	}
	payload := models.BookingExpiryPayload{
		BookingID: created.BookingID,
		Reason:    "Response timeout",
	}
	task, opts, err := tasks.NewBookingExpiryTask(payload, created.ResponseDeadline)
	if err != nil {
		zap.L().Error("failed to build expiry task", zap.String("bookingId", created.BookingID), zap.Error(err))
		return
	}
	if _, err := expiryQueue.Enqueue(task, opts...); err != nil {
		zap.L().Error("failed to enqueue expiry task", zap.String("bookingId", created.BookingID), zap.Error(err))
	}
}

// writeBookingError maps the booking error taxonomy onto HTTP statuses.
func writeBookingError(c *gin.Context, err error) {
	var validation *booking.ValidationError
	if errors.As(err, &validation) {
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Message})
		return
	}
	var duplicate *booking.DuplicateBookingError
	if errors.As(err, &duplicate) {
		c.JSON(http.StatusConflict, gin.H{
			"error":             duplicate.Error(),
			"existingBookingId": duplicate.ExistingBookingID,
		})
		return
	}
	var notFound *booking.NotFoundError
	if errors.As(err, &notFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
		return
	}
	var authz *booking.AuthorizationError
	if errors.As(err, &authz) {
		c.JSON(http.StatusForbidden, gin.H{"error": "this booking is assigned to another therapist"})
		return
	}
	var illegal *booking.IllegalTransitionError
	if errors.As(err, &illegal) {
		c.JSON(http.StatusConflict, gin.H{"error": illegal.Error()})
		return
	}
	var expired *booking.ExpiredError
	if errors.As(err, &expired) {
		c.JSON(http.StatusGone, gin.H{"error": expired.Error()})
		return
	}
	var storage *booking.StorageError
	if errors.As(err, &storage) {
		zap.L().Error("storage failure", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "storage temporarily unavailable, please retry"})
		return
	}

	zap.L().Error("unhandled booking error", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
