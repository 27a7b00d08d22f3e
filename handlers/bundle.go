package handlers

import (
	therapistRepoPkg "santai/database/repository/therapist"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the HTTP handlers and the repositories the
// middleware needs, wired once in main and passed to route registration.
type HandlerBundle struct {
	TherapistRepo therapistRepoPkg.TherapistRepository

	// Booking endpoints
	CreateBookingHandler   gin.HandlerFunc
	AcceptBookingHandler   gin.HandlerFunc
	RejectBookingHandler   gin.HandlerFunc
	CompleteBookingHandler gin.HandlerFunc
	ListPendingHandler     gin.HandlerFunc
	StreamBookingsHandler  gin.HandlerFunc

	// Therapist endpoints
	RegisterTherapistHandler     gin.HandlerFunc
	AuthenticateTherapistHandler gin.HandlerFunc
	SignOutTherapistHandler      gin.HandlerFunc
	UpdateFCMTokenHandler        gin.HandlerFunc
	GetTherapistHandler          gin.HandlerFunc
}
