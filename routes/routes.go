package routes

import (
	"net/http"
	"time"

	"santai/handlers"
	"santai/middleware"
	"santai/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterTherapistRoutes registers therapist account endpoints.
func RegisterTherapistRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/therapists")
	{
		api.POST("/register", hb.RegisterTherapistHandler)
		api.POST("/login", hb.AuthenticateTherapistHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthTherapistMiddleware(hb.TherapistRepo))
		api.GET("/me", hb.GetTherapistHandler)
		api.POST("/signout", hb.SignOutTherapistHandler)
		api.PUT("/fcm-token", hb.UpdateFCMTokenHandler)
	}
}

// RegisterBookingRoutes sets up the booking lifecycle endpoints. Creation
// is public (customers book over the web widget without an account); every
// transition belongs to the assigned therapist.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.POST("", hb.CreateBookingHandler)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthTherapistMiddleware(hb.TherapistRepo))
		protected.GET("/pending", hb.ListPendingHandler)
		protected.GET("/stream", hb.StreamBookingsHandler)
		protected.POST("/:bookingID/accept", hb.AcceptBookingHandler)
		protected.POST("/:bookingID/reject", hb.RejectBookingHandler)
		protected.POST("/:bookingID/complete", hb.CompleteBookingHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "health": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterTherapistRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
}
