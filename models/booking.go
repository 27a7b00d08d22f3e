package models

import "time"

// Booking represents a booking record as persisted in the bookings
// collection. Only the fields below are ever written by the server; legacy
// input fields that the schema does not accept are dropped before persist.
type Booking struct {
	ID               string        `bson:"id" json:"id"`                             // System-assigned opaque identifier (UUID)
	BookingID        string        `bson:"booking_id" json:"bookingId"`              // Business identifier, e.g. "BK1735689600000_A1B2C3"
	UserID           string        `bson:"user_id" json:"userId"`                    // Requesting customer
	TherapistID      string        `bson:"therapist_id" json:"therapistId"`          // Assigned provider
	TherapistName    string        `bson:"therapist_name" json:"therapistName"`      // Denormalized display name, not authoritative
	Status           BookingStatus `bson:"status" json:"status"`                     // Canonical lowercase status
	ServiceDuration  string        `bson:"service_duration" json:"serviceDuration"`  // "60", "90" or "120" minutes
	Location         string        `bson:"location" json:"location"`                 // Free-text service location
	Price            int           `bson:"price" json:"price"`                       // Integer currency units (IDR)
	CustomerName     string        `bson:"customer_name" json:"customerName"`        //
	CustomerWhatsApp string        `bson:"customer_whatsapp" json:"customerWhatsApp"`//
	Date             string        `bson:"date" json:"date"`                         // Service date "YYYY-MM-DD"
	Time             string        `bson:"time" json:"time"`                         // Service time "HH:MM"
	CreatedAt        time.Time     `bson:"created_at" json:"createdAt"`
	UpdatedAt        time.Time     `bson:"updated_at" json:"updatedAt"`
	ResponseDeadline time.Time     `bson:"response_deadline" json:"responseDeadline"` // Provider may not accept past this
	AcceptedAt       *time.Time    `bson:"accepted_at,omitempty" json:"acceptedAt,omitempty"`
	RejectedAt       *time.Time    `bson:"rejected_at,omitempty" json:"rejectedAt,omitempty"`
	CompletedAt      *time.Time    `bson:"completed_at,omitempty" json:"completedAt,omitempty"`
	ExpiredAt        *time.Time    `bson:"expired_at,omitempty" json:"expiredAt,omitempty"`
	CancelReason     string        `bson:"cancel_reason,omitempty" json:"cancelReason,omitempty"`
}

// BookingInput is the creation request as submitted by the customer-facing
// flow. Several fields carry legacy aliases; the lifecycle manager applies
// the fallbacks before validation.
type BookingInput struct {
	UserID     string `json:"userId"`
	CustomerID string `json:"customerId"` // legacy alias for UserID

	TherapistID   string `json:"therapistId"`
	TherapistName string `json:"therapistName"`

	ServiceDuration string `json:"serviceDuration"`
	Duration        int    `json:"duration"` // numeric alias, minutes

	Location     string `json:"location"`
	Address      string `json:"address"`      // alias
	LocationZone string `json:"locationZone"` // alias

	Price      int `json:"price"`
	TotalPrice int `json:"totalPrice"` // alias

	CustomerName     string `json:"customerName"`
	CustomerWhatsApp string `json:"customerWhatsApp"`

	Date string `json:"date"`
	Time string `json:"time"`

	Status string `json:"status"` // normalized; unknown values default to pending_accept
}

// BookingEvent is the change notification published on the booking events
// channel after every successful insert or update.
type BookingEvent struct {
	Event   string  `json:"event"` // "created" or "updated"
	Booking Booking `json:"booking"`
}
