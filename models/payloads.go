package models

// BookingExpiryPayload is the task payload scheduled when a booking is
// created, fired once the response deadline passes.
type BookingExpiryPayload struct {
	BookingID string `json:"bookingId"`
	Reason    string `json:"reason"`
}
