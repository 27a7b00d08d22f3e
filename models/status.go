package models

// BookingStatus is the canonical status vocabulary for bookings. The stored
// form is lowercase; DisplayName returns the capitalized label used in
// human-facing text.
type BookingStatus string

const (
	StatusIdle          BookingStatus = "idle"
	StatusRegistering   BookingStatus = "registering"
	StatusSearching     BookingStatus = "searching"
	StatusPendingAccept BookingStatus = "pending_accept"
	StatusActive        BookingStatus = "active"
	StatusCompleted     BookingStatus = "completed"
	StatusCancelled     BookingStatus = "cancelled"
	StatusExpired       BookingStatus = "expired"
)

// knownStatuses is the closed set of statuses accepted on input.
var knownStatuses = map[BookingStatus]bool{
	StatusIdle:          true,
	StatusRegistering:   true,
	StatusSearching:     true,
	StatusPendingAccept: true,
	StatusActive:        true,
	StatusCompleted:     true,
	StatusCancelled:     true,
	StatusExpired:       true,
}

// displayAliases maps the capitalized labels older clients send to their
// canonical stored form.
var displayAliases = map[string]BookingStatus{
	"Pending":   StatusPendingAccept,
	"Confirmed": StatusActive,
	"Completed": StatusCompleted,
	"Cancelled": StatusCancelled,
	"Expired":   StatusExpired,
}

// ParseBookingStatus resolves raw to a canonical status. It accepts both
// the stored lowercase vocabulary and the capitalized display labels.
func ParseBookingStatus(raw string) (BookingStatus, bool) {
	s := BookingStatus(raw)
	if knownStatuses[s] {
		return s, true
	}
	if alias, ok := displayAliases[raw]; ok {
		return alias, true
	}
	return "", false
}

// IsTerminal reports whether no further transition is permitted from s.
func (s BookingStatus) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusExpired:
		return true
	}
	return false
}

// DisplayName returns the capitalized label for human-facing messages.
func (s BookingStatus) DisplayName() string {
	switch s {
	case StatusPendingAccept:
		return "Pending"
	case StatusActive:
		return "Confirmed"
	case StatusCompleted:
		return "Completed"
	case StatusCancelled:
		return "Cancelled"
	case StatusExpired:
		return "Expired"
	case StatusIdle:
		return "Idle"
	case StatusRegistering:
		return "Registering"
	case StatusSearching:
		return "Searching"
	}
	return string(s)
}
