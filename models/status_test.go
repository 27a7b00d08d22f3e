package models

import "testing"

func TestParseBookingStatus(t *testing.T) {
	cases := []struct {
		raw    string
		want   BookingStatus
		wantOK bool
	}{
		{"pending_accept", StatusPendingAccept, true},
		{"active", StatusActive, true},
		{"completed", StatusCompleted, true},
		{"cancelled", StatusCancelled, true},
		{"expired", StatusExpired, true},
		{"idle", StatusIdle, true},
		{"registering", StatusRegistering, true},
		{"searching", StatusSearching, true},
		{"Pending", StatusPendingAccept, true},
		{"Confirmed", StatusActive, true},
		{"Completed", StatusCompleted, true},
		{"Cancelled", StatusCancelled, true},
		{"Expired", StatusExpired, true},
		{"", "", false},
		{"nonsense", "", false},
	}

	for _, tc := range cases {
		got, ok := ParseBookingStatus(tc.raw)
		if ok != tc.wantOK {
			t.Errorf("ParseBookingStatus(%q) ok = %v, want %v", tc.raw, ok, tc.wantOK)
			continue
		}
		if ok && got != tc.want {
			t.Errorf("ParseBookingStatus(%q) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	terminal := []BookingStatus{StatusCompleted, StatusCancelled, StatusExpired}
	for _, s := range terminal {
		if !s.IsTerminal() {
			t.Errorf("%s should be terminal", s)
		}
	}

	open := []BookingStatus{StatusPendingAccept, StatusActive, StatusIdle, StatusRegistering, StatusSearching}
	for _, s := range open {
		if s.IsTerminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
}

func TestDisplayName(t *testing.T) {
	cases := map[BookingStatus]string{
		StatusPendingAccept: "Pending",
		StatusActive:        "Confirmed",
		StatusCompleted:     "Completed",
		StatusCancelled:     "Cancelled",
		StatusExpired:       "Expired",
	}
	for status, want := range cases {
		if got := status.DisplayName(); got != want {
			t.Errorf("DisplayName(%s) = %q, want %q", status, got, want)
		}
	}
}
