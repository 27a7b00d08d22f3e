package booking

import (
	"errors"
	"testing"
	"time"

	"santai/models"
)

func seedPending(repo *memoryBookingRepo, bookingID string, deadline time.Time) {
	repo.seed(models.Booking{
		BookingID:        bookingID,
		TherapistID:      "therapist-1",
		Status:           models.StatusPendingAccept,
		CreatedAt:        time.Now(),
		ResponseDeadline: deadline,
	})
}

func TestTransitionTable(t *testing.T) {
	cases := []struct {
		from    models.BookingStatus
		to      models.BookingStatus
		allowed bool
	}{
		{models.StatusPendingAccept, models.StatusActive, true},
		{models.StatusPendingAccept, models.StatusCancelled, true},
		{models.StatusPendingAccept, models.StatusExpired, true},
		{models.StatusPendingAccept, models.StatusCompleted, false},
		{models.StatusActive, models.StatusCompleted, true},
		{models.StatusActive, models.StatusCancelled, true},
		{models.StatusActive, models.StatusExpired, false},
		{models.StatusCompleted, models.StatusActive, false},
		{models.StatusCompleted, models.StatusCancelled, false},
		{models.StatusCancelled, models.StatusActive, false},
		{models.StatusExpired, models.StatusActive, false},
		// Pre-booking funnel states have no outbound transitions.
		{models.StatusIdle, models.StatusActive, false},
		{models.StatusSearching, models.StatusPendingAccept, false},
	}

	for _, tc := range cases {
		if got := canTransition(tc.from, tc.to); got != tc.allowed {
			t.Errorf("canTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}

func TestAcceptBooking(t *testing.T) {
	t.Run("accepts a pending booking before the deadline", func(t *testing.T) {
		repo := newMemoryBookingRepo()
		svc := newTestService(repo)
		seedPending(repo, "BK1_ACCEPT", time.Now().Add(5*time.Minute))

		updated, err := svc.AcceptBooking("BK1_ACCEPT", "therapist-1", "Ayu")
		if err != nil {
			t.Fatalf("AcceptBooking failed: %v", err)
		}
		if updated.Status != models.StatusActive {
			t.Errorf("status = %s, want active", updated.Status)
		}
		if updated.AcceptedAt == nil {
			t.Error("acceptedAt should be set")
		}
		if updated.TherapistName != "Ayu" {
			t.Errorf("therapistName = %q, want Ayu", updated.TherapistName)
		}
	})

	t.Run("rejects an unknown booking", func(t *testing.T) {
		svc := newTestService(newMemoryBookingRepo())

		_, err := svc.AcceptBooking("BK_MISSING", "therapist-1", "")
		var notFound *NotFoundError
		if !errors.As(err, &notFound) {
			t.Fatalf("expected NotFoundError, got %v", err)
		}
	})

	t.Run("rejects a therapist who is not the assignee", func(t *testing.T) {
		repo := newMemoryBookingRepo()
		svc := newTestService(repo)
		seedPending(repo, "BK1_OTHER", time.Now().Add(5*time.Minute))

		_, err := svc.AcceptBooking("BK1_OTHER", "therapist-2", "")
		var authz *AuthorizationError
		if !errors.As(err, &authz) {
			t.Fatalf("expected AuthorizationError, got %v", err)
		}
		if authz.AssignedTherapistID != "therapist-1" {
			t.Errorf("assigned therapist = %q, want therapist-1", authz.AssignedTherapistID)
		}

		// The booking must be untouched.
		stored, _ := repo.GetByBookingID("BK1_OTHER")
		if stored.Status != models.StatusPendingAccept {
			t.Errorf("status changed to %s after failed accept", stored.Status)
		}
	})

	t.Run("rejects accepting past the response deadline", func(t *testing.T) {
		repo := newMemoryBookingRepo()
		svc := newTestService(repo)
		seedPending(repo, "BK1_LATE", time.Now().Add(-7*time.Minute))

		_, err := svc.AcceptBooking("BK1_LATE", "therapist-1", "")
		var expired *ExpiredError
		if !errors.As(err, &expired) {
			t.Fatalf("expected ExpiredError, got %v", err)
		}
		if expired.MinutesPast < 7 {
			t.Errorf("minutesPast = %d, want at least 7", expired.MinutesPast)
		}
	})

	t.Run("rejects accepting an already resolved booking", func(t *testing.T) {
		repo := newMemoryBookingRepo()
		svc := newTestService(repo)
		repo.seed(models.Booking{
			BookingID:   "BK1_DONE",
			TherapistID: "therapist-1",
			Status:      models.StatusCancelled,
		})

		_, err := svc.AcceptBooking("BK1_DONE", "therapist-1", "")
		var illegal *IllegalTransitionError
		if !errors.As(err, &illegal) {
			t.Fatalf("expected IllegalTransitionError, got %v", err)
		}
		if len(illegal.Allowed) != 0 {
			t.Errorf("cancelled is terminal, allowed = %v", illegal.Allowed)
		}
	})

	t.Run("authorization is checked before the state machine", func(t *testing.T) {
		repo := newMemoryBookingRepo()
		svc := newTestService(repo)
		repo.seed(models.Booking{
			BookingID:   "BK1_ORDER",
			TherapistID: "therapist-1",
			Status:      models.StatusCompleted,
		})

		// Wrong therapist on a terminal booking: the authorization failure
		// must win.
		_, err := svc.AcceptBooking("BK1_ORDER", "therapist-2", "")
		var authz *AuthorizationError
		if !errors.As(err, &authz) {
			t.Fatalf("expected AuthorizationError, got %v", err)
		}
	})
}

func TestRejectBooking(t *testing.T) {
	t.Run("declines a pending booking with a reason", func(t *testing.T) {
		repo := newMemoryBookingRepo()
		svc := newTestService(repo)
		seedPending(repo, "BK1_DECL", time.Now().Add(5*time.Minute))

		updated, err := svc.RejectBooking("BK1_DECL", "therapist-1", "Fully booked")
		if err != nil {
			t.Fatalf("RejectBooking failed: %v", err)
		}
		if updated.Status != models.StatusCancelled {
			t.Errorf("status = %s, want cancelled", updated.Status)
		}
		if updated.CancelReason != "Fully booked" {
			t.Errorf("cancelReason = %q, want Fully booked", updated.CancelReason)
		}
		if updated.RejectedAt == nil {
			t.Error("rejectedAt should be set")
		}
	})

	t.Run("supplies a default reason when none is given", func(t *testing.T) {
		repo := newMemoryBookingRepo()
		svc := newTestService(repo)
		seedPending(repo, "BK1_NOREASON", time.Now().Add(5*time.Minute))

		updated, err := svc.RejectBooking("BK1_NOREASON", "therapist-1", "")
		if err != nil {
			t.Fatalf("RejectBooking failed: %v", err)
		}
		if updated.CancelReason == "" {
			t.Error("cancelReason should default when not supplied")
		}
	})

	t.Run("declining past the deadline still succeeds", func(t *testing.T) {
		repo := newMemoryBookingRepo()
		svc := newTestService(repo)
		seedPending(repo, "BK1_LATEDECL", time.Now().Add(-3*time.Minute))

		updated, err := svc.RejectBooking("BK1_LATEDECL", "therapist-1", "")
		if err != nil {
			t.Fatalf("late decline should succeed: %v", err)
		}
		if updated.Status != models.StatusCancelled {
			t.Errorf("status = %s, want cancelled", updated.Status)
		}
	})

	t.Run("rejects a therapist who is not the assignee", func(t *testing.T) {
		repo := newMemoryBookingRepo()
		svc := newTestService(repo)
		seedPending(repo, "BK1_DECLAUTH", time.Now().Add(5*time.Minute))

		_, err := svc.RejectBooking("BK1_DECLAUTH", "therapist-2", "")
		var authz *AuthorizationError
		if !errors.As(err, &authz) {
			t.Fatalf("expected AuthorizationError, got %v", err)
		}
	})
}

func TestCompleteBooking(t *testing.T) {
	t.Run("completes an active booking", func(t *testing.T) {
		repo := newMemoryBookingRepo()
		svc := newTestService(repo)
		repo.seed(models.Booking{
			BookingID:   "BK1_ACTIVE",
			TherapistID: "therapist-1",
			Status:      models.StatusActive,
		})

		updated, err := svc.CompleteBooking("BK1_ACTIVE", "therapist-1")
		if err != nil {
			t.Fatalf("CompleteBooking failed: %v", err)
		}
		if updated.Status != models.StatusCompleted {
			t.Errorf("status = %s, want completed", updated.Status)
		}
		if updated.CompletedAt == nil {
			t.Error("completedAt should be set")
		}
	})

	t.Run("cannot complete a booking that was never accepted", func(t *testing.T) {
		repo := newMemoryBookingRepo()
		svc := newTestService(repo)
		seedPending(repo, "BK1_PEND", time.Now().Add(5*time.Minute))

		_, err := svc.CompleteBooking("BK1_PEND", "therapist-1")
		var illegal *IllegalTransitionError
		if !errors.As(err, &illegal) {
			t.Fatalf("expected IllegalTransitionError, got %v", err)
		}
	})
}

func TestExpireBooking(t *testing.T) {
	t.Run("expires a pending booking", func(t *testing.T) {
		repo := newMemoryBookingRepo()
		svc := newTestService(repo)
		seedPending(repo, "BK1_EXP", time.Now().Add(-1*time.Minute))

		updated, err := svc.ExpireBooking("BK1_EXP", "Response timeout")
		if err != nil {
			t.Fatalf("ExpireBooking failed: %v", err)
		}
		if updated.Status != models.StatusExpired {
			t.Errorf("status = %s, want expired", updated.Status)
		}
		if updated.ExpiredAt == nil {
			t.Error("expiredAt should be set")
		}
	})

	t.Run("cannot expire an accepted booking", func(t *testing.T) {
		repo := newMemoryBookingRepo()
		svc := newTestService(repo)
		repo.seed(models.Booking{
			BookingID:   "BK1_ACC",
			TherapistID: "therapist-1",
			Status:      models.StatusActive,
		})

		_, err := svc.ExpireBooking("BK1_ACC", "")
		var illegal *IllegalTransitionError
		if !errors.As(err, &illegal) {
			t.Fatalf("expected IllegalTransitionError, got %v", err)
		}
	})

	t.Run("expiring twice fails the second time", func(t *testing.T) {
		repo := newMemoryBookingRepo()
		svc := newTestService(repo)
		seedPending(repo, "BK1_TWICE", time.Now().Add(-1*time.Minute))

		if _, err := svc.ExpireBooking("BK1_TWICE", ""); err != nil {
			t.Fatalf("first expire failed: %v", err)
		}
		_, err := svc.ExpireBooking("BK1_TWICE", "")
		var illegal *IllegalTransitionError
		if !errors.As(err, &illegal) {
			t.Fatalf("expected IllegalTransitionError on second expire, got %v", err)
		}
	})
}
