package booking

import (
	"errors"
	"testing"

	"equipment-inventory-api-server/internal/inventory"
	"equipment-inventory-api-server/internal/models"
)

func TestTransitionTable(t *testing.T) {
	all := []models.BookingStatus{
		models.BookingStatusPending,
		models.BookingStatusApproved,
		models.BookingStatusActive,
		models.BookingStatusCompleted,
		models.BookingStatusCancelled,
	}
	legal := map[models.BookingStatus][]models.BookingStatus{
		models.BookingStatusPending:  {models.BookingStatusApproved, models.BookingStatusCancelled},
		models.BookingStatusApproved: {models.BookingStatusActive, models.BookingStatusCancelled},
		models.BookingStatusActive:   {models.BookingStatusCompleted, models.BookingStatusCancelled},
	}

	for _, from := range all {
		for _, to := range all {
			allowed := false
			for _, next := range legal[from] {
				if next == to {
					allowed = true
				}
			}
			err := Transition(from, to)
			if allowed && err != nil {
				t.Errorf("%s → %s should be legal, got %v", from, to, err)
			}
			if !allowed && err == nil {
				t.Errorf("%s → %s should be rejected", from, to)
			}
		}
	}
}

func TestTransitionTerminalStates(t *testing.T) {
	for _, from := range []models.BookingStatus{models.BookingStatusCompleted, models.BookingStatusCancelled} {
		for _, to := range []models.BookingStatus{
			models.BookingStatusPending,
			models.BookingStatusApproved,
			models.BookingStatusActive,
			models.BookingStatusCompleted,
		} {
			if err := Transition(from, to); err == nil {
				t.Errorf("terminal state %s allowed transition to %s", from, to)
			}
		}
	}
}

func TestTransitionStateErrorDetails(t *testing.T) {
	err := Transition(models.BookingStatusCancelled, models.BookingStatusCancelled)
	var stateErr *inventory.StateError
	if !errors.As(err, &stateErr) {
		t.Fatalf("want StateError, got %v", err)
	}
	if stateErr.Message != "booking is already cancelled" {
		t.Errorf("double-cancel message = %q", stateErr.Message)
	}

	err = Transition(models.BookingStatusCompleted, models.BookingStatusCancelled)
	if !errors.As(err, &stateErr) {
		t.Fatalf("want StateError, got %v", err)
	}
	if stateErr.Message != "completed bookings cannot be cancelled" {
		t.Errorf("completed-cancel message = %q", stateErr.Message)
	}

	err = Transition(models.BookingStatusPending, models.BookingStatusActive)
	if !errors.As(err, &stateErr) {
		t.Fatalf("want StateError, got %v", err)
	}
	if stateErr.Current != string(models.BookingStatusPending) {
		t.Errorf("current = %q, want pending", stateErr.Current)
	}
}
