// internal/booking/statemachine.go
package booking

import (
	"fmt"

	"equipment-inventory-api-server/internal/inventory"
	"equipment-inventory-api-server/internal/models"
)

// The booking state machine:
//
//	pending → approved → active → completed
//
// cancelled is reachable from pending, approved and active. completed and
// cancelled are terminal.
var transitions = map[models.BookingStatus][]models.BookingStatus{
	models.BookingStatusPending:   {models.BookingStatusApproved, models.BookingStatusCancelled},
	models.BookingStatusApproved:  {models.BookingStatusActive, models.BookingStatusCancelled},
	models.BookingStatusActive:    {models.BookingStatusCompleted, models.BookingStatusCancelled},
	models.BookingStatusCompleted: nil,
	models.BookingStatusCancelled: nil,
}

// Transition reports whether moving a booking from current to next is legal.
// It is a pure function: the caller applies the new status itself.
func Transition(current, next models.BookingStatus) error {
	for _, allowed := range transitions[current] {
		if allowed == next {
			return nil
		}
	}

	switch {
	case current == models.BookingStatusCancelled && next == models.BookingStatusCancelled:
		return &inventory.StateError{Current: string(current), Action: "cancel", Message: "booking is already cancelled"}
	case current == models.BookingStatusCompleted && next == models.BookingStatusCancelled:
		return &inventory.StateError{Current: string(current), Action: "cancel", Message: "completed bookings cannot be cancelled"}
	}
	return &inventory.StateError{
		Current: string(current),
		Action:  fmt.Sprintf("transition to %s", next),
	}
}
