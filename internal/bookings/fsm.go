package bookings

import (
	"github.com/Ahmadmeltaha/tareeqi-backend/pkg/models"
)

// transitions is the exhaustive table of legal booking status changes.
// Anything not listed here is rejected. cancelled → pending exists only for
// reactivation, which happens through Create, never through UpdateStatus.
var transitions = map[models.BookingStatus][]models.BookingStatus{
	models.BookingStatusPending:   {models.BookingStatusConfirmed, models.BookingStatusCancelled},
	models.BookingStatusConfirmed: {models.BookingStatusCancelled, models.BookingStatusCompleted},
	models.BookingStatusCancelled: {models.BookingStatusPending},
	models.BookingStatusCompleted: {},
}

// CanTransition reports whether the status change is in the transition table
func CanTransition(from, to models.BookingStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// releasesSeats reports whether a transition returns the booking's seats to
// the ride's inventory. Only entering cancelled from a live state does;
// completion keeps the seats allocated to the ride.
func releasesSeats(from, to models.BookingStatus) bool {
	return to == models.BookingStatusCancelled && from != models.BookingStatusCancelled
}

// driverOnly reports whether a transition may only be made by the ride's driver
func driverOnly(to models.BookingStatus) bool {
	return to == models.BookingStatusConfirmed || to == models.BookingStatusCompleted
}
