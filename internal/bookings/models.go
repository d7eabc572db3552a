package bookings

import (
	"github.com/google/uuid"
)

// MaxSeatsPerBooking caps how many seats one booking may claim
const MaxSeatsPerBooking = 8

// Machine-readable codes for the two booking conflicts that share a 409
const (
	CodeAlreadyBooked     = "already_booked"
	CodeInsufficientSeats = "insufficient_seats"
)

// CreateBookingRequest is the payload for booking seats on a ride
type CreateBookingRequest struct {
	RideID  uuid.UUID `json:"ride_id" binding:"required"`
	Seats   int       `json:"seats" binding:"required" validate:"gte=1,lte=8"`
	Pickup  *string   `json:"pickup,omitempty" validate:"omitempty,max=255"`
	Dropoff *string   `json:"dropoff,omitempty" validate:"omitempty,max=255"`
}

// UpdateBookingStatusRequest is the payload for a booking status transition
type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required" validate:"oneof=confirmed cancelled completed"`
}
