package models

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the lifecycle state of a booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

// Booking is a passenger's claim on seats of a ride. There is at most one
// row per (ride, passenger): a cancelled booking is reactivated in place
// rather than inserted again. TotalPrice is frozen at booking time and
// never recomputed, even if the ride's price changes later.
type Booking struct {
	ID          uuid.UUID     `json:"id" db:"id"`
	RideID      uuid.UUID     `json:"ride_id" db:"ride_id"`
	PassengerID uuid.UUID     `json:"passenger_id" db:"passenger_id"`
	SeatsBooked int           `json:"seats_booked" db:"seats_booked"`
	TotalPrice  float64       `json:"total_price" db:"total_price"`
	Status      BookingStatus `json:"status" db:"status"`
	Pickup      *string       `json:"pickup,omitempty" db:"pickup"`
	Dropoff     *string       `json:"dropoff,omitempty" db:"dropoff"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at" db:"updated_at"`
}
